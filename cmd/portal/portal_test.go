package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	authsvc "github.com/TelconGH/admin_portal/internal/app/services/auth"
	businesssvc "github.com/TelconGH/admin_portal/internal/app/services/business"
	customersvc "github.com/TelconGH/admin_portal/internal/app/services/customer"
	networksvc "github.com/TelconGH/admin_portal/internal/app/services/network"
	rbacsvc "github.com/TelconGH/admin_portal/internal/app/services/rbac"
	stocksvc "github.com/TelconGH/admin_portal/internal/app/services/stock"
	transactionsvc "github.com/TelconGH/admin_portal/internal/app/services/transaction"
	"github.com/TelconGH/admin_portal/internal/config"
	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/internal/upstream"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

func newTestServer(t *testing.T, upstreamHandler http.HandlerFunc) (*server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := httptest.NewServer(upstreamHandler)
	t.Cleanup(fake.Close)

	client, err := upstream.New(upstream.Config{BaseURL: fake.URL, HTTPClient: fake.Client()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{RateLimitRPS: 100, RateLimitBurst: 100},
		Session: config.SessionConfig{TTL: time.Hour, CookieName: "telcon_session"},
	}
	log := logger.NewWriter(io.Discard, "test")
	srv := &server{
		cfg:         cfg,
		log:         log,
		sessions:    session.NewMemoryStore(cfg.Session.TTL),
		auth:        authsvc.NewService(client, log),
		business:    businesssvc.NewService(client, log),
		network:     networksvc.NewService(client, log),
		stock:       stocksvc.NewService(client, log),
		transaction: transactionsvc.NewService(client, log),
		rbac:        rbacsvc.NewService(client, log),
		customer:    customersvc.NewService(client, log),
	}
	return srv, srv.router()
}

func sessionCookie(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range resp.Result().Cookies() {
		if c.Name == "telcon_session" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestHealthz(t *testing.T) {
	_, engine := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
}

func TestLoginIssuesSessionCookie(t *testing.T) {
	srv, engine := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("upstream path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"data":{"user":{"id":1,"name":"Ama"},"token":"tok","businesses":[{"id":10,"name":"Accra Mobile"}]}}`))
	})

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"ama@telcongh.example","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", resp.Code, resp.Body.String())
	}
	cookie := sessionCookie(t, resp)

	stored, err := srv.sessions.Get(req.Context(), cookie.Value)
	if err != nil {
		t.Fatalf("stored session: %v", err)
	}
	if !stored.Authenticated || stored.Token != "tok" || stored.SelectedBusinessID != 10 {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestRequireAuth(t *testing.T) {
	_, engine := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/businesses", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, anonymous requests must be rejected", resp.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("body = %v", body)
	}
}

func TestAuthenticatedFlowThroughCookie(t *testing.T) {
	_, engine := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			w.Write([]byte(`{"data":{"user":{"id":1},"token":"tok","businesses":[{"id":10,"name":"Accra Mobile"}]}}`))
		case "/networks":
			if r.Header.Get("Authorization") != "Bearer tok" {
				t.Errorf("authorization = %q", r.Header.Get("Authorization"))
			}
			w.Write([]byte(`{"networks":[{"id":1,"name":"MTN"}]}`))
		default:
			t.Errorf("unexpected upstream path %q", r.URL.Path)
		}
	})

	loginResp := httptest.NewRecorder()
	loginReq := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
	loginReq.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(loginResp, loginReq)
	cookie := sessionCookie(t, loginResp)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/networks", nil)
	req.AddCookie(cookie)
	engine.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Items []struct {
				Name string `json:"name"`
			} `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if !body.Success || len(body.Data.Items) != 1 || body.Data.Items[0].Name != "MTN" {
		t.Fatalf("body = %s", resp.Body.String())
	}
}

func TestLogoutClearsCookieAndSession(t *testing.T) {
	srv, engine := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok","success":true}`))
	})

	sess := session.New()
	sess.Authenticated = true
	sess.Token = "tok"
	if err := srv.sessions.Put(httptest.NewRequest(http.MethodGet, "/", nil).Context(), sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "telcon_session", Value: sess.ID})
	engine.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", resp.Code, resp.Body.String())
	}
	for _, c := range resp.Result().Cookies() {
		if c.Name == "telcon_session" && c.MaxAge >= 0 {
			t.Fatalf("cookie not cleared: %+v", c)
		}
	}
}

func TestFailureStatusMapping(t *testing.T) {
	srv, engine := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"The phone field is required.","errors":{"phone":["The phone field is required."]}}`))
	})

	sess := session.New()
	sess.Authenticated = true
	sess.Token = "tok"
	if err := srv.sessions.Put(httptest.NewRequest(http.MethodGet, "/", nil).Context(), sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/roles", nil)
	req.AddCookie(&http.Cookie{Name: "telcon_session", Value: sess.ID})
	engine.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, field errors map to 422", resp.Code)
	}
}
