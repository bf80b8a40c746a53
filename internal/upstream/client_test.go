package upstream

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg Config) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL
	cfg.HTTPClient = server.Client()
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestSendJSONBody(t *testing.T) {
	var gotBody map[string]any
	var gotContentType, gotAccept string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":1}}`))
	}, Config{})

	raw, err := client.Send(context.Background(), RequestSpec{
		Method:  http.MethodPost,
		Path:    "/login",
		Headers: JSONHeaders(""),
		Body:    map[string]any{"email": "a@b.c", "password": "secret"},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !raw.OK() || raw.Status != http.StatusCreated {
		t.Fatalf("status = %d", raw.Status)
	}
	if gotContentType != "application/json" || gotAccept != "application/json" {
		t.Fatalf("headers = %q / %q", gotContentType, gotAccept)
	}
	if gotBody["email"] != "a@b.c" {
		t.Fatalf("body = %v", gotBody)
	}
}

func TestSendHeaderMergeSpecWins(t *testing.T) {
	var got http.Header
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}, Config{DefaultHeaders: map[string]string{
		"X-Portal":     "default",
		"X-Default":    "kept",
		"Accept":       "text/plain",
	}})

	_, err := client.Send(context.Background(), RequestSpec{
		Method:  http.MethodGet,
		Path:    "/networks",
		Headers: map[string]string{"X-Portal": "spec", "Accept": "application/json"},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.Get("X-Portal") != "spec" {
		t.Fatalf("X-Portal = %q, spec header must win", got.Get("X-Portal"))
	}
	if got.Get("X-Default") != "kept" {
		t.Fatalf("X-Default = %q", got.Get("X-Default"))
	}
	if got.Get("Accept") != "application/json" {
		t.Fatalf("Accept = %q", got.Get("Accept"))
	}
}

func TestSendAPIKeyFallback(t *testing.T) {
	var got string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, Config{APIKey: "portal-key"})

	// Without a spec Authorization header the API key is used.
	if _, err := client.Send(context.Background(), RequestSpec{Method: http.MethodGet, Path: "/x"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got != "Bearer portal-key" {
		t.Fatalf("authorization = %q", got)
	}

	// A spec token wins over the API key.
	if _, err := client.Send(context.Background(), RequestSpec{
		Method: http.MethodGet, Path: "/x", Headers: JSONHeaders("user-token"),
	}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got != "Bearer user-token" {
		t.Fatalf("authorization = %q", got)
	}
}

func TestSendErrorStatusIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid"}`))
	}, Config{})

	raw, err := client.Send(context.Background(), RequestSpec{Method: http.MethodGet, Path: "/x"})
	if err != nil {
		t.Fatalf("server-answered statuses must not be errors: %v", err)
	}
	if raw.OK() || raw.Status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", raw.Status)
	}
	if !strings.Contains(string(raw.Body), "invalid") {
		t.Fatalf("body = %s", raw.Body)
	}
}

func TestSendTransportFailureIsAnError(t *testing.T) {
	client, err := New(Config{BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Send(context.Background(), RequestSpec{Method: http.MethodGet, Path: "/x"}); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestSendQueryEncoding(t *testing.T) {
	var got string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}, Config{})

	_, err := client.Send(context.Background(), RequestSpec{
		Method: http.MethodGet,
		Path:   "/transactions",
		Query:  map[string]string{"page": "2", "per_page": "15", "search": "kofi mensah"},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(got, "page=2") || !strings.Contains(got, "search=kofi+mensah") {
		t.Fatalf("query = %q", got)
	}
}

func TestSendMultipart(t *testing.T) {
	var (
		gotFields map[string]string
		gotFile   []byte
		gotName   string
	)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		gotFields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotFields[k] = v[0]
		}
		if f, hdr, err := r.FormFile("id_document"); err == nil {
			gotName = hdr.Filename
			gotFile, _ = io.ReadAll(f)
			f.Close()
		}
		w.Write([]byte(`{}`))
	}, Config{})

	_, err := client.Send(context.Background(), RequestSpec{
		Method:  http.MethodPost,
		Path:    "/customer-details",
		Headers: MultipartHeaders("token"),
		Form: []FormPart{
			{Name: "full_name", Value: "Kofi Mensah"},
			{Name: "registered", Value: "1"},
			{Name: "id_document", Filename: "ghana-card.png", Content: []byte("png-bytes")},
		},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotFields["full_name"] != "Kofi Mensah" || gotFields["registered"] != "1" {
		t.Fatalf("fields = %v", gotFields)
	}
	if gotName != "ghana-card.png" || string(gotFile) != "png-bytes" {
		t.Fatalf("file = %q %q", gotName, gotFile)
	}
}

func TestQueryKeys(t *testing.T) {
	spec := RequestSpec{Query: map[string]string{"page": "1", "per_page": "15", "status": "active"}}
	got := spec.QueryKeys()
	want := []string{"page", "per_page", "status"}
	if len(got) != len(want) {
		t.Fatalf("keys = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v", got)
		}
	}
}
