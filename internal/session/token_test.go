package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "1"}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := TokenExpiry(signedToken(t, exp))
	if !ok {
		t.Fatal("expected expiry")
	}
	if !got.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", got, exp)
	}

	if _, ok := TokenExpiry(signedToken(t, time.Time{})); ok {
		t.Fatal("token without exp must report no expiry")
	}
	if _, ok := TokenExpiry("opaque-token"); ok {
		t.Fatal("non-JWT token must report no expiry")
	}
}

func TestTokenExpired(t *testing.T) {
	sess := New()
	if sess.TokenExpired() {
		t.Fatal("empty token must not be expired")
	}

	sess.Token = signedToken(t, time.Now().Add(-time.Minute))
	if !sess.TokenExpired() {
		t.Fatal("past exp must be expired")
	}

	sess.Token = signedToken(t, time.Now().Add(time.Hour))
	if sess.TokenExpired() {
		t.Fatal("future exp must not be expired")
	}

	sess.Token = "opaque-token"
	if sess.TokenExpired() {
		t.Fatal("opaque token must not be expired")
	}
}
