package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"medhub-backend/internal/shared/auth"
)

func newTestVerifier(t *testing.T, secret string) *auth.HS256Verifier {
	t.Helper()
	v, err := auth.NewHS256Verifier(secret)
	if err != nil {
		t.Fatalf("NewHS256Verifier: %v", err)
	}
	return v
}

func newAuthRouter(t *testing.T, verifier auth.Verifier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(verifier))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": UserIDFromContext(c),
			"email":  UserEmailFromContext(c),
		})
	})
	return r
}

func TestAuthAcceptsValidToken(t *testing.T) {
	verifier := newTestVerifier(t, "test-secret")
	token, err := verifier.Sign(auth.Claims{Sub: "user-1", Email: "u@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	r := newAuthRouter(t, verifier)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, "user-1") {
		t.Fatalf("body = %s", body)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	r := newAuthRouter(t, newTestVerifier(t, "test-secret"))
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	r := newAuthRouter(t, newTestVerifier(t, "test-secret"))
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAuthRejectsWrongSigningKey(t *testing.T) {
	other := newTestVerifier(t, "other-secret")
	token, err := other.Sign(auth.Claims{Sub: "user-1"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	r := newAuthRouter(t, newTestVerifier(t, "test-secret"))
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}
