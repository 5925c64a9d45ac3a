package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func newRouter(cfg ActorConfig, seen *entities.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Actor(cfg))
	r.GET("/open", func(c *gin.Context) {
		*seen = ActorFrom(c)
		c.Status(http.StatusOK)
	})
	r.GET("/protected", RequireActor(), func(c *gin.Context) {
		*seen = ActorFrom(c)
		c.Status(http.StatusOK)
	})
	return r
}

func signToken(t *testing.T, key []byte, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestActor(t *testing.T) {
	key := []byte("secret")

	t.Run("anonymous without credentials", func(t *testing.T) {
		var seen entities.Actor
		r := newRouter(ActorConfig{SigningKey: key}, &seen)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

		if w.Code != http.StatusOK || seen.Role != entities.RoleAnonymous {
			t.Fatalf("expected anonymous actor, got %d %+v", w.Code, seen)
		}
	})

	t.Run("protected rejects anonymous", func(t *testing.T) {
		var seen entities.Actor
		r := newRouter(ActorConfig{SigningKey: key}, &seen)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid bearer token", func(t *testing.T) {
		var seen entities.Actor
		r := newRouter(ActorConfig{SigningKey: key}, &seen)
		token := signToken(t, key, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "doc-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			Role:             "Doctor",
			Name:             "Dr. House",
			CRM:              "CRM-SP 1",
		})
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if seen.ID != "doc-1" || seen.Role != entities.RoleDoctor || seen.CRM != "CRM-SP 1" {
			t.Fatalf("unexpected actor: %+v", seen)
		}
	})

	t.Run("token signed with another key", func(t *testing.T) {
		var seen entities.Actor
		r := newRouter(ActorConfig{SigningKey: key}, &seen)
		token := signToken(t, []byte("other"), Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "x"}, Role: "admin"})
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("headers only when allowed", func(t *testing.T) {
		var seen entities.Actor
		r := newRouter(ActorConfig{}, &seen)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(HeaderActorID, "pat-1")
		req.Header.Set(HeaderActorRole, "patient")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}

		r = newRouter(ActorConfig{AllowHeaders: true}, &seen)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || seen.ID != "pat-1" || seen.Role != entities.RolePatient {
			t.Fatalf("expected header actor, got %d %+v", w.Code, seen)
		}
	})

	t.Run("system role cannot be claimed", func(t *testing.T) {
		var seen entities.Actor
		r := newRouter(ActorConfig{AllowHeaders: true}, &seen)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(HeaderActorID, "x")
		req.Header.Set(HeaderActorRole, "system")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestRequestMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestMeta())
	var meta usecase.RequestMeta
	r.GET("/", func(c *gin.Context) {
		meta = usecase.RequestMetaFrom(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	req.Header.Set("User-Agent", "test-agent")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if meta.CorrelationID != "rid-1" || meta.UserAgent != "test-agent" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if w.Header().Get(HeaderRequestID) != "rid-1" {
		t.Fatalf("expected echoed request id, got %q", w.Header().Get(HeaderRequestID))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get(HeaderRequestID) == "" || meta.CorrelationID == "" {
		t.Fatalf("expected generated request id")
	}
}
