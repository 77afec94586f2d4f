package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastevine/v1/internal/infrastructure/config"
	"github.com/tastevine/v1/internal/infrastructure/security"
)

const testSecret = "middleware-test-secret"

func testJWT() *security.JWTService {
	cfg := &config.Config{}
	cfg.App.Name = "test"
	cfg.Auth.JWTSecret = testSecret
	cfg.Auth.JWTExpiration = time.Hour
	return security.NewJWTService(cfg)
}

func TestCORS(t *testing.T) {
	serve := func(origins []string, requestOrigin string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if requestOrigin != "" {
			req.Header.Set("Origin", requestOrigin)
		}
		handler := CORS(origins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("echoes an allow-listed origin", func(t *testing.T) {
		rec := serve([]string{"https://app.tastevine.dev", "https://staging.tastevine.dev"}, "https://staging.tastevine.dev")

		assert.Equal(t, "https://staging.tastevine.dev", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("never joins the allow list into one header value", func(t *testing.T) {
		rec := serve([]string{"https://a.example", "https://b.example"}, "https://a.example")

		assert.Equal(t, "https://a.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("omits the header for unknown origins", func(t *testing.T) {
		rec := serve([]string{"https://app.tastevine.dev"}, "https://evil.example")

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("an empty allow list means any origin", func(t *testing.T) {
		rec := serve(nil, "https://anywhere.example")

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://app.tastevine.dev")
		called := false
		CORS([]string{"https://app.tastevine.dev"})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
	})
}

func TestAuthenticate(t *testing.T) {
	jwtService := testJWT()

	capture := func() (http.Handler, *string) {
		var got string
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = GetUserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}), &got
	}

	serve := func(token string) (*httptest.ResponseRecorder, *string) {
		next, got := capture()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		Authenticate(jwtService)(next).ServeHTTP(rec, req)
		return rec, got
	}

	t.Run("resolves the user from a valid token", func(t *testing.T) {
		userID := uuid.New()
		token, _, err := jwtService.Issue(userID, "cook@example.com")
		require.NoError(t, err)

		rec, got := serve(token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), *got)
	})

	t.Run("rejects missing tokens", func(t *testing.T) {
		rec, _ := serve("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects tokens whose subject is not a user id", func(t *testing.T) {
		claims := &security.Claims{
			UserID: "not-a-uuid",
			Email:  "cook@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "not-a-uuid",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec, _ := serve(token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuthenticate(t *testing.T) {
	jwtService := testJWT()

	t.Run("anonymous requests pass through without identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		OptionalAuthenticate(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := GetUserIDFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid tokens attach the user", func(t *testing.T) {
		userID := uuid.New()
		token, _, err := jwtService.Issue(userID, "cook@example.com")
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		OptionalAuthenticate(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, userID.String(), got)
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
