package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dues-service/logging"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestEnableCORS(t *testing.T) {
	handler := EnableCORS("http://localhost:3000")(http.HandlerFunc(okHandler))

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/updateStatus", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})

	t.Run("PassThrough", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/requests", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logging.Configure(logger, &buf, "info")

	var seenID string
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}))

	t.Run("GeneratesID", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/getMemberData", nil))

		require.NotEmpty(t, seenID)
		assert.Equal(t, seenID, w.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), "HTTP_REQUEST_REJECTED")
		assert.Contains(t, buf.String(), "status=404")
	})

	t.Run("KeepsIncomingID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/getMemberData", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", seenID)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})
}

func signToken(t *testing.T, secret []byte, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestIdentity(t *testing.T) {
	secret := []byte("test-secret")
	var subject string
	handler := Identity(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(authorization string) int {
		subject = ""
		req := httptest.NewRequest(http.MethodGet, "/getMemberData", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("NoToken", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(""))
		assert.Empty(t, subject)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token := signToken(t, secret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "auth0|u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		assert.Equal(t, http.StatusOK, serve("Bearer "+token))
		assert.Equal(t, "auth0|u1", subject)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token := signToken(t, secret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "auth0|u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})
		assert.Equal(t, http.StatusUnauthorized, serve("Bearer "+token))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token := signToken(t, []byte("other"), jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "auth0|u1"})
		assert.Equal(t, http.StatusUnauthorized, serve("Bearer "+token))
	})

	t.Run("WrongAlgorithm", func(t *testing.T) {
		token := signToken(t, secret, jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "auth0|u1"})
		assert.Equal(t, http.StatusUnauthorized, serve("Bearer "+token))
	})

	t.Run("MissingSubject", func(t *testing.T) {
		token := signToken(t, secret, jwt.SigningMethodHS256, jwt.RegisteredClaims{})
		assert.Equal(t, http.StatusUnauthorized, serve("Bearer "+token))
	})
}

func TestMetrics(t *testing.T) {
	metrics := NewMetrics()
	router := mux.NewRouter()
	router.Use(metrics.Middleware)
	router.HandleFunc("/requests/{id}", okHandler).Methods(http.MethodPost)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/requests/abc", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2.0, promtestutil.ToFloat64(metrics.RequestCount(http.MethodPost, "/requests/{id}", http.StatusOK)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
