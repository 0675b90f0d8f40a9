package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := RequestLogger(zap.New(core))(okHandler)

	r := httptest.NewRequest(http.MethodPost, "/demo-requests", nil)
	r.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/demo-requests", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	h := RequestLogger(nil)(okHandler)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		preflight   bool
		expectCode  int
		expectAllow string
	}{
		{name: "listed origin", allowed: []string{"https://appall.fr"}, method: http.MethodPost, origin: "https://appall.fr", expectCode: http.StatusTeapot, expectAllow: "https://appall.fr"},
		{name: "unlisted origin", allowed: []string{"https://appall.fr"}, method: http.MethodPost, origin: "https://evil.test", expectCode: http.StatusTeapot},
		{name: "wildcard", allowed: []string{" * "}, method: http.MethodPost, origin: "https://any.test", expectCode: http.StatusTeapot, expectAllow: "https://any.test"},
		{name: "preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://any.test", preflight: true, expectCode: http.StatusNoContent, expectAllow: "https://any.test"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(tc.method, "/demo-requests", nil)
			r.Header.Set("Origin", tc.origin)
			if tc.preflight {
				r.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			w := httptest.NewRecorder()
			CORS(tc.allowed)(okHandler).ServeHTTP(w, r)

			assert.Equal(t, tc.expectCode, w.Code)
			assert.Equal(t, tc.expectAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
