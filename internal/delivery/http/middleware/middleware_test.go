package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestResolveVisitorID(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": " 9.9.9.9 , 10.0.0.1"}, "127.0.0.1:5000", "9.9.9.9"},
		{"forwarded wins over real ip", map[string]string{"X-Forwarded-For": "9.9.9.9", "X-Real-IP": "8.8.8.8"}, "", "9.9.9.9"},
		{"empty forwarded entry falls through", map[string]string{"X-Forwarded-For": " ,1.1.1.1", "X-Real-IP": "8.8.8.8"}, "", "8.8.8.8"},
		{"real ip", map[string]string{"X-Real-IP": " 8.8.8.8 "}, "127.0.0.1:5000", "8.8.8.8"},
		{"peer with port", nil, "203.0.113.7:443", "203.0.113.7"},
		{"ipv6 peer", nil, "[::1]:8080", "::1"},
		{"peer without port", nil, "203.0.113.7", "203.0.113.7"},
		{"nothing", nil, "", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, ResolveVisitorID(h, tt.remoteAddr))
		})
	}
}

func TestVisitorMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(Visitor())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, VisitorID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "8.8.8.8")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "8.8.8.8", w.Body.String())
}

func TestVisitorID_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "unknown", VisitorID(c))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	preflight := httptest.NewRequest(http.MethodOptions, "/x", nil)
	preflight.Header.Set("Origin", "http://app.test")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, preflight)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET,POST,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Api-Version")

	get := httptest.NewRequest(http.MethodGet, "/x", nil)
	get.Header.Set("Origin", "http://app.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, get)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequestLogger(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, w.Header().Get("X-Request-ID"), entry.Data["request_id"])
	assert.NotEmpty(t, entry.Data["request_id"])

	req := httptest.NewRequest(http.MethodGet, "/bad", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	entry = hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "abc", entry.Data["request_id"])
	assert.Equal(t, http.StatusBadRequest, entry.Data["status"])
}

func TestRecovery(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	r := gin.New()
	r.Use(Recovery(log))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Something went wrong"}`, w.Body.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "boom", hook.LastEntry().Data["panic"])
}
