package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	newReq := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		return req
	}

	assert.Equal(t, http.StatusOK, serve(r, newReq("10.0.0.1")).Code)
	assert.Equal(t, http.StatusOK, serve(r, newReq("10.0.0.1")).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, newReq("10.0.0.1")).Code)
	// Other clients have their own budget.
	assert.Equal(t, http.StatusOK, serve(r, newReq("10.0.0.2")).Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	assert.Equal(t, "abc-123", serve(r, req).Header().Get(requestIDHeader))
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]func(*http.Request){
		"203.0.113.5":  func(r *http.Request) { r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1") },
		"198.51.100.7": func(r *http.Request) { r.Header.Set("X-Real-IP", " 198.51.100.7 ") },
		"192.0.2.44":   func(r *http.Request) { r.RemoteAddr = "192.0.2.44:4567" },
		"192.0.2.1":    func(r *http.Request) { r.Header.Set("X-Forwarded-For", " , 10.0.0.1") },
	}
	for want, setup := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		setup(req)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = req
		assert.Equal(t, want, getClientIP(c))
	}
}
