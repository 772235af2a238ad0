package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/service-booking/utils"
)

func newTestEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetString(ContextAdminID)})
	})
	return r
}

func doGet(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := newTestEngine(AdminAuthMiddleware(tokens))

	w := doGet(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized. Access token is missing.", body.Message)

	w = doGet(r, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized. Access token is invalid.", body.Message)

	token, err := tokens.GenerateToken("admin-1", "admin@admin.com")
	require.NoError(t, err)

	w = doGet(r, map[string]string{"Authorization": "Token " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(r, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin_id":"admin-1"}`, w.Body.String())

	tokens.RevokeToken(token, time.Now().Add(time.Hour))
	w = doGet(r, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestThrottle(t *testing.T) {
	throttle := NewThrottle("test", 2)
	r := newTestEngine(throttle.Middleware())

	assert.Equal(t, http.StatusOK, doGet(r, nil).Code)
	assert.Equal(t, http.StatusOK, doGet(r, nil).Code)

	w := doGet(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	// IP lain punya bucket sendiri
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.RemoteAddr = "198.51.100.1:1234"
	other := httptest.NewRecorder()
	r.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestThrottleDisabled(t *testing.T) {
	r := newTestEngine(NewThrottle("off", 0).Middleware())
	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, doGet(r, nil).Code)
	}
}

func TestThrottlePrunesIdleVisitors(t *testing.T) {
	now := time.Now()
	throttle := NewThrottle("test", 10)
	throttle.now = func() time.Time { return now }

	throttle.limiterFor("a")
	now = now.Add(time.Hour)
	throttle.limiterFor("b")

	assert.Len(t, throttle.visitors, 1)
	assert.Contains(t, throttle.visitors, "b")
}

func TestSecurityAndCORSHeaders(t *testing.T) {
	r := newTestEngine(SecurityHeaders(), CORSMiddlewares("https://app.example.com"), NoStore())

	w := doGet(r, nil)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	pre := httptest.NewRecorder()
	r.ServeHTTP(pre, req)
	assert.Equal(t, http.StatusNoContent, pre.Code)
}
