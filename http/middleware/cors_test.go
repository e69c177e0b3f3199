package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tnqbao/gau-vm-service/config"
	middlewares "github.com/tnqbao/gau-vm-service/http/middleware"
)

func corsRequest(cfg *config.EnvConfig, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.CORSMiddleware(cfg))
	r.GET("/vms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"vms": []string{}})
	})

	req := httptest.NewRequest(http.MethodGet, "/vms", nil)
	req.Header.Set("Origin", origin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSMiddleware_AllowsAllWithoutDomains(t *testing.T) {
	w := corsRequest(&config.EnvConfig{}, "http://anywhere.example")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_RestrictsToDomains(t *testing.T) {
	cfg := &config.EnvConfig{}
	cfg.CORS.AllowDomains = "https://console.example, https://admin.example"

	w := corsRequest(cfg, "https://admin.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://admin.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = corsRequest(cfg, "https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
