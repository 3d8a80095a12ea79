package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newLogRouter(l *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware(l))
	r.GET("/api/teachers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r
}

func TestGinMiddlewareLogsRouteAndPath(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newLogRouter(zap.New(core))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/teachers/7", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "/api/teachers/7", fields["path"])
	assert.Equal(t, "/api/teachers/:id", fields["route"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestGinMiddlewareServerErrorLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newLogRouter(zap.New(core))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}
