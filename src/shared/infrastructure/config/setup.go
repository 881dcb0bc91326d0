package config

import (
	"strconv"
	"time"

	"sales/src/shared/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// SharedConfig contiene la configuración de los middlewares compartidos
type SharedConfig struct {
	EnableRequestLog bool     `yaml:"enable_request_log"`
	EnableMetrics    bool     `yaml:"enable_metrics"`
	ExcludedPaths    []string `yaml:"excluded_paths"` // Rutas que no se miden
}

// DefaultSharedConfig devuelve una configuración por defecto
func DefaultSharedConfig() SharedConfig {
	return SharedConfig{
		EnableRequestLog: true,
		EnableMetrics:    true,
		ExcludedPaths:    []string{"/health", "/metrics"},
	}
}

// SetupSharedMiddleware configura los middlewares compartidos
func SetupSharedMiddleware(router *gin.Engine, config SharedConfig, serverMetrics *metrics.ServerMetrics) {
	if config.EnableRequestLog {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())

	if config.EnableMetrics && serverMetrics != nil {
		router.Use(requestMetrics(serverMetrics, config.ExcludedPaths))
	}
}

// requestMetrics mide cantidad y latencia de requests por ruta
func requestMetrics(m *metrics.ServerMetrics, excluded []string) gin.HandlerFunc {
	skip := make(map[string]bool, len(excluded))
	for _, p := range excluded {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}
