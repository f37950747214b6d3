// Package httpapi exposes question paper generation over HTTP.
package httpapi

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AliveMessage is the body of GET /.
const AliveMessage = "Backend is alive ✅"

// RouterOptions configures the outer HTTP plumbing.
type RouterOptions struct {
	// AllowedOrigins lists CORS origins. Empty or containing "*" allows all.
	AllowedOrigins []string

	// MaxBodyBytes caps request bodies; larger bodies are rejected with 413.
	MaxBodyBytes int64
}

// NewRouter builds the gin engine serving h.
func NewRouter(h *Handler, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(requestID(), accessLog(logger), recovery(logger))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	r.Use(limitBody(opts.MaxBodyBytes))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, AliveMessage)
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	r.POST("/generate-questions", h.GenerateQuestions)

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowHeaders = append(config.AllowHeaders, requestIDHeader)
	config.ExposeHeaders = []string{requestIDHeader}
	return config
}
