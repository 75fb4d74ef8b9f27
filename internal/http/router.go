package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"essay-scorer/internal/service"
)

// RouterOptions agrupa las piezas opcionales del router.
type RouterOptions struct {
	CORSAllowOrigin string
	RateLimiter     service.RequestRateLimiter
	// JWT activa auth bearer en /api cuando no es nil.
	JWT *service.JWTService
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, evalH *EvaluationHandler, opts RouterOptions) *gin.Engine {
	r := gin.New()

	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(opts.CORSAllowOrigin))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(jsonContentTypeMiddleware())
	if opts.JWT != nil {
		api.Use(JWTAuthMiddleware(opts.JWT))
	}
	api.GET("/traits", evalH.ListTraits)
	api.POST("/evaluate", rateLimitMiddleware(logger, opts.RateLimiter), evalH.Evaluate)

	return r
}
