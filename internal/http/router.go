package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"microdose-api/internal/metrics"
)

// PingFunc verifica una dependencia (la base de datos) para /healthz.
type PingFunc func(c *gin.Context) error

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	userH *UserHandler,
	doseH *DoseHandler,
	protocolH *ProtocolHandler,
	journalH *JournalHandler,
	ping PingFunc,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	users := r.Group("/users")
	users.POST("", userH.CreateUser)
	users.GET("/:id", userH.GetUser)

	dose := r.Group("/dose")
	dose.POST("/calculate", doseH.Calculate)
	dose.GET("/history", doseH.History)

	protocols := r.Group("/protocols")
	protocols.POST("", protocolH.CreateProtocol)
	protocols.GET("", protocolH.ListProtocols)
	protocols.GET("/:id", protocolH.GetProtocol)

	journal := r.Group("/journal")
	journal.POST("", journalH.CreateEntry)
	journal.GET("", journalH.ListEntries)

	r.GET("/healthz", func(c *gin.Context) {
		if ping != nil {
			if err := ping(c); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
