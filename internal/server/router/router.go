package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/camposoft/tambero/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(crops *handlers.CropHandler, breeding *handlers.BreedingHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/crops", crops.ListSpecies)
		api.GET("/crops/:id/schedule", crops.Schedule)
		api.GET("/crops/:id/risk", crops.ForecastRisk)
		api.POST("/crops/:id/risk", crops.EvaluateRisk)

		api.POST("/plantings", crops.RegisterPlanting)
		api.GET("/plantings", crops.ListPlantings)

		api.POST("/breeding", breeding.Open)
		api.GET("/breeding", breeding.List)
		api.GET("/breeding/:id", breeding.Get)
		api.PATCH("/breeding/:id", breeding.ApplyChange)
		api.POST("/breeding/:id/finalize", breeding.Finalize)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
