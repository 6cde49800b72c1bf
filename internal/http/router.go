package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/moodpick/moodpick-backend/internal/http/handlers"
	httpMW "github.com/moodpick/moodpick-backend/internal/http/middleware"
	"github.com/moodpick/moodpick-backend/internal/platform/logger"
)

type RouterConfig struct {
	HealthHandler         *httpH.HealthHandler
	RecommendationHandler *httpH.RecommendationHandler
	CatalogHandler        *httpH.CatalogHandler

	Log *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.RecommendationHandler != nil {
			api.POST("/recommendations", cfg.RecommendationHandler.Recommend)
		}
		if cfg.CatalogHandler != nil {
			api.POST("/catalog/import", cfg.CatalogHandler.Import)
			api.GET("/catalog/genres", cfg.CatalogHandler.Genres)
		}
	}

	return r
}
