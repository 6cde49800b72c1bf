// Package app wires the service graph: storage, clients, the
// recommendation pipeline and the HTTP router.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/moodpick/moodpick-backend/internal/catalog"
	"github.com/moodpick/moodpick-backend/internal/extract"
	"github.com/moodpick/moodpick-backend/internal/filter"
	moodhttp "github.com/moodpick/moodpick-backend/internal/http"
	httpH "github.com/moodpick/moodpick-backend/internal/http/handlers"
	"github.com/moodpick/moodpick-backend/internal/platform/logger"
	"github.com/moodpick/moodpick-backend/internal/platform/openai"
	"github.com/moodpick/moodpick-backend/internal/recommend"
)

type App struct {
	Log     *logger.Logger
	DB      *gorm.DB
	Router  *gin.Engine
	Cfg     Config
	Catalog *catalog.Store
	Service *recommend.Service

	redis *redis.Client
}

func New() (*App, error) {
	cfg := LoadConfig()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := catalog.OpenDB(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init catalog db: %w", err)
	}
	store := catalog.NewStore(db, log)

	oracle, err := openai.NewClient(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init oracle client: %w", err)
	}

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	extractor := extract.New(oracle, log)
	cascade := filter.NewCascade(log)
	svc := recommend.NewService(extractor, store, cascade, cache, log)

	router := moodhttp.NewRouter(moodhttp.RouterConfig{
		HealthHandler:         httpH.NewHealthHandler(),
		RecommendationHandler: httpH.NewRecommendationHandler(svc),
		CatalogHandler:        httpH.NewCatalogHandler(store),
		Log:                   log,
	})

	return &App{
		Log:     log,
		DB:      db,
		Router:  router,
		Cfg:     cfg,
		Catalog: store,
		Service: svc,
		redis:   cache,
	}, nil
}

// SeedCatalog imports the configured CSV when the store is empty.
// A populated store is left alone so restarts do not clobber data
// imported through the API.
func (a *App) SeedCatalog(ctx context.Context) error {
	if a.Cfg.SeedCSVPath == "" {
		return nil
	}
	n, err := a.Catalog.Count(ctx)
	if err != nil {
		return fmt.Errorf("count catalog: %w", err)
	}
	if n > 0 {
		a.Log.Info("catalog already populated, skipping seed", "titles", n)
		return nil
	}
	f, err := os.Open(a.Cfg.SeedCSVPath)
	if err != nil {
		return fmt.Errorf("open seed csv: %w", err)
	}
	defer f.Close()
	stats, err := a.Catalog.ImportCSV(ctx, f)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	a.Log.Info("catalog seeded", "imported", stats.Imported, "skipped", stats.Skipped)
	return nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
