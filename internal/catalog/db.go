package catalog

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/moodpick/moodpick-backend/internal/domain"
	"github.com/moodpick/moodpick-backend/internal/platform/envutil"
	"github.com/moodpick/moodpick-backend/internal/platform/logger"
)

// OpenDB connects the catalog database. CATALOG_DB_DRIVER selects
// postgres (prod) or sqlite (dev and tests, the default).
func OpenDB(log *logger.Logger) (*gorm.DB, error) {
	driver := envutil.Str("CATALOG_DB_DRIVER", "sqlite")

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "postgres":
		host := envutil.Str("POSTGRES_HOST", "localhost")
		port := envutil.Str("POSTGRES_PORT", "5432")
		user := envutil.Str("POSTGRES_USER", "postgres")
		password := envutil.Str("POSTGRES_PASSWORD", "")
		name := envutil.Str("POSTGRES_NAME", "moodpick")
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		log.Info("Connecting to Postgres catalog...", "host", host, "db", name)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
	case "sqlite":
		path := envutil.Str("CATALOG_SQLITE_PATH", "moodpick.db")
		log.Info("Opening sqlite catalog...", "path", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
	default:
		return nil, fmt.Errorf("unknown CATALOG_DB_DRIVER %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog db (%s): %w", driver, err)
	}

	if err := db.AutoMigrate(&domain.CatalogRecord{}); err != nil {
		return nil, fmt.Errorf("catalog automigrate: %w", err)
	}
	return db, nil
}
