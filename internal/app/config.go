package app

import (
	"github.com/moodpick/moodpick-backend/internal/platform/envutil"
)

type Config struct {
	Port    string
	LogMode string

	// SeedCSVPath, when set, imports a catalog export on boot so a fresh
	// deployment starts with titles to recommend.
	SeedCSVPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func LoadConfig() Config {
	return Config{
		Port:          envutil.Str("PORT", "8080"),
		LogMode:       envutil.Str("LOG_MODE", "development"),
		SeedCSVPath:   envutil.Str("CATALOG_SEED_CSV", ""),
		RedisAddr:     envutil.Str("REDIS_ADDR", ""),
		RedisPassword: envutil.Str("REDIS_PASSWORD", ""),
		RedisDB:       envutil.Int("REDIS_DB", 0),
	}
}
