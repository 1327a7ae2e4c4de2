package db

import (
	"strings"

	"github.com/castbooklabs/castbook/internal/config"
	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New opens the application database. Postgres when a DSN is configured,
// an embedded sqlite file otherwise so local development needs no setup.
func New(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dsn := strings.TrimSpace(cfg.DatabaseURL)
	if dsn == "" {
		log.Warn("database_url not set, using embedded sqlite")
		return gorm.Open(sqlite.Open("castbook.db"), &gorm.Config{TranslateError: true})
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

var Module = fx.Module("db",
	fx.Provide(New),
)
