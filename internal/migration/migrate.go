package migration

import (
	pricingdomain "github.com/castbooklabs/castbook/internal/pricing/domain"
	talentdomain "github.com/castbooklabs/castbook/internal/talent/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run applies the schema for the feature models. The production schema is
// owned elsewhere; this keeps dev and test databases usable without setup.
func Run(db *gorm.DB, log *zap.Logger) error {
	log.Info("running schema migration")
	return db.AutoMigrate(
		&talentdomain.Talent{},
		&pricingdomain.TalentPricing{},
		&pricingdomain.PricingHistoryEntry{},
	)
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)
