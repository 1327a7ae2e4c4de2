package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	GetProfile(ctx context.Context, db *gorm.DB, talentID snowflake.ID) (*TalentPricing, error)
	GetWithHistory(ctx context.Context, db *gorm.DB, talentID snowflake.ID, limit int) (*PricingWithHistory, error)

	// UpsertWithHistory replaces the current record and appends a history
	// entry as one indivisible unit, returning the new version.
	//
	// With expectedVersion nil (create path) the write requires no prior row
	// for the talent and fails with ErrPricingExists otherwise. With an
	// expected version the stored version must match or the write is rejected
	// with ErrVersionConflict; a missing row yields ErrPricingNotFound.
	UpsertWithHistory(ctx context.Context, db *gorm.DB, record *TalentPricing, changeReason *string, expectedVersion *int) (int, error)
}
