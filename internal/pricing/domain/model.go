package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	TierPersonal = "personal"
	TierBusiness = "business"

	// InitialChangeReason tags the history entry written by first-time setup.
	InitialChangeReason = "Initial pricing setup"

	// MaxPriceMinorUnits caps tier prices at 999,999.99 in minor units.
	MaxPriceMinorUnits int64 = 100_000_000

	DefaultHistoryLimit = 10
)

// TalentPricing is the store-of-record row for one talent. The provider-side
// product and price objects are referenced by opaque identifier only; their
// state is never cached beyond what our own mutation calls returned.
//
// Version increases by one on every successful update and is the optimistic
// concurrency token: a write carrying a stale expected version is rejected.
type TalentPricing struct {
	TalentID              snowflake.ID `json:"talent_id" gorm:"primaryKey"`
	StripeProductID       string       `json:"stripe_product_id" gorm:"type:text;not null"`
	PersonalPrice         int64        `json:"personal_price" gorm:"not null"`
	BusinessPrice         int64        `json:"business_price" gorm:"not null"`
	StripePersonalPriceID string       `json:"stripe_personal_price_id" gorm:"type:text;not null"`
	StripeBusinessPriceID string       `json:"stripe_business_price_id" gorm:"type:text;not null"`
	PricesLastSyncedAt    time.Time    `json:"prices_last_synced_at" gorm:"not null"`
	Version               int          `json:"version" gorm:"not null"`
	CreatedAt             time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt             time.Time    `json:"updated_at" gorm:"not null"`
}

func (TalentPricing) TableName() string { return "talent_pricings" }

// PricingHistoryEntry is the append-only audit row. Immutable once written.
type PricingHistoryEntry struct {
	ID                    uint         `json:"id" gorm:"primaryKey;autoIncrement"`
	TalentID              snowflake.ID `json:"talent_id" gorm:"not null;index"`
	PersonalPrice         int64        `json:"personal_price" gorm:"not null"`
	BusinessPrice         int64        `json:"business_price" gorm:"not null"`
	StripeProductID       string       `json:"stripe_product_id" gorm:"type:text"`
	StripePersonalPriceID string       `json:"stripe_personal_price_id" gorm:"type:text"`
	StripeBusinessPriceID string       `json:"stripe_business_price_id" gorm:"type:text"`
	ChangeReason          *string      `json:"change_reason" gorm:"type:text"`
	CreatedAt             time.Time    `json:"created_at" gorm:"not null"`
}

func (PricingHistoryEntry) TableName() string { return "talent_pricing_history" }

// PricingWithHistory pairs the current record with a bounded,
// most-recent-first slice of history entries.
type PricingWithHistory struct {
	Current TalentPricing         `json:"current"`
	History []PricingHistoryEntry `json:"history"`
}
