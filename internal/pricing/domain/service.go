package domain

import (
	"context"
	"time"
)

type CreatePricingRequest struct {
	TalentID      string `json:"talent_id"`
	PersonalPrice int64  `json:"personal_price"`
	BusinessPrice int64  `json:"business_price"`
	Currency      string `json:"currency"`
}

type UpdatePricingRequest struct {
	TalentID        string  `json:"talent_id"`
	PersonalPrice   int64   `json:"personal_price"`
	BusinessPrice   int64   `json:"business_price"`
	ChangeReason    *string `json:"change_reason,omitempty"`
	ExpectedVersion int     `json:"version"`
	Currency        string  `json:"currency"`
}

type Response struct {
	TalentID              string    `json:"talent_id"`
	StripeProductID       string    `json:"stripe_product_id"`
	PersonalPrice         int64     `json:"personal_price"`
	BusinessPrice         int64     `json:"business_price"`
	StripePersonalPriceID string    `json:"stripe_personal_price_id"`
	StripeBusinessPriceID string    `json:"stripe_business_price_id"`
	Version               int       `json:"version"`
	LastSyncedAt          time.Time `json:"last_synced_at"`
}

type HistoryEntryResponse struct {
	PersonalPrice int64     `json:"personal_price"`
	BusinessPrice int64     `json:"business_price"`
	ChangeReason  *string   `json:"change_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type WithHistoryResponse struct {
	Current Response               `json:"current"`
	History []HistoryEntryResponse `json:"history"`
}

type Service interface {
	Create(ctx context.Context, req CreatePricingRequest) (*Response, error)
	Update(ctx context.Context, req UpdatePricingRequest) error
	Get(ctx context.Context, talentID string) (*WithHistoryResponse, error)
}
