package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotConfigured       = errors.New("provider_not_configured")
	ErrProviderRejected    = errors.New("provider_rejected")
	ErrProviderUnavailable = errors.New("provider_unavailable")
)

// Gateway abstracts the external payment provider that owns the canonical
// product and price objects. Every call is idempotent per logical attempt:
// the adapter attaches a fresh idempotency token and reuses it across its
// internal retries, so a timed-out request cannot duplicate provider objects.
//
// Archival is one-directional. The provider does not support reactivation,
// so callers must only archive objects that are truly superseded.
type Gateway interface {
	CreateProduct(ctx context.Context, talentID snowflake.ID, displayName string) (string, error)
	CreatePrice(ctx context.Context, productID string, amount int64, currency, tierLabel string) (string, error)
	ArchivePrice(ctx context.Context, priceID string) error
	ArchiveProduct(ctx context.Context, productID string) error
}
