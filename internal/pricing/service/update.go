package service

import (
	"context"

	"github.com/castbooklabs/castbook/internal/pricing/domain"
	"go.uber.org/zap"
)

// Update runs the price-change saga: validate, load the current record,
// ensure a gateway product exists, create both new tier prices, persist under
// the caller's expected version, and only then archive the superseded prices.
//
// The provider has no atomic swap, so persisting before archiving trades a
// short window of redundant active prices for never having the old prices
// gone while the new record is not durable. A stale expected version means
// another editor won: the freshly created prices are compensated and the
// conflict surfaces to the caller without retrying the write.
func (s *Service) Update(ctx context.Context, req domain.UpdatePricingRequest) error {
	talentID, err := s.validate(req.TalentID, req.PersonalPrice, req.BusinessPrice, req.Currency)
	if err != nil {
		return err
	}
	if req.ExpectedVersion <= 0 {
		return domain.ErrInvalidVersion
	}

	current, err := s.repo.GetWithHistory(ctx, s.db, talentID, s.historyLimit)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrPricingNotFound
	}

	productID := current.Current.StripeProductID
	if productID == "" {
		// Rows migrated before gateway sync carry no product reference.
		productID, err = s.gateway.CreateProduct(ctx, talentID, s.displayName(ctx, talentID))
		if err != nil {
			return err
		}
		s.log.Info("created gateway product for legacy pricing row",
			zap.String("talent_id", talentID.String()),
			zap.String("product_id", productID))
	}

	var undos []undo

	personalPriceID, err := s.gateway.CreatePrice(ctx, productID, req.PersonalPrice, req.Currency, domain.TierPersonal)
	if err != nil {
		return err
	}
	undos = append(undos, undo{desc: "archive price " + personalPriceID, fn: func(ctx context.Context) error {
		return s.gateway.ArchivePrice(ctx, personalPriceID)
	}})

	businessPriceID, err := s.gateway.CreatePrice(ctx, productID, req.BusinessPrice, req.Currency, domain.TierBusiness)
	if err != nil {
		s.compensate(ctx, undos, err)
		return err
	}
	undos = append(undos, undo{desc: "archive price " + businessPriceID, fn: func(ctx context.Context) error {
		return s.gateway.ArchivePrice(ctx, businessPriceID)
	}})

	now := s.clock.Now(ctx)
	record := &domain.TalentPricing{
		TalentID:              talentID,
		StripeProductID:       productID,
		PersonalPrice:         req.PersonalPrice,
		BusinessPrice:         req.BusinessPrice,
		StripePersonalPriceID: personalPriceID,
		StripeBusinessPriceID: businessPriceID,
		PricesLastSyncedAt:    now,
		UpdatedAt:             now,
	}

	expected := req.ExpectedVersion
	newVersion, err := s.repo.UpsertWithHistory(ctx, s.db, record, req.ChangeReason, &expected)
	if err != nil {
		s.compensate(ctx, undos, err)
		return err
	}

	// Cleanup of the superseded prices is non-fatal: failing to deactivate
	// an old price does not corrupt the new authoritative state. Old prices
	// are never un-archived (the provider does not support it).
	for _, oldPriceID := range []string{current.Current.StripePersonalPriceID, current.Current.StripeBusinessPriceID} {
		if oldPriceID == "" {
			continue
		}
		if err := s.gateway.ArchivePrice(ctx, oldPriceID); err != nil {
			s.log.Warn("failed to archive superseded price",
				zap.String("talent_id", talentID.String()),
				zap.String("price_id", oldPriceID),
				zap.Error(err))
		}
	}

	s.log.Info("pricing updated",
		zap.String("talent_id", talentID.String()),
		zap.Int("version", newVersion))

	return nil
}
