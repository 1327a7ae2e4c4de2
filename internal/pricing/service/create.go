package service

import (
	"context"

	"github.com/castbooklabs/castbook/internal/pricing/domain"
	"go.uber.org/zap"
)

// Create runs the first-time pricing setup saga: validate, check
// preconditions, create the gateway product and both tier prices, then
// persist record and history atomically. If anything fails after the product
// exists, the created gateway objects are archived before the original error
// propagates.
func (s *Service) Create(ctx context.Context, req domain.CreatePricingRequest) (*domain.Response, error) {
	talentID, err := s.validate(req.TalentID, req.PersonalPrice, req.BusinessPrice, req.Currency)
	if err != nil {
		return nil, err
	}

	exists, err := s.talentRepo.Exists(ctx, s.db, talentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrTalentNotFound
	}

	current, err := s.repo.GetProfile(ctx, s.db, talentID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		// Idempotent create is deliberately disallowed: the caller must use
		// Update against the existing record.
		return nil, domain.ErrPricingExists
	}

	var undos []undo

	productID, err := s.gateway.CreateProduct(ctx, talentID, s.displayName(ctx, talentID))
	if err != nil {
		return nil, err
	}
	undos = append(undos, undo{desc: "archive product " + productID, fn: func(ctx context.Context) error {
		return s.gateway.ArchiveProduct(ctx, productID)
	}})

	// Personal before business: the order carries no meaning but must be
	// deterministic.
	personalPriceID, err := s.gateway.CreatePrice(ctx, productID, req.PersonalPrice, req.Currency, domain.TierPersonal)
	if err != nil {
		s.compensate(ctx, undos, err)
		return nil, err
	}
	undos = append(undos, undo{desc: "archive price " + personalPriceID, fn: func(ctx context.Context) error {
		return s.gateway.ArchivePrice(ctx, personalPriceID)
	}})

	businessPriceID, err := s.gateway.CreatePrice(ctx, productID, req.BusinessPrice, req.Currency, domain.TierBusiness)
	if err != nil {
		s.compensate(ctx, undos, err)
		return nil, err
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
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	reason := domain.InitialChangeReason
	if _, err := s.repo.UpsertWithHistory(ctx, s.db, record, &reason, nil); err != nil {
		s.compensate(ctx, undos, err)
		return nil, err
	}

	s.log.Info("pricing created",
		zap.String("talent_id", talentID.String()),
		zap.String("product_id", productID),
		zap.Int("version", record.Version))

	resp := toResponse(record)
	return &resp, nil
}
