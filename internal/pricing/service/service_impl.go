package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/castbooklabs/castbook/internal/clock"
	"github.com/castbooklabs/castbook/internal/config"
	paymentdomain "github.com/castbooklabs/castbook/internal/payment/domain"
	"github.com/castbooklabs/castbook/internal/pricing/domain"
	talentdomain "github.com/castbooklabs/castbook/internal/talent/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	Cfg        config.Config
	Repo       domain.Repository
	TalentRepo talentdomain.Repository
	Gateway    paymentdomain.Gateway
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	repo       domain.Repository
	talentRepo talentdomain.Repository
	gateway    paymentdomain.Gateway

	currency     string
	historyLimit int
	nameFallback string
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("pricing.service"),
		clock:        p.Clock,
		repo:         p.Repo,
		talentRepo:   p.TalentRepo,
		gateway:      p.Gateway,
		currency:     strings.ToUpper(strings.TrimSpace(p.Cfg.SupportedCurrency)),
		historyLimit: p.Cfg.PricingHistoryLimit,
		nameFallback: p.Cfg.ProductNameFallback,
	}
}

func (s *Service) Get(ctx context.Context, talentID string) (*domain.WithHistoryResponse, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(talentID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidTalent
	}

	pricing, err := s.repo.GetWithHistory(ctx, s.db, id, s.historyLimit)
	if err != nil {
		return nil, err
	}
	if pricing == nil {
		return nil, domain.ErrPricingNotFound
	}

	history := make([]domain.HistoryEntryResponse, 0, len(pricing.History))
	for _, entry := range pricing.History {
		history = append(history, domain.HistoryEntryResponse{
			PersonalPrice: entry.PersonalPrice,
			BusinessPrice: entry.BusinessPrice,
			ChangeReason:  entry.ChangeReason,
			CreatedAt:     entry.CreatedAt,
		})
	}

	return &domain.WithHistoryResponse{
		Current: toResponse(&pricing.Current),
		History: history,
	}, nil
}

func toResponse(p *domain.TalentPricing) domain.Response {
	return domain.Response{
		TalentID:              p.TalentID.String(),
		StripeProductID:       p.StripeProductID,
		PersonalPrice:         p.PersonalPrice,
		BusinessPrice:         p.BusinessPrice,
		StripePersonalPriceID: p.StripePersonalPriceID,
		StripeBusinessPriceID: p.StripeBusinessPriceID,
		Version:               p.Version,
		LastSyncedAt:          p.PricesLastSyncedAt,
	}
}

func (s *Service) validate(talentID string, personal, business int64, currency string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(talentID))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidTalent
	}
	if personal <= 0 || business <= 0 {
		return 0, domain.ErrInvalidPrice
	}
	if personal >= domain.MaxPriceMinorUnits || business >= domain.MaxPriceMinorUnits {
		return 0, domain.ErrInvalidPrice
	}
	if business < personal {
		return 0, domain.ErrInvalidPrice
	}
	if !strings.EqualFold(strings.TrimSpace(currency), s.currency) {
		return 0, domain.ErrUnsupportedCurrency
	}
	return id, nil
}

// displayName resolves the gateway product name for a talent. Business naming
// intent is not recoverable from this subsystem, so rows without a stage name
// fall back to the configured format string rather than a hidden default.
func (s *Service) displayName(ctx context.Context, id snowflake.ID) string {
	talent, err := s.talentRepo.FindByID(ctx, s.db, id)
	if err == nil && talent != nil && strings.TrimSpace(talent.StageName) != "" {
		return talent.StageName
	}
	return fmt.Sprintf(s.nameFallback, id.String())
}

// undo is one compensating step accumulated during a saga's forward path.
// The list is only executed on the failure branch, never speculatively.
type undo struct {
	desc string
	fn   func(context.Context) error
}

// compensate runs accumulated undo steps in reverse order. Failures are
// logged and swallowed: the original error is always what the caller sees.
// The parent context may already be cancelled (that can be exactly why the
// saga failed), so compensation runs detached from its cancellation.
func (s *Service) compensate(ctx context.Context, undos []undo, cause error) {
	ctx = context.WithoutCancel(ctx)
	for i := len(undos) - 1; i >= 0; i-- {
		if err := undos[i].fn(ctx); err != nil {
			s.log.Error("compensation step failed",
				zap.String("step", undos[i].desc),
				zap.NamedError("cause", cause),
				zap.Error(err))
			continue
		}
		s.log.Info("compensated gateway object", zap.String("step", undos[i].desc))
	}
}
