package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/castbooklabs/castbook/internal/pricing/domain"
	talentdomain "github.com/castbooklabs/castbook/internal/talent/domain"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now(ctx context.Context) time.Time { return testNow }

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetProfile(ctx context.Context, db *gorm.DB, talentID snowflake.ID) (*domain.TalentPricing, error) {
	args := m.Called(ctx, db, talentID)
	if p, ok := args.Get(0).(*domain.TalentPricing); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetWithHistory(ctx context.Context, db *gorm.DB, talentID snowflake.ID, limit int) (*domain.PricingWithHistory, error) {
	args := m.Called(ctx, db, talentID, limit)
	if p, ok := args.Get(0).(*domain.PricingWithHistory); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpsertWithHistory(ctx context.Context, db *gorm.DB, record *domain.TalentPricing, changeReason *string, expectedVersion *int) (int, error) {
	args := m.Called(ctx, db, record, changeReason, expectedVersion)
	return args.Int(0), args.Error(1)
}

type mockTalentRepo struct {
	mock.Mock
}

func (m *mockTalentRepo) Exists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	args := m.Called(ctx, db, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockTalentRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*talentdomain.Talent, error) {
	args := m.Called(ctx, db, id)
	if t, ok := args.Get(0).(*talentdomain.Talent); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateProduct(ctx context.Context, talentID snowflake.ID, displayName string) (string, error) {
	args := m.Called(ctx, talentID, displayName)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) CreatePrice(ctx context.Context, productID string, amount int64, currency, tierLabel string) (string, error) {
	args := m.Called(ctx, productID, amount, currency, tierLabel)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) ArchivePrice(ctx context.Context, priceID string) error {
	args := m.Called(ctx, priceID)
	return args.Error(0)
}

func (m *mockGateway) ArchiveProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type fixture struct {
	svc     *Service
	repo    *mockRepo
	talents *mockTalentRepo
	gateway *mockGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:    &mockRepo{},
		talents: &mockTalentRepo{},
		gateway: &mockGateway{},
	}
	f.svc = &Service{
		log:          zap.NewNop(),
		clock:        fixedClock{},
		repo:         f.repo,
		talentRepo:   f.talents,
		gateway:      f.gateway,
		currency:     "EUR",
		historyLimit: 10,
		nameFallback: "Talent %s",
	}
	return f
}
