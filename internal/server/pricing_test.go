package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	paymentdomain "github.com/castbooklabs/castbook/internal/payment/domain"
	pricingdomain "github.com/castbooklabs/castbook/internal/pricing/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPricingService struct {
	mock.Mock
}

func (m *mockPricingService) Create(ctx context.Context, req pricingdomain.CreatePricingRequest) (*pricingdomain.Response, error) {
	args := m.Called(ctx, req)
	if r, ok := args.Get(0).(*pricingdomain.Response); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPricingService) Update(ctx context.Context, req pricingdomain.UpdatePricingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockPricingService) Get(ctx context.Context, talentID string) (*pricingdomain.WithHistoryResponse, error) {
	args := m.Called(ctx, talentID)
	if r, ok := args.Get(0).(*pricingdomain.WithHistoryResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestServer(t *testing.T) (*mockPricingService, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := &mockPricingService{}
	s := &Server{log: zap.NewNop(), pricingSvc: svc}
	return svc, s.Handler()
}

func doJSON(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreatePricing_Success(t *testing.T) {
	svc, handler := newTestServer(t)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req pricingdomain.CreatePricingRequest) bool {
		return req.TalentID == "123" && req.PersonalPrice == 5000 && req.BusinessPrice == 10000
	})).Return(&pricingdomain.Response{
		TalentID:        "123",
		StripeProductID: "prod_1",
		Version:         1,
	}, nil)

	rec := doJSON(handler, http.MethodPost, "/api/talent-pricing",
		`{"talent_id": "123", "personal_price": 5000, "business_price": 10000, "currency": "EUR"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"prod_1"`)
	svc.AssertExpectations(t)
}

func TestCreatePricing_MalformedBody(t *testing.T) {
	svc, handler := newTestServer(t)

	rec := doJSON(handler, http.MethodPost, "/api/talent-pricing", `{"talent_id": `)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePricing_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid price", pricingdomain.ErrInvalidPrice, http.StatusBadRequest},
		{"unsupported currency", pricingdomain.ErrUnsupportedCurrency, http.StatusBadRequest},
		{"missing talent", pricingdomain.ErrTalentNotFound, http.StatusBadRequest},
		{"already configured", pricingdomain.ErrPricingExists, http.StatusConflict},
		{"provider down", paymentdomain.ErrProviderUnavailable, http.StatusBadGateway},
		{"provider rejected", paymentdomain.ErrProviderRejected, http.StatusBadGateway},
		{"unexpected", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, handler := newTestServer(t)
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := doJSON(handler, http.MethodPost, "/api/talent-pricing",
				`{"talent_id": "123", "personal_price": 5000, "business_price": 10000, "currency": "EUR"}`)

			require.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestUpdatePricing_SuccessIsNoContent(t *testing.T) {
	svc, handler := newTestServer(t)
	svc.On("Update", mock.Anything, mock.MatchedBy(func(req pricingdomain.UpdatePricingRequest) bool {
		return req.TalentID == "123" && req.ExpectedVersion == 2 &&
			req.ChangeReason != nil && *req.ChangeReason == "rate increase"
	})).Return(nil)

	rec := doJSON(handler, http.MethodPut, "/api/talent-pricing",
		`{"talent_id": "123", "personal_price": 6000, "business_price": 12000, "version": 2, "change_reason": "rate increase", "currency": "EUR"}`)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestUpdatePricing_VersionConflict(t *testing.T) {
	svc, handler := newTestServer(t)
	svc.On("Update", mock.Anything, mock.Anything).Return(pricingdomain.ErrVersionConflict)

	rec := doJSON(handler, http.MethodPut, "/api/talent-pricing",
		`{"talent_id": "123", "personal_price": 6000, "business_price": 12000, "version": 1, "currency": "EUR"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "please refresh")
}

func TestGetPricing_Found(t *testing.T) {
	svc, handler := newTestServer(t)
	svc.On("Get", mock.Anything, "123").Return(&pricingdomain.WithHistoryResponse{
		Current: pricingdomain.Response{TalentID: "123", Version: 3},
	}, nil)

	rec := doJSON(handler, http.MethodGet, "/api/talent-pricing/123", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"version":3`)
}

func TestGetPricing_NotFound(t *testing.T) {
	svc, handler := newTestServer(t)
	svc.On("Get", mock.Anything, "999").Return(nil, pricingdomain.ErrPricingNotFound)

	rec := doJSON(handler, http.MethodGet, "/api/talent-pricing/999", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}
