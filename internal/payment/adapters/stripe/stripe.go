package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/castbooklabs/castbook/internal/config"
	paymentdomain "github.com/castbooklabs/castbook/internal/payment/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultMaxRetries = 3
	defaultRetryBase  = 2 * time.Second
)

type Gateway struct {
	apiKey  string
	apiBase string
	client  *http.Client
	log     *zap.Logger

	maxRetries int
	retryBase  time.Duration
}

func New(cfg config.Config, log *zap.Logger) *Gateway {
	return &Gateway{
		apiKey:     strings.TrimSpace(cfg.StripeAPIKey),
		apiBase:    strings.TrimRight(strings.TrimSpace(cfg.StripeAPIBase), "/"),
		client:     &http.Client{Timeout: 10 * time.Second},
		log:        log.Named("stripe.gateway"),
		maxRetries: defaultMaxRetries,
		retryBase:  defaultRetryBase,
	}
}

func (g *Gateway) CreateProduct(ctx context.Context, talentID snowflake.ID, displayName string) (string, error) {
	data := url.Values{}
	data.Set("name", displayName)
	data.Set("metadata[talent_id]", talentID.String())
	data.Set("metadata[type]", "talent_booking")

	var product struct {
		ID string `json:"id"`
	}
	if err := g.postForm(ctx, "/v1/products", data, &product); err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}
	return product.ID, nil
}

func (g *Gateway) CreatePrice(ctx context.Context, productID string, amount int64, currency, tierLabel string) (string, error) {
	data := url.Values{}
	data.Set("product", productID)
	data.Set("unit_amount", strconv.FormatInt(amount, 10))
	data.Set("currency", strings.ToLower(currency))
	data.Set("metadata[price_type]", tierLabel)

	var price struct {
		ID string `json:"id"`
	}
	if err := g.postForm(ctx, "/v1/prices", data, &price); err != nil {
		return "", fmt.Errorf("create price: %w", err)
	}
	return price.ID, nil
}

func (g *Gateway) ArchivePrice(ctx context.Context, priceID string) error {
	data := url.Values{}
	data.Set("active", "false")
	if err := g.postForm(ctx, "/v1/prices/"+priceID, data, nil); err != nil {
		return fmt.Errorf("archive price %s: %w", priceID, err)
	}
	return nil
}

func (g *Gateway) ArchiveProduct(ctx context.Context, productID string) error {
	data := url.Values{}
	data.Set("active", "false")
	if err := g.postForm(ctx, "/v1/products/"+productID, data, nil); err != nil {
		return fmt.Errorf("archive product %s: %w", productID, err)
	}
	return nil
}

// postForm issues one logical request. A single idempotency key covers the
// initial attempt and every retry, so the provider deduplicates replays of
// requests that timed out after being applied.
func (g *Gateway) postForm(ctx context.Context, path string, data url.Values, out any) error {
	if g.apiKey == "" {
		return paymentdomain.ErrNotConfigured
	}

	idempotencyKey := uuid.NewString()
	payload := data.Encode()
	backoff := g.retryBase

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.log.Warn("retrying provider call",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiBase+path, strings.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Idempotency-Key", idempotencyKey)

		resp, err := g.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %v", paymentdomain.ErrProviderUnavailable, err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			if readErr != nil {
				lastErr = fmt.Errorf("%w: %v", paymentdomain.ErrProviderUnavailable, readErr)
				continue
			}
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("%w: decode response: %v", paymentdomain.ErrProviderRejected, err)
			}
			return nil
		}

		if retryable(resp.StatusCode) {
			lastErr = fmt.Errorf("%w: status %d", paymentdomain.ErrProviderUnavailable, resp.StatusCode)
			continue
		}

		// Validation rejections are final, no retry.
		return fmt.Errorf("%w: status %d: %s", paymentdomain.ErrProviderRejected, resp.StatusCode, errorMessage(body))
	}

	return lastErr
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func errorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return "provider error"
}
