package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/castbooklabs/castbook/internal/pricing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() pricingdomain.Repository {
	return &repo{}
}

func (r *repo) GetProfile(ctx context.Context, db *gorm.DB, talentID snowflake.ID) (*pricingdomain.TalentPricing, error) {
	var p pricingdomain.TalentPricing
	err := db.WithContext(ctx).Raw(
		`SELECT talent_id, stripe_product_id, personal_price, business_price,
		 stripe_personal_price_id, stripe_business_price_id,
		 prices_last_synced_at, version, created_at, updated_at
		 FROM talent_pricings WHERE talent_id = ?`,
		talentID,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.TalentID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) GetWithHistory(ctx context.Context, db *gorm.DB, talentID snowflake.ID, limit int) (*pricingdomain.PricingWithHistory, error) {
	if limit <= 0 {
		limit = pricingdomain.DefaultHistoryLimit
	}

	current, err := r.GetProfile(ctx, db, talentID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	var entries []pricingdomain.PricingHistoryEntry
	err = db.WithContext(ctx).
		Model(&pricingdomain.PricingHistoryEntry{}).
		Where("talent_id = ?", talentID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	// Rows without a meaningful timestamp are join placeholders from older
	// data, not real history. Skip them instead of surfacing empty entries.
	history := make([]pricingdomain.PricingHistoryEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.CreatedAt.IsZero() {
			continue
		}
		history = append(history, entry)
	}

	return &pricingdomain.PricingWithHistory{Current: *current, History: history}, nil
}

func (r *repo) UpsertWithHistory(ctx context.Context, db *gorm.DB, record *pricingdomain.TalentPricing, changeReason *string, expectedVersion *int) (int, error) {
	newVersion := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if expectedVersion == nil {
			var exists bool
			if err := tx.Raw(
				`SELECT EXISTS(SELECT 1 FROM talent_pricings WHERE talent_id = ?)`,
				record.TalentID,
			).Scan(&exists).Error; err != nil {
				return err
			}
			if exists {
				return pricingdomain.ErrPricingExists
			}

			record.Version = 1
			if err := tx.Exec(
				`INSERT INTO talent_pricings (
					talent_id, stripe_product_id, personal_price, business_price,
					stripe_personal_price_id, stripe_business_price_id,
					prices_last_synced_at, version, created_at, updated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				record.TalentID,
				record.StripeProductID,
				record.PersonalPrice,
				record.BusinessPrice,
				record.StripePersonalPriceID,
				record.StripeBusinessPriceID,
				record.PricesLastSyncedAt,
				record.Version,
				record.CreatedAt,
				record.UpdatedAt,
			).Error; err != nil {
				// A concurrent create that won the race surfaces as a
				// duplicate key; the loser must observe the same signal as
				// the precondition check.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return pricingdomain.ErrPricingExists
				}
				return err
			}
		} else {
			res := tx.Exec(
				`UPDATE talent_pricings SET
					stripe_product_id = ?, personal_price = ?, business_price = ?,
					stripe_personal_price_id = ?, stripe_business_price_id = ?,
					prices_last_synced_at = ?, version = version + 1, updated_at = ?
				 WHERE talent_id = ? AND version = ?`,
				record.StripeProductID,
				record.PersonalPrice,
				record.BusinessPrice,
				record.StripePersonalPriceID,
				record.StripeBusinessPriceID,
				record.PricesLastSyncedAt,
				record.UpdatedAt,
				record.TalentID,
				*expectedVersion,
			)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var exists bool
				if err := tx.Raw(
					`SELECT EXISTS(SELECT 1 FROM talent_pricings WHERE talent_id = ?)`,
					record.TalentID,
				).Scan(&exists).Error; err != nil {
					return err
				}
				if !exists {
					return pricingdomain.ErrPricingNotFound
				}
				return pricingdomain.ErrVersionConflict
			}
			record.Version = *expectedVersion + 1
		}

		entry := pricingdomain.PricingHistoryEntry{
			TalentID:              record.TalentID,
			PersonalPrice:         record.PersonalPrice,
			BusinessPrice:         record.BusinessPrice,
			StripeProductID:       record.StripeProductID,
			StripePersonalPriceID: record.StripePersonalPriceID,
			StripeBusinessPriceID: record.StripeBusinessPriceID,
			ChangeReason:          changeReason,
			CreatedAt:             record.UpdatedAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		newVersion = record.Version
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newVersion, nil
}
