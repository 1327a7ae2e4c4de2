package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	talentdomain "github.com/castbooklabs/castbook/internal/talent/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() talentdomain.Repository {
	return &repo{}
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	var exists bool
	err := db.WithContext(ctx).Raw(
		`SELECT EXISTS(SELECT 1 FROM talents WHERE id = ?)`,
		id,
	).Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*talentdomain.Talent, error) {
	var t talentdomain.Talent
	err := db.WithContext(ctx).Raw(
		`SELECT id, stage_name, email, active, created_at, updated_at
		 FROM talents WHERE id = ?`,
		id,
	).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, nil
	}
	return &t, nil
}
