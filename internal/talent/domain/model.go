package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Talent struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	StageName string       `json:"stage_name" gorm:"type:text;not null"`
	Email     string       `json:"email" gorm:"type:text"`
	Active    bool         `json:"active" gorm:"default:true"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

func (Talent) TableName() string { return "talents" }
