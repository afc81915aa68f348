package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Campaign struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID      int       `json:"user_id" gorm:"not null"`
	Objectives  []string  `json:"objectives" gorm:"serializer:json"`
	Platforms   []string  `json:"platforms" gorm:"serializer:json"`
	ContentPlan string    `json:"content_plan" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
