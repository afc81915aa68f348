package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarketAnalysis struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID    int       `json:"user_id" gorm:"not null"`
	Timeframe string    `json:"timeframe" gorm:"type:varchar(50)"`
	Analysis  string    `json:"analysis" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *MarketAnalysis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
