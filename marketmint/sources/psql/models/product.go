package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         int       `json:"user_id" gorm:"not null;index"`
	User           User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	Category       string    `json:"category" gorm:"type:varchar(255)"`
	Description    string    `json:"description" gorm:"type:text"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency" gorm:"type:varchar(10);default:USD"`
	CompetitorURLs []string  `json:"competitor_urls" gorm:"serializer:json"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
