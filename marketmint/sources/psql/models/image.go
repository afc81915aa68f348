package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageProject records a generated background image. The image bytes live in
// object storage under ObjectKey, not in the row.
type ImageProject struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID    int       `json:"user_id" gorm:"not null"`
	Prompt    string    `json:"prompt" gorm:"type:text"`
	ObjectKey string    `json:"object_key" gorm:"type:varchar(512);not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *ImageProject) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
