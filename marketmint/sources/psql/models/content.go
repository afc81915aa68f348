package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneratedContent is one stored AI generation result. Rows are append-only:
// created once per successful generation, deletable by the owner, never
// updated.
type GeneratedContent struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID      int       `json:"user_id" gorm:"not null"`
	ContentType string    `json:"content_type" gorm:"type:varchar(50);not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	WebDataUsed bool      `json:"web_data_used" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"generated_at"`
}

func (c *GeneratedContent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
