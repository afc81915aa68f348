package dao

import (
	"context"

	"marketmint/marketmint/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageDAO struct {
	DB *gorm.DB
}

func NewChatMessageDAO(db *gorm.DB) *ChatMessageDAO {
	return &ChatMessageDAO{DB: db}
}

func (dao *ChatMessageDAO) SaveMessage(ctx context.Context, productID uuid.UUID, userID int, sender, content string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		ProductID: productID,
		UserID:    userID,
		Sender:    sender,
		Content:   content,
	}
	if err := dao.DB.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetConversation returns the (product, user) transcript in append order.
func (dao *ChatMessageDAO) GetConversation(ctx context.Context, productID uuid.UUID, userID int) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	err := dao.DB.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Order("timestamp ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}
