package dao

import (
	"context"

	"marketmint/marketmint/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentDAO struct {
	DB *gorm.DB
}

func NewContentDAO(db *gorm.DB) *ContentDAO {
	return &ContentDAO{DB: db}
}

func (dao *ContentDAO) Save(ctx context.Context, content *models.GeneratedContent) error {
	return dao.DB.WithContext(ctx).Create(content).Error
}

// GetByID looks a row up without an ownership filter; callers decide between
// not-found and forbidden after resolving the owning product.
func (dao *ContentDAO) GetByID(ctx context.Context, id uuid.UUID) (*models.GeneratedContent, error) {
	var content models.GeneratedContent
	err := dao.DB.WithContext(ctx).Where("id = ?", id).First(&content).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// ListForProduct returns the product's generation history, newest first.
func (dao *ContentDAO) ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.GeneratedContent, error) {
	var history []models.GeneratedContent
	err := dao.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (dao *ContentDAO) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := dao.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.GeneratedContent{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
