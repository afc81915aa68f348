package dao

import (
	"context"

	"marketmint/marketmint/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignDAO struct {
	DB *gorm.DB
}

func NewCampaignDAO(db *gorm.DB) *CampaignDAO {
	return &CampaignDAO{DB: db}
}

func (dao *CampaignDAO) Create(ctx context.Context, campaign *models.Campaign) error {
	return dao.DB.WithContext(ctx).Create(campaign).Error
}

func (dao *CampaignDAO) ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := dao.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}
