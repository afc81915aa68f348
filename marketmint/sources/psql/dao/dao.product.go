package dao

import (
	"context"

	"marketmint/marketmint/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductDAO struct {
	DB *gorm.DB
}

func NewProductDAO(db *gorm.DB) *ProductDAO {
	return &ProductDAO{DB: db}
}

func (dao *ProductDAO) Create(ctx context.Context, product *models.Product) error {
	return dao.DB.WithContext(ctx).Create(product).Error
}

// GetForOwner resolves a product only when it belongs to userID. The
// ownership predicate is evaluated on every call, never cached.
func (dao *ProductDAO) GetForOwner(ctx context.Context, id uuid.UUID, userID int) (*models.Product, error) {
	var product models.Product
	err := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&product).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (dao *ProductDAO) ListByOwner(ctx context.Context, userID int) ([]models.Product, error) {
	var products []models.Product
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (dao *ProductDAO) Delete(ctx context.Context, id uuid.UUID, userID int) (bool, error) {
	res := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Product{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
