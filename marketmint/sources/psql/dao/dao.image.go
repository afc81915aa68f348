package dao

import (
	"context"

	"marketmint/marketmint/sources/psql/models"

	"gorm.io/gorm"
)

type ImageProjectDAO struct {
	DB *gorm.DB
}

func NewImageProjectDAO(db *gorm.DB) *ImageProjectDAO {
	return &ImageProjectDAO{DB: db}
}

func (dao *ImageProjectDAO) Create(ctx context.Context, project *models.ImageProject) error {
	return dao.DB.WithContext(ctx).Create(project).Error
}
