package dao

import (
	"context"

	"marketmint/marketmint/sources/psql/models"

	"gorm.io/gorm"
)

type AnalysisDAO struct {
	DB *gorm.DB
}

func NewAnalysisDAO(db *gorm.DB) *AnalysisDAO {
	return &AnalysisDAO{DB: db}
}

func (dao *AnalysisDAO) Create(ctx context.Context, analysis *models.MarketAnalysis) error {
	return dao.DB.WithContext(ctx).Create(analysis).Error
}
