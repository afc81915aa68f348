// marketmint/controllers/market.go
package controllers

import (
	"context"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/services/prompt"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/psql/models"
	"marketmint/marketmint/types"
)

type MarketController struct {
	productDAO  *dao.ProductDAO
	analysisDAO *dao.AnalysisDAO
	composer    *prompt.Composer
	generator   TextGenerator
}

func NewMarketController(productDAO *dao.ProductDAO, analysisDAO *dao.AnalysisDAO, composer *prompt.Composer, generator TextGenerator) *MarketController {
	return &MarketController{
		productDAO:  productDAO,
		analysisDAO: analysisDAO,
		composer:    composer,
		generator:   generator,
	}
}

func (c *MarketController) AnalyzeTrends(ctx context.Context, userID int, req types.TrendsRequest) (*models.MarketAnalysis, error) {
	productID, err := parseID(req.ProductID, "product")
	if err != nil {
		return nil, err
	}
	product, err := c.productDAO.GetForOwner(ctx, productID, userID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product not found")
	}

	timeframe := req.Timeframe
	if timeframe == "" {
		timeframe = "current quarter"
	}

	text, err := c.generator.GenerateText(ctx, c.composer.Persona(), c.composer.TrendsPrompt(product, timeframe))
	if err != nil {
		return nil, err
	}

	analysis := &models.MarketAnalysis{
		ProductID: productID,
		UserID:    userID,
		Timeframe: timeframe,
		Analysis:  text,
	}
	if err := c.analysisDAO.Create(ctx, analysis); err != nil {
		return nil, apperrors.Storage(err)
	}
	return analysis, nil
}
