// marketmint/controllers/social.go
package controllers

import (
	"context"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/services/prompt"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/psql/models"
	"marketmint/marketmint/types"
)

type SocialController struct {
	productDAO  *dao.ProductDAO
	campaignDAO *dao.CampaignDAO
	composer    *prompt.Composer
	generator   TextGenerator
}

func NewSocialController(productDAO *dao.ProductDAO, campaignDAO *dao.CampaignDAO, composer *prompt.Composer, generator TextGenerator) *SocialController {
	return &SocialController{
		productDAO:  productDAO,
		campaignDAO: campaignDAO,
		composer:    composer,
		generator:   generator,
	}
}

func (c *SocialController) CreateCampaign(ctx context.Context, userID int, req types.CampaignRequest) (*models.Campaign, error) {
	if len(req.Objectives) == 0 || len(req.Platforms) == 0 {
		return nil, apperrors.Validationf("objectives and platforms are required")
	}
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

	aiPrompt := c.composer.CampaignPrompt(product, req.Objectives, req.Platforms)
	plan, err := c.generator.GenerateText(ctx, c.composer.Persona(), aiPrompt)
	if err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		ProductID:   productID,
		UserID:      userID,
		Objectives:  req.Objectives,
		Platforms:   req.Platforms,
		ContentPlan: plan,
	}
	if err := c.campaignDAO.Create(ctx, campaign); err != nil {
		return nil, apperrors.Storage(err)
	}
	return campaign, nil
}

func (c *SocialController) ListCampaigns(ctx context.Context, userID int, productID string) ([]models.Campaign, error) {
	id, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}
	product, err := c.productDAO.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product not found")
	}
	campaigns, err := c.campaignDAO.ListForProduct(ctx, id)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return campaigns, nil
}
