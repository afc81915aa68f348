// marketmint/controllers/image.go
package controllers

import (
	"context"
	"strings"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/services/prompt"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/psql/models"
	"marketmint/marketmint/types"
	"marketmint/marketmint/utils/logging"
)

// ImageController generates product-photography backgrounds and keeps the
// payload in object storage, with a reference row per generation.
type ImageController struct {
	productDAO *dao.ProductDAO
	imageDAO   *dao.ImageProjectDAO
	generator  ImageGenerator
	store      ImageStore
}

func NewImageController(productDAO *dao.ProductDAO, imageDAO *dao.ImageProjectDAO, generator ImageGenerator, store ImageStore) *ImageController {
	return &ImageController{
		productDAO: productDAO,
		imageDAO:   imageDAO,
		generator:  generator,
		store:      store,
	}
}

func (c *ImageController) GenerateBackground(ctx context.Context, userID int, req types.ImageRequest) (*types.ImageResponse, error) {
	defer logging.LogDuration(ctx, "image_generate_background")()

	if strings.TrimSpace(req.Scene) == "" {
		return nil, apperrors.Validationf("scene is required")
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

	imagePrompt := prompt.ImagePrompt(req.Scene)
	imageBase64, err := c.generator.GenerateImage(ctx, imagePrompt, req.Steps)
	if err != nil {
		return nil, err
	}

	key, err := c.store.UploadImage(ctx, productID, imageBase64)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	project := &models.ImageProject{
		ProductID: productID,
		UserID:    userID,
		Prompt:    imagePrompt,
		ObjectKey: key,
	}
	if err := c.imageDAO.Create(ctx, project); err != nil {
		return nil, apperrors.Storage(err)
	}

	return &types.ImageResponse{Image: imageBase64, ObjectKey: key}, nil
}
