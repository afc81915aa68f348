// marketmint/controllers/product.go
package controllers

import (
	"context"
	"strings"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/psql/models"
	"marketmint/marketmint/types"

	"github.com/google/uuid"
)

type ProductController struct {
	productDAO *dao.ProductDAO
}

func NewProductController(productDAO *dao.ProductDAO) *ProductController {
	return &ProductController{productDAO: productDAO}
}

func (c *ProductController) Create(ctx context.Context, userID int, req types.ProductCreateRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validationf("product name is required")
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	product := &models.Product{
		UserID:         userID,
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		Price:          req.Price,
		Currency:       currency,
		CompetitorURLs: req.CompetitorURLs,
	}
	if err := c.productDAO.Create(ctx, product); err != nil {
		return nil, apperrors.Storage(err)
	}
	return product, nil
}

func (c *ProductController) List(ctx context.Context, userID int) ([]models.Product, error) {
	products, err := c.productDAO.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return products, nil
}

func (c *ProductController) Get(ctx context.Context, userID int, id string) (*models.Product, error) {
	productID, err := parseID(id, "product")
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
	return product, nil
}

func (c *ProductController) Delete(ctx context.Context, userID int, id string) error {
	productID, err := parseID(id, "product")
	if err != nil {
		return err
	}
	deleted, err := c.productDAO.Delete(ctx, productID, userID)
	if err != nil {
		return apperrors.Storage(err)
	}
	if !deleted {
		return apperrors.NotFound("product not found")
	}
	return nil
}

// parseID converts an opaque path/body id into a UUID, classifying bad input
// as a validation error.
func parseID(s, kind string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperrors.Validationf("invalid %s ID format", kind)
	}
	return id, nil
}
