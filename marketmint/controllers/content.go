// marketmint/controllers/content.go
package controllers

import (
	"context"
	"time"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/services/prompt"
	"marketmint/marketmint/services/search"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/psql/models"
	"marketmint/marketmint/types"
	"marketmint/marketmint/utils/logging"

	"go.uber.org/zap"
)

const competitorScrapeChars = 1500

// ContentController runs the one-shot generation pipeline: ownership check,
// optional enrichment, prompt composition, generation, persistence. A result
// is stored only after the upstream call fully succeeded.
type ContentController struct {
	productDAO *dao.ProductDAO
	contentDAO *dao.ContentDAO
	composer   *prompt.Composer
	enricher   Enricher
	generator  TextGenerator
	scraper    PageScraper
	scrapeTime time.Duration
}

func NewContentController(
	productDAO *dao.ProductDAO,
	contentDAO *dao.ContentDAO,
	composer *prompt.Composer,
	enricher Enricher,
	generator TextGenerator,
	scraper PageScraper,
	scrapeTimeout time.Duration,
) *ContentController {
	return &ContentController{
		productDAO: productDAO,
		contentDAO: contentDAO,
		composer:   composer,
		enricher:   enricher,
		generator:  generator,
		scraper:    scraper,
		scrapeTime: scrapeTimeout,
	}
}

func (c *ContentController) Generate(ctx context.Context, userID int, req types.GenerateRequest) (*models.GeneratedContent, error) {
	defer logging.LogDuration(ctx, "content_generate")()

	// Reject unknown content types before touching the store or the network.
	contentType, err := prompt.ParseContentType(req.ContentType)
	if err != nil {
		return nil, err
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

	var snippet search.Snippet
	if req.SearchWeb == nil || *req.SearchWeb {
		snippet = c.enricher.Enrich(ctx, c.composer.SearchQuery(product, contentType))
	}
	if contentType == prompt.TypeFullListing {
		c.addCompetitorData(ctx, product, &snippet)
	}

	aiPrompt, err := c.composer.Compose(product, contentType, req.Sentiment, snippet)
	if err != nil {
		return nil, err
	}

	text, err := c.generator.GenerateText(ctx, c.composer.Persona(), aiPrompt)
	if err != nil {
		// Upstream failure is terminal for this request: nothing is stored.
		return nil, err
	}

	content := &models.GeneratedContent{
		ProductID:   product.ID,
		UserID:      userID,
		ContentType: string(contentType),
		Content:     text,
		WebDataUsed: !snippet.Empty(),
	}
	if err := c.contentDAO.Save(ctx, content); err != nil {
		return nil, apperrors.Storage(err)
	}
	return content, nil
}

// addCompetitorData scrapes the first competitor page and folds its text into
// the enrichment snippet. Best effort, like search enrichment.
func (c *ContentController) addCompetitorData(ctx context.Context, product *models.Product, snippet *search.Snippet) {
	if c.scraper == nil || len(product.CompetitorURLs) == 0 {
		return
	}
	text, err := c.scraper.ScrapePage(ctx, product.CompetitorURLs[0], competitorScrapeChars, c.scrapeTime)
	if err != nil {
		logging.AppLogger.Warn("competitor scrape failed, continuing without it",
			zap.String("url", product.CompetitorURLs[0]), zap.Error(err))
		return
	}
	if text == "" {
		return
	}
	if snippet.Text != "" {
		snippet.Text += "\n\nCompetitor page data:\n" + text
	} else {
		snippet.Text = "Competitor page data:\n" + text
		snippet.Date = search.NoDateFound
	}
}

func (c *ContentController) History(ctx context.Context, userID int, productID string) ([]models.GeneratedContent, error) {
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
	history, err := c.contentDAO.ListForProduct(ctx, id)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return history, nil
}

// Delete removes one generated row. Existence is checked before ownership so
// a foreign row answers Forbidden rather than NotFound.
func (c *ContentController) Delete(ctx context.Context, userID int, contentID string) error {
	id, err := parseID(contentID, "content")
	if err != nil {
		return err
	}
	content, err := c.contentDAO.GetByID(ctx, id)
	if err != nil {
		return apperrors.Storage(err)
	}
	if content == nil {
		return apperrors.NotFound("content not found")
	}
	product, err := c.productDAO.GetForOwner(ctx, content.ProductID, userID)
	if err != nil {
		return apperrors.Storage(err)
	}
	if product == nil {
		return apperrors.Forbidden("not authorized to delete this content")
	}
	deleted, err := c.contentDAO.Delete(ctx, id)
	if err != nil {
		return apperrors.Storage(err)
	}
	if !deleted {
		return apperrors.NotFound("content not found")
	}
	return nil
}
