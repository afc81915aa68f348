// marketmint/controllers/deps.go
package controllers

import (
	"context"
	"time"

	"marketmint/marketmint/services/search"

	"github.com/google/uuid"
)

// The generation pipeline takes its collaborators as interfaces so tests can
// substitute doubles for the external APIs.

type TextGenerator interface {
	GenerateText(ctx context.Context, system, user string) (string, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, steps int) (string, error)
}

type Enricher interface {
	Enrich(ctx context.Context, query string) search.Snippet
}

type PageScraper interface {
	ScrapePage(ctx context.Context, targetURL string, maxChars int, timeout time.Duration) (string, error)
}

type ImageStore interface {
	UploadImage(ctx context.Context, productID uuid.UUID, imageBase64 string) (string, error)
}
