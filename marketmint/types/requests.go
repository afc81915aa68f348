// marketmint/types/requests.go
package types

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ProductCreateRequest struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	Currency       string   `json:"currency"`
	CompetitorURLs []string `json:"competitor_urls"`
}

type GenerateRequest struct {
	ProductID   string `json:"product_id"`
	ContentType string `json:"content_type"`
	Sentiment   string `json:"sentiment"`
	// SearchWeb defaults to true for one-shot generation; set false to skip
	// enrichment entirely.
	SearchWeb *bool `json:"search_web"`
}

type ChatRequest struct {
	ProductID string `json:"product_id"`
	Message   string `json:"message"`
	// SearchWeb defaults to false for chat turns.
	SearchWeb bool `json:"search_web"`
}

type ChatResponse struct {
	Content     string `json:"content"`
	Format      string `json:"format"`
	WebDataUsed bool   `json:"web_data_used"`
}

type CampaignRequest struct {
	ProductID  string   `json:"product_id"`
	Objectives []string `json:"objectives"`
	Platforms  []string `json:"platforms"`
}

type TrendsRequest struct {
	ProductID string `json:"product_id"`
	Timeframe string `json:"timeframe"`
}

type ImageRequest struct {
	ProductID string `json:"product_id"`
	Scene     string `json:"scene"`
	Steps     int    `json:"steps"`
}

type ImageResponse struct {
	Image     string `json:"image"`
	ObjectKey string `json:"object_key"`
}
