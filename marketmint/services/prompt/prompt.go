// marketmint/services/prompt/prompt.go
package prompt

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/services/search"
	"marketmint/marketmint/sources/psql/models"

	"gopkg.in/yaml.v3"
)

type ContentType string

const (
	TypeTitle       ContentType = "title"
	TypeDescription ContentType = "description"
	TypeSEO         ContentType = "seo"
	TypeFullListing ContentType = "full_listing"
)

// ParseContentType validates the requested type before any external call is
// made.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case TypeTitle, TypeDescription, TypeSEO, TypeFullListing:
		return ContentType(s), nil
	}
	return "", apperrors.Validationf("invalid content type %q, must be one of: title, description, seo, full_listing", s)
}

type OutputFormat string

const (
	FormatPlain OutputFormat = "plain"
	FormatHTML  OutputFormat = "html"
)

const defaultPersona = "You are an AI assistant with internet access. Use the provided data to answer queries accurately."

const htmlDirectives = `Format your response in HTML using these guidelines:
- Use <h3> for section headings
- Use <ul> or <ol> for lists
- Use <p> for paragraphs
- Use <strong> for emphasis
- Use <br> for line breaks
Keep the HTML simple and semantic.`

// overrides is the shape of the optional prompts YAML file. Missing keys fall
// back to the built-in templates.
type overrides struct {
	Persona string                 `yaml:"persona"`
	Extra   map[ContentType]string `yaml:"extra_instructions"`
}

// Composer renders the natural-language instruction strings sent to the text
// generation endpoint. It is pure string construction: no side effects, no
// network.
type Composer struct {
	format    OutputFormat
	overrides overrides
}

func NewComposer(format OutputFormat, promptsFile string) (*Composer, error) {
	c := &Composer{format: format}
	if format != FormatPlain && format != FormatHTML {
		c.format = FormatHTML
	}
	if promptsFile != "" {
		data, err := os.ReadFile(promptsFile)
		if err != nil {
			return nil, fmt.Errorf("read prompts file: %w", err)
		}
		if err := yaml.Unmarshal(data, &c.overrides); err != nil {
			return nil, fmt.Errorf("parse prompts file: %w", err)
		}
	}
	return c, nil
}

// Persona is the system message establishing the assistant role.
func (c *Composer) Persona() string {
	if c.overrides.Persona != "" {
		return c.overrides.Persona
	}
	return defaultPersona
}

// Compose builds the generation prompt for one product and content type.
// enrichment may be empty; the prompt then carries an explicit disclaimer
// that general knowledge is being used.
func (c *Composer) Compose(product *models.Product, ct ContentType, sentiment string, enrichment search.Snippet) (string, error) {
	if _, err := ParseContentType(string(ct)); err != nil {
		return "", err
	}

	var b strings.Builder
	tone := capitalize(sentiment)
	if tone == "" {
		tone = "Neutral"
	}

	switch ct {
	case TypeTitle:
		fmt.Fprintf(&b, `You are an expert product marketer. Create a compelling and SEO-optimized title for the following product, using current market trends and popular keywords:

%s
Ensure the title is under 200 characters, matches a %s tone and includes relevant, trending keywords to enhance search visibility.`,
			productBlock(product, false), strings.ToLower(tone))

	case TypeDescription:
		fmt.Fprintf(&b, `You are a skilled copywriter specializing in e-commerce. Write a detailed and persuasive product description using the latest market data and trends:

%s
The description should be between 150-300 words, highlight current benefits and features in a %s tone, and include relevant keywords for SEO.`,
			productBlock(product, false), strings.ToLower(tone))

	case TypeSEO:
		fmt.Fprintf(&b, `As a SEO expert, provide a list of high-performing keywords based on current market trends for the following product:

%sCompetitor Keywords: %s

List at least 10 keywords with high relevance and search volume. Include trending and long-tail keywords.`,
			productBlock(product, false), competitorKeywords(product))

	case TypeFullListing:
		fmt.Fprintf(&b, `You are an expert product marketer and copywriter. Based on the following product details and current market data, generate a complete e-commerce listing that includes Titles, Descriptions, Highlighted/Bulleted Points, and a Competition Analysis.

%sCompetitor Keywords: %s
Sentiment: %s

Ensure the content is %s and optimized for SEO. Use the provided market data to make the listing current and competitive.`,
			productBlock(product, true), competitorKeywords(product), tone, strings.ToLower(tone))
	}

	if c.format == FormatHTML {
		b.WriteString("\n\n")
		b.WriteString(htmlDirectives)
	}
	if extra := c.overrides.Extra[ct]; extra != "" {
		b.WriteString("\n\n")
		b.WriteString(extra)
	}
	b.WriteString(enrichmentSection(enrichment))
	return b.String(), nil
}

// SearchQuery builds the enrichment query matching the content type.
func (c *Composer) SearchQuery(product *models.Product, ct ContentType) string {
	name := strings.TrimSpace(product.Name)
	category := strings.TrimSpace(product.Category)
	year := time.Now().Year()

	switch ct {
	case TypeTitle:
		return fmt.Sprintf("%s %s popular listings titles keywords", name, category)
	case TypeDescription:
		return fmt.Sprintf("%s %d detailed features specifications reviews", name, year)
	case TypeSEO:
		return fmt.Sprintf("%s %s trending keywords popular search terms rankings", name, category)
	case TypeFullListing:
		return fmt.Sprintf("%s %d complete specifications features price comparison reviews", name, year)
	}
	return name
}

// ChatSearchQuery picks a focused query from the latest user message.
func (c *Composer) ChatSearchQuery(product *models.Product, lastMessage string) string {
	name := strings.TrimSpace(product.Name)
	year := time.Now().Year()
	lower := strings.ToLower(lastMessage)

	switch {
	case strings.Contains(lower, "compare"):
		return fmt.Sprintf("latest %s vs %d comparison specs features price", name, year)
	case strings.Contains(lower, "price"):
		return fmt.Sprintf("%s %d price market value cost", name, year)
	case strings.Contains(lower, "review"):
		return fmt.Sprintf("%s expert reviews %d", name, year)
	default:
		return fmt.Sprintf("%s %d specifications features updates", name, year)
	}
}

// ChatSystemPrompt embeds product info, the full prior transcript as
// alternating User:/Assistant: lines, and the formatting directives.
func (c *Composer) ChatSystemPrompt(product *models.Product, transcript []models.ChatMessage, enrichment search.Snippet) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an AI assistant specializing in %s products and market analysis.

IMPORTANT INSTRUCTIONS:
1. Focus on providing accurate, up-to-date information about %s
2. When web data is provided, use it as your primary source for current market information
3. If the web data is irrelevant or outdated, acknowledge this and provide a disclaimer
4. Structure your response with clear sections (Features, Pricing, Comparisons, etc.)
5. If specific details are not available, be transparent about it

%s`, orNA(product.Category), product.Name, productBlock(product, true))

	if c.format == FormatHTML {
		b.WriteString("\n")
		b.WriteString(htmlDirectives)
	}

	if len(transcript) > 0 {
		b.WriteString("\n\nConversation so far:\n")
		for _, msg := range transcript {
			speaker := "User"
			if msg.Sender == models.SenderBot {
				speaker = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Content)
		}
	}

	b.WriteString(enrichmentSection(enrichment))
	return b.String()
}

// CampaignPrompt builds the social media strategist instruction.
func (c *Composer) CampaignPrompt(product *models.Product, objectives, platforms []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a social media strategist. Based on the following product details, design a comprehensive social media campaign.

%sCampaign Objectives: %s
Platforms: %s

Provide a detailed content plan that includes post ideas, captions, hashtags, and scheduling suggestions.`,
		productBlock(product, true), strings.Join(objectives, ", "), strings.Join(platforms, ", "))

	if c.format == FormatHTML {
		b.WriteString("\n\n")
		b.WriteString(htmlDirectives)
	}
	return b.String()
}

// TrendsPrompt builds the market research instruction for one timeframe.
func (c *Composer) TrendsPrompt(product *models.Product, timeframe string) string {
	return fmt.Sprintf(`You are a market research expert with access to real-time market data. Analyze the current market trends for:

%sTimeframe: %s

Please provide:
1. Current market position
2. Emerging trends in this category
3. Consumer behavior patterns
4. Market size and growth potential
5. Key market drivers
6. Risk factors
7. Opportunities for growth

Base your analysis on current market data and trends.`, productBlock(product, true), timeframe)
}

// ImagePrompt wraps a scene request into the studio-background directive used
// for product photography backdrops.
func ImagePrompt(scene string) string {
	return fmt.Sprintf("Minimalistic and versatile professional product photography setup with clean, neutral background featuring %s, designed for seamless product overlay, high-quality studio lighting, 8k resolution, photorealistic, ensuring no visible product elements or distractions in the scene.", scene)
}

// enrichmentSection appends the market-data block, or the general-knowledge
// disclaimer when enrichment is empty.
func enrichmentSection(s search.Snippet) string {
	if s.Empty() {
		return "\n\nNote: Using general market knowledge as current data is not available."
	}
	return fmt.Sprintf("\n\nLatest Market Data (as of %s):\n\n%s\n\nPlease analyze this data and prefer it over prior knowledge in your response.", s.Date, s.Text)
}

// productBlock renders the shared product detail lines. withPrice adds the
// price/currency line used by the richer templates.
func productBlock(p *models.Product, withPrice bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product Name: %s\n", strings.TrimSpace(p.Name))
	fmt.Fprintf(&b, "Category: %s\n", orNA(p.Category))
	fmt.Fprintf(&b, "Description: %s\n", orNA(p.Description))
	if withPrice {
		price := "N/A"
		if p.Price > 0 {
			price = fmt.Sprintf("%.2f", p.Price)
		}
		currency := p.Currency
		if currency == "" {
			currency = "USD"
		}
		fmt.Fprintf(&b, "Price: %s %s\n", price, currency)
	}
	return b.String()
}

// competitorKeywords derives a comma-joined list of competitor names from the
// product's competitor URLs.
func competitorKeywords(p *models.Product) string {
	var names []string
	for _, raw := range p.CompetitorURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			continue
		}
		host := strings.TrimPrefix(u.Host, "www.")
		if i := strings.Index(host, "."); i > 0 {
			host = host[:i]
		}
		if host != "" {
			names = append(names, host)
		}
	}
	if len(names) == 0 {
		return "N/A"
	}
	return strings.Join(names, ", ")
}

func orNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "N/A"
	}
	return s
}

// capitalize upper-cases the first rune only, so "positive" and "POSITIVE"
// both render as "Positive".
func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
