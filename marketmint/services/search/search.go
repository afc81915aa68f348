// marketmint/services/search/search.go
package search

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"marketmint/marketmint/config"
	httputils "marketmint/marketmint/utils/http"
	"marketmint/marketmint/utils/logging"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// NoDateFound is the explicit marker stored when no date token could be
// extracted from the combined snippets.
const NoDateFound = "Date not found."

// maxResults caps how many search hits contribute snippets.
const maxResults = 3

// datePattern matches "25 June 2025", "June 25, 2025" and "2025-06-25".
var datePattern = regexp.MustCompile(`\b(\d{1,2}\s\w+\s\d{4}|\w+\s\d{1,2},\s\d{4}|\d{4}-\d{2}-\d{2})\b`)

// Snippet is the ephemeral enrichment result for one query. Empty reports
// whether the search produced anything usable.
type Snippet struct {
	Query string
	Text  string
	Date  string
}

func (s Snippet) Empty() bool {
	return s.Text == ""
}

type Client struct {
	apiURL     string
	apiKey     string
	cx         string
	httpClient *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		apiURL:     cfg.SearchAPIURL,
		apiKey:     cfg.SearchAPIKey,
		cx:         cfg.SearchCX,
		httpClient: &http.Client{Timeout: cfg.SearchTimeout},
	}
}

// Enrich runs a web search for query and condenses the top hits into a
// snippet. Enrichment is best effort: every failure degrades to an empty
// snippet and is logged, never surfaced to the caller.
func (c *Client) Enrich(ctx context.Context, query string) Snippet {
	defer logging.LogDuration(ctx, "search_enrich")()

	var snippets []string
	var err error
	if c.apiKey != "" {
		snippets, err = c.searchAPI(ctx, query)
	} else {
		snippets, err = c.searchHTML(ctx, query)
	}
	if err != nil {
		logging.AppLogger.Warn("web search failed, continuing without enrichment",
			zap.String("query", query), zap.Error(err))
		return Snippet{Query: query}
	}
	if len(snippets) == 0 {
		return Snippet{Query: query}
	}

	combined := strings.Join(snippets, " ")
	return Snippet{
		Query: query,
		Text:  combined,
		Date:  ExtractDate(combined),
	}
}

// ExtractDate pulls the first recognizable date token out of text.
func ExtractDate(text string) string {
	if m := datePattern.FindString(text); m != "" {
		return m
	}
	return NoDateFound
}

// searchAPI queries a Custom-Search-style JSON endpoint.
func (c *Client) searchAPI(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("cx", c.cx)

	var resp struct {
		Items []struct {
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := httputils.GetJSON(ctx, c.httpClient, c.apiURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	var snippets []string
	for i, item := range resp.Items {
		if i >= maxResults {
			break
		}
		if item.Snippet != "" {
			snippets = append(snippets, item.Snippet)
		}
	}
	return snippets, nil
}

// searchHTML scrapes the DuckDuckGo HTML endpoint when no API key is
// configured.
func (c *Client) searchHTML(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Add("q", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://duckduckgo.com/html/?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &httputils.StatusError{Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var snippets []string
	doc.Find(".result__body").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxResults {
			return false
		}
		snippet := strings.TrimSpace(s.Find(".result__snippet").Text())
		if snippet != "" {
			snippets = append(snippets, snippet)
		}
		return true
	})
	return snippets, nil
}
