// marketmint/services/scraper/scraper.go
package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/net/html"
)

// Scraper drives a headless browser to pull the text of competitor product
// pages. Best effort: callers treat failures as "no competitor data".
type Scraper struct {
	pw *playwright.Playwright
}

func NewScraper() (*Scraper, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	return &Scraper{pw: pw}, nil
}

func (s *Scraper) Close() {
	if s.pw != nil {
		s.pw.Stop()
	}
}

// ScrapePage fetches targetURL and returns extracted page text capped at
// maxChars.
func (s *Scraper) ScrapePage(ctx context.Context, targetURL string, maxChars int, timeout time.Duration) (string, error) {
	if maxChars <= 0 {
		maxChars = 1500
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	browser, err := s.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(true)})
	if err != nil {
		return "", err
	}
	defer browser.Close()

	browserCtx, err := browser.NewContext()
	if err != nil {
		return "", err
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		return "", err
	}

	userAgents := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
	}
	page.SetExtraHTTPHeaders(map[string]string{"User-Agent": userAgents[time.Now().UnixNano()%int64(len(userAgents))]})

	if _, err := page.Goto(targetURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return "", err
	}

	content, err := page.Content()
	if err != nil {
		return "", err
	}

	text := extractText(content)
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	return text, nil
}

// extractText collects the text nodes of an HTML document and strips common
// navigation phrases.
func extractText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data + " ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)

	text := strings.ToLower(sb.String())
	for _, phrase := range []string{"home", "contact us", "about us", "privacy policy", "terms of service"} {
		text = strings.ReplaceAll(text, phrase, "")
	}
	return strings.TrimSpace(text)
}
