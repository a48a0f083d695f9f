// Package scraper extracts product metadata (name, description, image) from
// vendor product pages to prefill the admin add-item form. Strategies are
// tried in order: vendor-specific ones first, then the OpenGraph fallback.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html"
)

// ErrUnreachable is returned when the vendor URL cannot be fetched.
var ErrUnreachable = errors.New("could not reach the provided URL")

// Data is the metadata scraped from a product page. Quantity defaults to 1;
// it is never available from page metadata and the admin adjusts it by hand.
type Data struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	VendorURL   string `json:"vendorUrl"`
	Quantity    int    `json:"quantity"`
}

// Strategy extracts metadata from a parsed product page.
type Strategy interface {
	// CanScrape reports whether this strategy handles the given URL.
	CanScrape(url string) bool

	// Extract pulls metadata out of the parsed document.
	Extract(doc *html.Node, url string) *Data
}

// Scraper fetches a product page once and hands the parsed document to the
// first strategy that claims the URL.
type Scraper struct {
	client     *http.Client
	strategies []Strategy
}

// New creates a Scraper with the default strategy order.
func New() *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: 10 * time.Second},
		// Order matters: specific strategies first, then the catch-all.
		strategies: []Strategy{
			&AmazonStrategy{},
			&OpenGraphStrategy{},
		},
	}
}

// Scrape fetches and parses the page at url and extracts its metadata.
func (s *Scraper) Scrape(ctx context.Context, url string) (*Data, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrUnreachable, resp.Status)
	}

	// Product pages can be huge; metadata lives in the head.
	doc, err := html.Parse(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to parse product page: %w", err)
	}

	for _, strategy := range s.strategies {
		if strategy.CanScrape(url) {
			return strategy.Extract(doc, url), nil
		}
	}

	// OpenGraphStrategy claims everything, so this is unreachable unless the
	// strategy list is misconfigured.
	return nil, errors.New("no scraper strategy found for this URL")
}

// metaContent walks the document collecting <meta property/name=...> values.
func metaContent(doc *html.Node, keys ...string) map[string]string {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	found := map[string]string{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var key, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "property", "name":
					key = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if want[key] && content != "" {
				if _, ok := found[key]; !ok {
					found[key] = content
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

// titleText returns the document's <title> text, if any.
func titleText(doc *html.Node) string {
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = n.FirstChild.Data
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}
