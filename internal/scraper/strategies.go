package scraper

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// OpenGraphStrategy reads standard og: metadata and works for any page.
type OpenGraphStrategy struct{}

func (s *OpenGraphStrategy) CanScrape(string) bool { return true }

func (s *OpenGraphStrategy) Extract(doc *html.Node, pageURL string) *Data {
	meta := metaContent(doc, "og:title", "og:description", "og:image", "description")

	name := meta["og:title"]
	if name == "" {
		name = titleText(doc)
	}
	description := meta["og:description"]
	if description == "" {
		description = meta["description"]
	}

	return &Data{
		Name:        name,
		Description: description,
		Image:       meta["og:image"],
		VendorURL:   pageURL,
		Quantity:    1,
	}
}

// AmazonStrategy handles Amazon product pages, which often omit og:image.
// It falls back to the main product image element.
type AmazonStrategy struct{}

func (s *AmazonStrategy) CanScrape(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	return host == "amazon.com" || strings.HasSuffix(host, ".amazon.com")
}

func (s *AmazonStrategy) Extract(doc *html.Node, pageURL string) *Data {
	data := (&OpenGraphStrategy{}).Extract(doc, pageURL)
	if data.Image == "" {
		data.Image = amazonLandingImage(doc)
	}
	return data
}

// amazonLandingImage finds the src of the first <img> inside the
// #imgTagWrapperId wrapper that Amazon uses for the main product shot.
func amazonLandingImage(doc *html.Node) string {
	wrapper := findByID(doc, "imgTagWrapperId")
	if wrapper == nil {
		return ""
	}
	img := findElement(wrapper, "img")
	if img == nil {
		return ""
	}
	for _, attr := range img.Attr {
		if attr.Key == "src" {
			return attr.Val
		}
	}
	return ""
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}
