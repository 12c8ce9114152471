package crawler

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nao1215/careermap/internal/model"
)

// Document is a parsed HTML page.
// It is owned by the extraction that requested it and is not retained.
type Document struct {
	// Page holds the response metadata and content fingerprint.
	Page model.Page

	doc *goquery.Document
}

// NewDocument parses the raw body of page into a Document.
// The page hash is computed if it has not been already.
func NewDocument(page model.Page) (*Document, error) {
	node, err := html.Parse(bytes.NewReader(page.Raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", page.URL, err)
	}
	if page.Hash == "" {
		page.ComputeHash()
	}

	return &Document{
		Page: page,
		doc:  goquery.NewDocumentFromNode(node),
	}, nil
}

// ParseDocument reads HTML from r and parses it into a Document attributed to pageURL.
func ParseDocument(pageURL string, r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(model.Page{URL: pageURL, Raw: raw})
}

// Find returns the elements matching the CSS selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// URL returns the URL the document was fetched from.
func (d *Document) URL() string {
	return d.Page.URL
}
