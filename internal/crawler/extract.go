package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/careermap/internal/model"
)

// Markup markers of the career site.
const (
	// DefaultBaseOrigin is the origin category hrefs are resolved against.
	DefaultBaseOrigin = "https://www.seek.com.au"

	// CategoryCardClass is the class token of a category card on the root page.
	CategoryCardClass = "_1frdw130"

	// RoleCardAttribute and RoleCardValue identify a role card anchor on a
	// category detail page.
	RoleCardAttribute = "data-analytics-action"
	RoleCardValue     = "Click - Role card"
)

// EmptyPolicy decides what an extraction that matches nothing returns.
type EmptyPolicy int

const (
	// AllowEmpty returns an empty result without error.
	AllowEmpty EmptyPolicy = iota

	// RequireMatch returns an *ExtractionError.
	RequireMatch
)

// String returns the policy name.
func (p EmptyPolicy) String() string {
	switch p {
	case AllowEmpty:
		return "allow-empty"
	case RequireMatch:
		return "require-match"
	default:
		return "unknown"
	}
}

// Extractor reads categories and job ids out of Documents.
//
// A missing anchor container is always an error. What happens when a
// selector matches nothing is decided by the extractor's EmptyPolicy for
// that kind of element: by default an empty category list is accepted and
// an empty role card list is not.
type Extractor struct {
	baseOrigin     string
	categoryPolicy EmptyPolicy
	jobIDPolicy    EmptyPolicy
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithBaseOrigin sets the origin relative category hrefs are joined to.
func WithBaseOrigin(origin string) ExtractorOption {
	return func(e *Extractor) {
		e.baseOrigin = strings.TrimRight(origin, "/")
	}
}

// WithCategoryPolicy sets the policy for a container without category cards.
func WithCategoryPolicy(p EmptyPolicy) ExtractorOption {
	return func(e *Extractor) {
		e.categoryPolicy = p
	}
}

// WithJobIDPolicy sets the policy for a page without role cards.
func WithJobIDPolicy(p EmptyPolicy) ExtractorOption {
	return func(e *Extractor) {
		e.jobIDPolicy = p
	}
}

// NewExtractor creates an Extractor with the default policies.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		baseOrigin:     DefaultBaseOrigin,
		categoryPolicy: AllowEmpty,
		jobIDPolicy:    RequireMatch,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ExtractCategories returns the category cards inside the anchor region of mode,
// in document order.
func (e *Extractor) ExtractCategories(doc *Document, mode model.Mode) ([]model.Category, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	return e.ExtractCategoriesByAnchor(doc, mode.AnchorName(), mode)
}

// ExtractCategoriesByAnchor returns the category cards inside the container
// whose name attribute equals anchorName. Each card's text becomes the title
// and its href, joined to the base origin, the URL.
func (e *Extractor) ExtractCategoriesByAnchor(doc *Document, anchorName string, mode model.Mode) ([]model.Category, error) {
	containerSelector := fmt.Sprintf("[name=%q]", anchorName)
	container := doc.Find(containerSelector).First()
	if container.Length() == 0 {
		return nil, &ExtractionError{
			URL:      doc.URL(),
			Selector: containerSelector,
			Message:  fmt.Sprintf("No container found with the specified attributes {%q; %q}", "name", anchorName),
		}
	}

	cardSelector := "." + CategoryCardClass
	cards := container.Find(cardSelector)
	if cards.Length() == 0 && e.categoryPolicy == RequireMatch {
		return nil, &ExtractionError{
			URL:      doc.URL(),
			Selector: cardSelector,
			Message:  fmt.Sprintf("No categories found with the specified class %q", CategoryCardClass),
		}
	}

	categories := make([]model.Category, 0, cards.Length())
	var extractErr error
	cards.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			extractErr = &ExtractionError{
				URL:      doc.URL(),
				Selector: cardSelector,
				Message:  fmt.Sprintf("Category card %q has no href", s.Text()),
			}
			return false
		}
		categories = append(categories, model.Category{
			Title: s.Text(),
			URL:   e.resolve(href),
			Mode:  mode,
		})
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return categories, nil
}

// ExtractJobIDs returns the job identifiers of all role cards on a category
// detail page, in document order. Duplicates are kept. The identifier is the
// part of the card's href after the last "/".
func (e *Extractor) ExtractJobIDs(doc *Document) ([]string, error) {
	selector := fmt.Sprintf("[%s=%q]", RoleCardAttribute, RoleCardValue)
	cards := doc.Find(selector)
	if cards.Length() == 0 {
		if e.jobIDPolicy == AllowEmpty {
			return []string{}, nil
		}
		return nil, &ExtractionError{
			URL:      doc.URL(),
			Selector: selector,
			Message:  fmt.Sprintf("No job ids found with the specified attributes {%q; %q}", RoleCardAttribute, RoleCardValue),
		}
	}

	ids := make([]string, 0, cards.Length())
	var extractErr error
	cards.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			extractErr = &ExtractionError{
				URL:      doc.URL(),
				Selector: selector,
				Message:  "Role card has no href attribute",
			}
			return false
		}
		id := href[strings.LastIndex(href, "/")+1:]
		if id == "" {
			extractErr = &ExtractionError{
				URL:      doc.URL(),
				Selector: selector,
				Message:  fmt.Sprintf("Role card href %q has no job id after the last '/'", href),
			}
			return false
		}
		ids = append(ids, id)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return ids, nil
}

// resolve joins a relative href to the base origin. Absolute hrefs are kept.
func (e *Extractor) resolve(href string) string {
	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return e.baseOrigin + href
}
