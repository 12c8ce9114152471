package model

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/sha3"
)

// Page represents a fetched HTML page.
// The crawler keeps the raw body only long enough to parse and fingerprint it;
// the history store persists everything except Raw.
type Page struct {
	// URL is the requested URL.
	URL string `json:"url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the MIME type of the response.
	ContentType string `json:"content_type,omitempty"`

	// FetchedAt is when the response was received.
	FetchedAt time.Time `json:"fetched_at"`

	// Raw contains the raw response body bytes.
	Raw []byte `json:"-"`

	// Hash is the SHA3-256 fingerprint of Raw.
	// Comparing fingerprints across runs shows when the site markup changed.
	Hash string `json:"hash"`
}

// MaxPageSize is the maximum size of a response body the crawler reads.
const MaxPageSize = 10 * 1024 * 1024 // 10 MB

// ComputeHash calculates and sets the SHA3-256 hash of the page's raw content.
// This should be called after setting the Raw field.
func (p *Page) ComputeHash() {
	if len(p.Raw) == 0 {
		p.Hash = ""
		return
	}

	hash := sha3.Sum256(p.Raw)
	p.Hash = hex.EncodeToString(hash[:])
}
