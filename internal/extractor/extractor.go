// Package extractor turns broadcaster watch-page URLs into normalized
// video metadata and candidate stream formats.
package extractor

import (
	"errors"
	"fmt"

	"nowgrab/internal/media"
)

// Extractor resolves a watch-page URL into video metadata.
type Extractor interface {
	// Name identifies the extractor in logs and error messages.
	Name() string

	// Match reports whether this extractor handles the URL.
	Match(rawURL string) bool

	// Extract fetches and normalizes metadata for the URL.
	Extract(rawURL string) (*media.Info, error)
}

// Classified extraction failures. Geo and paywall restrictions are
// expected, user-facing conditions; a malformed payload points at a site
// contract change and is worth treating as a bug.
var (
	ErrUnsupportedURL = errors.New("no extractor supports this URL")
	ErrGeoRestricted  = errors.New("not available from your location due to geo restriction")
	ErrPaywalled      = errors.New("not available for free")
	ErrMalformed      = errors.New("malformed metadata response")
)

// IsExpected reports whether err is a user-facing availability restriction
// rather than an implementation problem.
func IsExpected(err error) bool {
	return errors.Is(err, ErrGeoRestricted) || errors.Is(err, ErrPaywalled)
}

var registry []Extractor

// Register adds an extractor to the dispatch table. Not safe for
// concurrent use; call during program setup.
func Register(e Extractor) {
	registry = append(registry, e)
}

// ForURL returns the first registered extractor that matches rawURL.
func ForURL(rawURL string) (Extractor, error) {
	for _, e := range registry {
		if e.Match(rawURL) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", rawURL, ErrUnsupportedURL)
}
