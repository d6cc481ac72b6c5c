// Package security provides content sanitization for user-submitted HTML.
package security

import (
	"net/url"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizer strips unsafe markup from user-submitted rich text.
// The policy is allowlist-based: only a small set of formatting tags
// survives, scripts and event attributes never do.
type ContentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer builds a sanitizer for post and comment content.
// Allowed tags: p, br, a, ul, ol, li, blockquote, pre, code, strong, em,
// h2, h3, img. Links get target="_blank" and rel="noopener noreferrer".
// Image sources must be https.
func NewContentSanitizer() *ContentSanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em", "h2", "h3",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})

	return &ContentSanitizer{policy: p}
}

// Sanitize returns a safe version of rawHTML. It is idempotent and safe
// for concurrent use.
func (s *ContentSanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}

// SanitizeStrict strips all markup, returning plain text. Used for
// fields that must never contain HTML, such as titles and categories.
func (s *ContentSanitizer) SanitizeStrict(raw string) string {
	return bluemonday.StrictPolicy().Sanitize(raw)
}
