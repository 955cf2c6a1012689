package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxSlugLength bounds slugs accepted from URLs and content files.
const maxSlugLength = 128

// slugRegex matches lowercase URL slugs such as "nike-air-max-2024".
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// ValidateSlug validates a project slug taken from a request path or a content file.
// It rejects anything that could be used for path traversal or markup injection.
//
// Validation rules:
//   - Slug cannot be empty
//   - Maximum length of 128 characters
//   - No control characters
//   - Only lowercase letters, digits, and single dashes or underscores between them
func ValidateSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidSlug, "slug cannot be empty")
	}

	if len(slug) > maxSlugLength {
		return New(ErrCodeInvalidSlug, "slug too long (max %d characters)", maxSlugLength)
	}

	for _, r := range slug {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSlug, "slug contains invalid control characters")
		}
	}

	if !slugRegex.MatchString(slug) {
		return New(ErrCodeInvalidSlug, "invalid slug: %q", slug)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
