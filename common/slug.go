package common

import (
	"errors"
	"regexp"
	"strings"
)

// MaxSlugLength bounds slugs derived from organization names.
const MaxSlugLength = 64

var (
	ErrEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lowercases input and collapses every run of non-alphanumerics into
// a single hyphen. Two names that differ only in case or punctuation share a slug.
func Slugify(input string) (string, error) {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(input)), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}
