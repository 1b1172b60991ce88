package utils

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// Slugify transliterates s to ASCII and joins the words with dashes.
func Slugify(s string) string {
	return slug.Make(s)
}

// RandomSlug is used when a title has nothing left after transliteration.
func RandomSlug(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// CopySlug returns the slug used for a duplicated meeting page.
func CopySlug(slug string) string {
	return fmt.Sprintf("%s-copy", slug)
}
