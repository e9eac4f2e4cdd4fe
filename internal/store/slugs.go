package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/planetaketo/forum-service/internal/models"
)

const (
	slugMaxLen      = 96
	slugMaxAttempts = 50
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from a title: lowercase, strip
// anything outside [a-z0-9\s-], collapse whitespace and hyphen runs into
// single hyphens, trim, truncate to 96 characters.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > slugMaxLen {
		s = strings.Trim(s[:slugMaxLen], "-")
	}
	return s
}

// allocatePostSlug returns a slug unique among non-deleted forum posts,
// appending -1, -2, ... on collision. The existence check and the later
// insert are not atomic, so two concurrent creations with the same title
// can still race; uniqueness is only guaranteed for sequential creations.
func (s *Store) allocatePostSlug(ctx context.Context, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "publicacion"
	}
	candidate := base
	for n := 1; ; n++ {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.ForumPost{}).
			Where("slug = ? AND is_deleted = ?", candidate, false).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		if n > slugMaxAttempts {
			// Pathological collision run; a random fragment always terminates.
			return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
