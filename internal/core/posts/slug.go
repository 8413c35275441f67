package posts

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// fallbackSlug is used when a title contains nothing slug-safe (e.g. "!!!" or "日本")
	fallbackSlug = "post"

	// maxSlugBaseBytes leaves room for a "-N" suffix inside the VARCHAR(255) column.
	// Compatibility decomposition can grow a title several-fold ("㎯" folds to "rads2").
	maxSlugBaseBytes = 240
)

var (
	nonSlugChars  = regexp.MustCompile(`[^\w\s-]`)
	separatorRuns = regexp.MustCompile(`[-\s]+`)

	// NFKD splits accented letters into base + combining mark; everything left
	// outside ASCII is then dropped, so "Café" becomes "Cafe".
	asciiFold = transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r >= utf8.RuneSelf })),
	)
)

// Slugify converts a title to a URL-safe, lowercase, hyphen-separated form.
// The result is at most maxSlugBaseBytes long and may be empty when the title has
// no ASCII-representable characters.
func Slugify(title string) string {
	s, _, err := transform.String(asciiFold, title)
	if err != nil {
		s = title
	}

	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = separatorRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-_")
	if len(s) > maxSlugBaseBytes {
		// ASCII only at this point, so a byte cut never splits a character
		s = strings.TrimRight(s[:maxSlugBaseBytes], "-_")
	}
	return s
}

// slugCandidate returns the n-th candidate for base: base, base-1, base-2, ...
func slugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// nextFreeSlug walks candidates from counter start upwards and returns the first one
// the store does not already hold, along with the counter to resume from if that
// candidate is lost to a concurrent insert.
func nextFreeSlug(ctx context.Context, repo Repository, base string, start int) (string, int, error) {
	for n := start; ; n++ {
		candidate := slugCandidate(base, n)
		exists, err := repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", 0, fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, n + 1, nil
		}
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
	}
}
