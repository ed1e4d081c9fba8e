package service

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 80

// Slugify turns a title into a URL slug: diacritics removed, lower-cased,
// each run of other characters collapsed to one "-", at most 80 runes.
func Slugify(title string) string {
	// transform.Chain is stateful, so build one per call.
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(strip, title)
	if err != nil {
		plain = title
	}

	var b strings.Builder
	dash := false
	n := 0
	for _, r := range strings.ToLower(plain) {
		if n >= maxSlugLength {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			n++
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
			n++
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// truncateSlug shortens s to at most max runes without leaving a trailing dash.
func truncateSlug(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimRight(string(r[:max]), "-")
}

// uniqueSlug returns base, or base-2, base-3, ... for the first value that
// exists reports as free.
func uniqueSlug(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		suffix := "-" + strconv.Itoa(i)
		candidate = truncateSlug(base, maxSlugLength-len(suffix)) + suffix
	}
}
