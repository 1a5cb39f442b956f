package blog

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateSlug derives a URL-safe slug from a title: camelCase boundaries
// become hyphens, everything is lowercased, anything outside [a-z0-9-] is
// dropped, hyphen runs collapse, edges are trimmed. An empty result falls
// back to post-<token>.
func GenerateSlug(title string) string {
	runes := []rune(title)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
			b.WriteRune('-')
		}
		switch {
		case unicode.IsSpace(r), r == '_', r == '-':
			b.WriteRune('-')
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}

	var cleaned strings.Builder
	for _, r := range b.String() {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			cleaned.WriteRune(r)
		}
	}

	slug := collapseHyphens(cleaned.String())
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "post-" + slugToken()
	}
	return slug
}

func collapseHyphens(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

func slugToken() string {
	return uuid.New().String()[:8]
}
