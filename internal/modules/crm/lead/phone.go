package lead

import "strings"

// NormalizePhone strips a leading "p:", "+" or "p:+" prefix
// case-insensitively and trims whitespace. Applying it twice is a no-op, so
// already-normalized values pass through unchanged.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && strings.EqualFold(s[:2], "p:") {
		s = s[2:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	return strings.TrimSpace(s)
}
