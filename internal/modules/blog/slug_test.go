package blog

import (
	"regexp"
	"strings"
	"testing"
)

var slugShape = regexp.MustCompile(`^[a-z0-9-]+$`)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed Title  ", "trimmed-title"},
		{"CloudMigration Guide", "cloud-migration-guide"},
		{"already-a-slug", "already-a-slug"},
		{"Under_scores and  spaces", "under-scores-and-spaces"},
		{"Symbols!@# Stripped?", "symbols-stripped"},
		{"UPPER CASE", "upper-case"},
		{"web3 DevOps2024", "web3-dev-ops2024"},
		{"---edges---", "edges"},
	}
	for _, tc := range cases {
		got := GenerateSlug(tc.title)
		if got != tc.want {
			t.Errorf("GenerateSlug(%q) = %q, expected %q", tc.title, got, tc.want)
		}
	}
}

func TestGenerateSlugShape(t *testing.T) {
	titles := []string{
		"Hello World", "CamelCaseTitle", "  spaces  ", "!!!", "数字タイトル",
		"a--b----c", "MiXeD CaSe 42",
	}
	for _, title := range titles {
		slug := GenerateSlug(title)
		if slug == "" {
			t.Errorf("GenerateSlug(%q) returned empty slug", title)
			continue
		}
		if !slugShape.MatchString(slug) {
			t.Errorf("GenerateSlug(%q) = %q, contains invalid characters", title, slug)
		}
		if strings.Contains(slug, "--") {
			t.Errorf("GenerateSlug(%q) = %q, contains consecutive hyphens", title, slug)
		}
		if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
			t.Errorf("GenerateSlug(%q) = %q, has hyphen at edge", title, slug)
		}
	}
}

func TestGenerateSlugEmptyFallsBack(t *testing.T) {
	for _, title := range []string{"", "   ", "!!!", "©®™"} {
		slug := GenerateSlug(title)
		if !strings.HasPrefix(slug, "post-") {
			t.Errorf("GenerateSlug(%q) = %q, expected post- fallback", title, slug)
		}
		if len(slug) <= len("post-") {
			t.Errorf("GenerateSlug(%q) = %q, fallback has no token", title, slug)
		}
	}
}
