package publisher

import (
	"strings"
	"testing"
)

const viteSample = `import { defineConfig } from 'vite';

export default defineConfig({
  plugins: [
    prerender({
      routes: [
        '/',
        // blog-routes:begin (generated, do not edit)
        '/blog-post/old-entry',
        // blog-routes:end
      ],
    }),
  ],
});
`

func TestReplaceRegion(t *testing.T) {
	body := viteRoutesBody([]string{"alpha-post", "beta-post"})
	out, err := replaceRegion(viteSample, viteRegionBegin, viteRegionEnd, body)
	if err != nil {
		t.Fatalf("replaceRegion: %v", err)
	}

	if strings.Contains(out, "old-entry") {
		t.Error("previous region contents should be replaced")
	}
	if !strings.Contains(out, "'/blog-post/alpha-post',") {
		t.Error("new route entry missing")
	}
	if !strings.Contains(out, viteRegionBegin) || !strings.Contains(out, viteRegionEnd) {
		t.Error("markers must survive the rewrite")
	}
	if !strings.Contains(out, "'/',") {
		t.Error("content outside the region must be untouched")
	}
}

func TestReplaceRegionIdempotent(t *testing.T) {
	body := viteRoutesBody([]string{"alpha-post", "beta-post"})

	once, err := replaceRegion(viteSample, viteRegionBegin, viteRegionEnd, body)
	if err != nil {
		t.Fatalf("first replaceRegion: %v", err)
	}
	twice, err := replaceRegion(once, viteRegionBegin, viteRegionEnd, body)
	if err != nil {
		t.Fatalf("second replaceRegion: %v", err)
	}
	if once != twice {
		t.Errorf("second rewrite changed the file:\nfirst:\n%s\nsecond:\n%s", once, twice)
	}
}

func TestReplaceRegionEmptyBody(t *testing.T) {
	out, err := replaceRegion(viteSample, viteRegionBegin, viteRegionEnd, "")
	if err != nil {
		t.Fatalf("replaceRegion: %v", err)
	}
	if strings.Contains(out, "old-entry") {
		t.Error("empty body should clear the region")
	}
}

func TestReplaceRegionMissingMarker(t *testing.T) {
	if _, err := replaceRegion("no markers here", viteRegionBegin, viteRegionEnd, "x"); err == nil {
		t.Error("expected error for missing begin marker")
	}
	partial := viteRegionBegin + "\nsome content, no end"
	if _, err := replaceRegion(partial, viteRegionBegin, viteRegionEnd, "x"); err == nil {
		t.Error("expected error for missing end marker")
	}
}

func TestHtaccessRulesBody(t *testing.T) {
	body := htaccessRulesBody([]string{"my-post"})
	want := "RewriteRule ^blog-post/my-post/?$ /static/my-post.html [L]\n"
	if body != want {
		t.Errorf("htaccessRulesBody = %q, expected %q", body, want)
	}
	if htaccessRulesBody(nil) != "" {
		t.Error("empty slug list should render an empty body")
	}
}
