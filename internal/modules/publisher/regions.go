package publisher

import (
	"fmt"
	"strings"
)

// Generated regions are rebuilt wholesale from the published blog list, never
// pattern-matched against their own previous contents. The markers must
// already exist in the target file; everything between them is replaced.
const (
	viteRegionBegin = "// blog-routes:begin (generated, do not edit)"
	viteRegionEnd   = "// blog-routes:end"

	htaccessRegionBegin = "# blog-routes:begin (generated, do not edit)"
	htaccessRegionEnd   = "# blog-routes:end"
)

// replaceRegion swaps the lines between the begin and end markers for body.
// The markers themselves stay. Line endings are normalized to \n so repeated
// runs are byte-identical.
func replaceRegion(content, begin, end, body string) (string, error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")

	beginIdx := strings.Index(normalized, begin)
	if beginIdx == -1 {
		return "", fmt.Errorf("marker %q not found", begin)
	}
	afterBegin := beginIdx + len(begin)

	endIdx := strings.Index(normalized[afterBegin:], end)
	if endIdx == -1 {
		return "", fmt.Errorf("marker %q not found", end)
	}
	endIdx += afterBegin

	var b strings.Builder
	b.WriteString(normalized[:afterBegin])
	b.WriteString("\n")
	if body != "" {
		b.WriteString(body)
	}
	b.WriteString(normalized[lineStart(normalized, endIdx):])
	return b.String(), nil
}

// lineStart returns the offset of the beginning of the line containing pos,
// so the end marker keeps its indentation.
func lineStart(s string, pos int) int {
	idx := strings.LastIndex(s[:pos], "\n")
	return idx + 1
}

// viteRoutesBody renders the prerender route list for vite.config.ts, one
// entry per published slug.
func viteRoutesBody(slugs []string) string {
	var b strings.Builder
	for _, slug := range slugs {
		fmt.Fprintf(&b, "      '/blog-post/%s',\n", slug)
	}
	return b.String()
}

// htaccessRulesBody renders one rewrite rule per published slug, mapping the
// SPA route to its pre-rendered HTML file.
func htaccessRulesBody(slugs []string) string {
	var b strings.Builder
	for _, slug := range slugs {
		fmt.Fprintf(&b, "RewriteRule ^blog-post/%s/?$ /static/%s.html [L]\n", slug, slug)
	}
	return b.String()
}
