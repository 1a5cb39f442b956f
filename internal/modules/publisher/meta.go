package publisher

import (
	"fmt"
	"html"
	"strings"

	"github.com/cybaemtech/site-core/internal/models"
)

// headBlock renders the SEO head fragment injected into the page template.
// All values are attribute-escaped; schema_org is emitted verbatim inside a
// JSON-LD script tag because it is already JSON.
func headBlock(blog *models.BlogPost, seo *models.SeoMetatag, frontendURL string) string {
	postURL := frontendURL + "/blog-post/" + blog.Slug

	var b strings.Builder
	b.WriteString("    <title>" + html.EscapeString(seo.MetaTitle) + "</title>\n")
	writeMeta(&b, "description", seo.MetaDescription)
	writeMeta(&b, "keywords", seo.MetaKeywords)
	writeMeta(&b, "robots", seo.Robots)
	writeMeta(&b, "author", blog.AuthorName)

	canonical := seo.CanonicalURL
	if canonical == "" {
		canonical = postURL
	}
	writeLink(&b, "canonical", canonical)
	if seo.AlternateURL != "" {
		writeLink(&b, "alternate", seo.AlternateURL)
	}

	ogURL := seo.OgURL
	if ogURL == "" {
		ogURL = postURL
	}
	writeProperty(&b, "og:title", seo.OgTitle)
	writeProperty(&b, "og:description", seo.OgDescription)
	writeProperty(&b, "og:type", seo.OgType)
	writeProperty(&b, "og:url", ogURL)
	writeProperty(&b, "og:image", absoluteURL(seo.OgImage, frontendURL))

	writeMeta(&b, "twitter:card", seo.TwitterCard)
	writeMeta(&b, "twitter:title", seo.TwitterTitle)
	writeMeta(&b, "twitter:description", seo.TwitterDescription)
	writeMeta(&b, "twitter:image", absoluteURL(seo.TwitterImage, frontendURL))

	writeMeta(&b, "geo.region", seo.GeoRegion)
	writeMeta(&b, "geo.placename", seo.GeoPlacename)
	writeMeta(&b, "geo.position", seo.GeoPosition)

	if strings.TrimSpace(seo.SchemaOrg) != "" {
		b.WriteString("    <script type=\"application/ld+json\">\n")
		b.WriteString(strings.TrimSpace(seo.SchemaOrg))
		b.WriteString("\n    </script>\n")
	}

	if seo.GoogleAnalyticsID != "" {
		gaID := html.EscapeString(seo.GoogleAnalyticsID)
		fmt.Fprintf(&b, `    <script async src="https://www.googletagmanager.com/gtag/js?id=%s"></script>
    <script>
      window.dataLayer = window.dataLayer || [];
      function gtag(){dataLayer.push(arguments);}
      gtag('js', new Date());
      gtag('config', '%s');
    </script>
`, gaID, gaID)
	}

	return b.String()
}

func writeMeta(b *strings.Builder, name, content string) {
	if content == "" {
		return
	}
	fmt.Fprintf(b, "    <meta name=%q content=%q>\n",
		name, html.EscapeString(content))
}

func writeProperty(b *strings.Builder, property, content string) {
	if content == "" {
		return
	}
	fmt.Fprintf(b, "    <meta property=%q content=%q>\n",
		property, html.EscapeString(content))
}

func writeLink(b *strings.Builder, rel, href string) {
	if href == "" {
		return
	}
	fmt.Fprintf(b, "    <link rel=%q href=%q>\n", rel, html.EscapeString(href))
}

// absoluteURL resolves a relative image path against the site base URL.
func absoluteURL(url, frontendURL string) string {
	url = strings.TrimSpace(url)
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return frontendURL + "/" + strings.TrimLeft(url, "/")
}
