package seo

import (
	"testing"

	"github.com/cybaemtech/site-core/internal/models"
)

func TestEffectiveFallbacks(t *testing.T) {
	blog := &models.BlogPost{
		Title:         "Cloud Migration Guide",
		Excerpt:       "How we moved everything to the cloud.",
		FeaturedImage: "/uploads/cloud.png",
	}
	blog.ID = 7

	out := Effective(nil, blog)

	if out.BlogPostID != 7 {
		t.Errorf("BlogPostID = %d, expected 7", out.BlogPostID)
	}
	if out.MetaTitle != blog.Title {
		t.Errorf("MetaTitle = %q, expected blog title", out.MetaTitle)
	}
	if out.MetaDescription != blog.Excerpt {
		t.Errorf("MetaDescription = %q, expected blog excerpt", out.MetaDescription)
	}
	if out.OgTitle != blog.Title {
		t.Errorf("OgTitle = %q, expected meta title fallback", out.OgTitle)
	}
	if out.OgImage != blog.FeaturedImage {
		t.Errorf("OgImage = %q, expected featured image", out.OgImage)
	}
	if out.OgType != DefaultOgType {
		t.Errorf("OgType = %q, expected %q", out.OgType, DefaultOgType)
	}
	if out.TwitterCard != DefaultTwitterCard {
		t.Errorf("TwitterCard = %q, expected %q", out.TwitterCard, DefaultTwitterCard)
	}
	if out.TwitterTitle != out.OgTitle {
		t.Errorf("TwitterTitle = %q, expected og title fallback", out.TwitterTitle)
	}
	if out.TwitterImage != out.OgImage {
		t.Errorf("TwitterImage = %q, expected og image fallback", out.TwitterImage)
	}
	if out.GeoRegion != DefaultGeoRegion || out.GeoPlacename != DefaultGeoPlacename {
		t.Errorf("geo = %q/%q, expected defaults", out.GeoRegion, out.GeoPlacename)
	}
}

func TestEffectiveExplicitValuesWin(t *testing.T) {
	blog := &models.BlogPost{Title: "Fallback Title", Excerpt: "Fallback excerpt"}
	blog.ID = 3
	seo := &models.SeoMetatag{
		MetaTitle:    "Explicit Title",
		OgTitle:      "Explicit OG Title",
		TwitterTitle: "Explicit Twitter Title",
		OgType:       "website",
		GeoRegion:    "IN-KA",
	}

	out := Effective(seo, blog)

	if out.MetaTitle != "Explicit Title" {
		t.Errorf("MetaTitle = %q, explicit value should win", out.MetaTitle)
	}
	if out.OgTitle != "Explicit OG Title" {
		t.Errorf("OgTitle = %q, explicit value should win", out.OgTitle)
	}
	if out.TwitterTitle != "Explicit Twitter Title" {
		t.Errorf("TwitterTitle = %q, explicit value should win", out.TwitterTitle)
	}
	if out.OgType != "website" {
		t.Errorf("OgType = %q, explicit value should win", out.OgType)
	}
	if out.GeoRegion != "IN-KA" {
		t.Errorf("GeoRegion = %q, explicit value should win", out.GeoRegion)
	}
	if out.OgDescription != "Fallback excerpt" {
		t.Errorf("OgDescription = %q, expected excerpt fallback", out.OgDescription)
	}
}
