package seo

// UpsertSeoDTO carries every head-tag field. blog_post_id may also arrive as
// blog_id from the legacy admin panel.
type UpsertSeoDTO struct {
	BlogPostID uint `json:"blog_post_id"`
	BlogID     uint `json:"blog_id"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	Robots          string `json:"robots"`
	CanonicalURL    string `json:"canonical_url"`
	AlternateURL    string `json:"alternate_url"`

	OgTitle       string `json:"og_title"`
	OgDescription string `json:"og_description"`
	OgImage       string `json:"og_image"`
	OgType        string `json:"og_type"`
	OgURL         string `json:"og_url"`

	TwitterCard        string `json:"twitter_card"`
	TwitterTitle       string `json:"twitter_title"`
	TwitterDescription string `json:"twitter_description"`
	TwitterImage       string `json:"twitter_image"`

	GeoRegion    string `json:"geo_region"`
	GeoPlacename string `json:"geo_placename"`
	GeoPosition  string `json:"geo_position"`

	SchemaOrg         string `json:"schema_org"`
	GoogleAnalyticsID string `json:"google_analytics_id"`
}

func (d *UpsertSeoDTO) blogID() uint {
	if d.BlogPostID != 0 {
		return d.BlogPostID
	}
	return d.BlogID
}
