package models

// SeoMetatag holds the head-tag fields for one blog post. One row per post,
// upserted by the SEO endpoint.
type SeoMetatag struct {
	Base
	BlogPostID uint `json:"blog_post_id" gorm:"uniqueIndex;not null"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description" gorm:"type:text"`
	MetaKeywords    string `json:"meta_keywords"    gorm:"type:text"`
	Robots          string `json:"robots"`
	CanonicalURL    string `json:"canonical_url"`
	AlternateURL    string `json:"alternate_url"`

	OgTitle       string `json:"og_title"`
	OgDescription string `json:"og_description" gorm:"type:text"`
	OgImage       string `json:"og_image"`
	OgType        string `json:"og_type"`
	OgURL         string `json:"og_url"`

	TwitterCard        string `json:"twitter_card"`
	TwitterTitle       string `json:"twitter_title"`
	TwitterDescription string `json:"twitter_description" gorm:"type:text"`
	TwitterImage       string `json:"twitter_image"`

	GeoRegion    string `json:"geo_region"`
	GeoPlacename string `json:"geo_placename"`
	GeoPosition  string `json:"geo_position"`

	// SchemaOrg holds JSON-LD blocks passed through verbatim into the page head.
	SchemaOrg         string `json:"schema_org"          gorm:"type:longtext"`
	GoogleAnalyticsID string `json:"google_analytics_id"`
}

func (SeoMetatag) TableName() string { return "seo_metatags" }
