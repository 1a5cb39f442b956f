package models

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// BlogPost is a blog article. Tags are kept as a comma-separated string to
// stay compatible with the legacy table contents.
type BlogPost struct {
	Base
	Title         string      `json:"title"          gorm:"not null"`
	Slug          string      `json:"slug"           gorm:"uniqueIndex;not null"`
	Excerpt       string      `json:"excerpt"        gorm:"type:text"`
	Content       string      `json:"content"        gorm:"type:longtext"`
	Status        string      `json:"status"         gorm:"default:draft;index"`
	Tags          string      `json:"tags"           gorm:"type:text"`
	AuthorName    string      `json:"author_name"`
	AuthorEmail   string      `json:"author_email"`
	FeaturedImage string      `json:"featured_image"`
	Views         int         `json:"views"          gorm:"default:0"`
	Seo           *SeoMetatag `json:"seo,omitempty"  gorm:"foreignKey:BlogPostID"`
}

func (BlogPost) TableName() string { return "blog_posts" }

func (b *BlogPost) IsPublished() bool { return b.Status == BlogStatusPublished }
