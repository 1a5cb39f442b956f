package seo

import (
	"errors"

	"github.com/cybaemtech/site-core/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultOgType       = "article"
	DefaultTwitterCard  = "summary_large_image"
	DefaultGeoRegion    = "IN-MH"
	DefaultGeoPlacename = "Pune"
)

var (
	errBlogNotFound = errors.New("blog not found")
	errSeoNotFound  = errors.New("seo metatags not found")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Get returns the blog and its SEO row (nil when none exists yet).
func (s *Service) Get(blogID uint) (*models.BlogPost, *models.SeoMetatag, error) {
	var blog models.BlogPost
	if err := s.db.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errBlogNotFound
		}
		return nil, nil, err
	}

	var seo models.SeoMetatag
	err := s.db.Where("blog_post_id = ?", blogID).First(&seo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &blog, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &blog, &seo, nil
}

// Upsert updates the existing SEO row or inserts a new one. The existence
// check and the write run in one transaction.
func (s *Service) Upsert(dto *UpsertSeoDTO) (*models.SeoMetatag, error) {
	blogID := dto.blogID()
	var out *models.SeoMetatag

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var blog models.BlogPost
		if err := tx.First(&blog, blogID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBlogNotFound
			}
			return err
		}

		row := models.SeoMetatag{
			BlogPostID:         blogID,
			MetaTitle:          dto.MetaTitle,
			MetaDescription:    dto.MetaDescription,
			MetaKeywords:       dto.MetaKeywords,
			Robots:             dto.Robots,
			CanonicalURL:       dto.CanonicalURL,
			AlternateURL:       dto.AlternateURL,
			OgTitle:            dto.OgTitle,
			OgDescription:      dto.OgDescription,
			OgImage:            dto.OgImage,
			OgType:             dto.OgType,
			OgURL:              dto.OgURL,
			TwitterCard:        dto.TwitterCard,
			TwitterTitle:       dto.TwitterTitle,
			TwitterDescription: dto.TwitterDescription,
			TwitterImage:       dto.TwitterImage,
			GeoRegion:          dto.GeoRegion,
			GeoPlacename:       dto.GeoPlacename,
			GeoPosition:        dto.GeoPosition,
			SchemaOrg:          dto.SchemaOrg,
			GoogleAnalyticsID:  dto.GoogleAnalyticsID,
		}

		var existing models.SeoMetatag
		err := tx.Where("blog_post_id = ?", blogID).First(&existing).Error
		switch {
		case err == nil:
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		default:
			return err
		}
		out = &row
		return nil
	})
	return out, err
}

func (s *Service) Delete(blogID uint) error {
	res := s.db.Where("blog_post_id = ?", blogID).Delete(&models.SeoMetatag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errSeoNotFound
	}
	return nil
}

// Effective resolves the fallback chain against the blog row: og fields fall
// back to meta fields then to the blog itself, twitter fields fall back to
// og. Defaults fill og:type, twitter card and the geo tags.
func Effective(seo *models.SeoMetatag, blog *models.BlogPost) models.SeoMetatag {
	var out models.SeoMetatag
	if seo != nil {
		out = *seo
	}
	out.BlogPostID = blog.ID

	if out.MetaTitle == "" {
		out.MetaTitle = blog.Title
	}
	if out.MetaDescription == "" {
		out.MetaDescription = blog.Excerpt
	}
	if out.OgTitle == "" {
		out.OgTitle = out.MetaTitle
	}
	if out.OgDescription == "" {
		out.OgDescription = out.MetaDescription
	}
	if out.OgImage == "" {
		out.OgImage = blog.FeaturedImage
	}
	if out.OgType == "" {
		out.OgType = DefaultOgType
	}
	if out.TwitterCard == "" {
		out.TwitterCard = DefaultTwitterCard
	}
	if out.TwitterTitle == "" {
		out.TwitterTitle = out.OgTitle
	}
	if out.TwitterDescription == "" {
		out.TwitterDescription = out.OgDescription
	}
	if out.TwitterImage == "" {
		out.TwitterImage = out.OgImage
	}
	if out.GeoRegion == "" {
		out.GeoRegion = DefaultGeoRegion
	}
	if out.GeoPlacename == "" {
		out.GeoPlacename = DefaultGeoPlacename
	}
	return out
}
