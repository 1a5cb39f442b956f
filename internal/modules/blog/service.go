package blog

import (
	"errors"
	"strings"

	"github.com/cybaemtech/site-core/internal/models"
	"github.com/cybaemtech/site-core/internal/pkg/pagination"
	"github.com/cybaemtech/site-core/internal/pkg/response"
	"gorm.io/gorm"
)

var (
	errNotFound  = errors.New("blog not found")
	errSlugTaken = errors.New("slug already in use")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type ListFilter struct {
	Status string
	Search string
}

func (s *Service) List(q pagination.Query, filter ListFilter) ([]models.BlogPost, response.Pagination, error) {
	query := s.db.Model(&models.BlogPost{}).Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR excerpt LIKE ?", like, like)
	}

	var posts []models.BlogPost
	page, err := pagination.Paginate(query, q, &posts)
	return posts, page, err
}

// Get loads one post with its SEO row joined in.
func (s *Service) Get(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.db.Preload("Seo").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *Service) GetBySlug(slug string, publishedOnly bool) (*models.BlogPost, error) {
	query := s.db.Preload("Seo").Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("status = ?", models.BlogStatusPublished)
	}
	var post models.BlogPost
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *Service) ListPublished() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	return posts, s.db.Where("status = ?", models.BlogStatusPublished).
		Order("created_at DESC").Find(&posts).Error
}

func (s *Service) Create(dto *CreateBlogDTO) (*models.BlogPost, error) {
	slug := strings.TrimSpace(dto.Slug)
	explicit := slug != ""
	if !explicit {
		slug = GenerateSlug(dto.Title)
	}

	taken, err := s.slugTaken(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		if explicit {
			return nil, errSlugTaken
		}
		slug = slug + "-" + slugToken()
	}

	status := strings.TrimSpace(dto.Status)
	if status == "" {
		status = models.BlogStatusDraft
	}

	post := models.BlogPost{
		Title:         strings.TrimSpace(dto.Title),
		Slug:          slug,
		Excerpt:       dto.Excerpt,
		Content:       dto.Content,
		Status:        status,
		Tags:          dto.Tags,
		AuthorName:    dto.AuthorName,
		AuthorEmail:   dto.AuthorEmail,
		FeaturedImage: dto.FeaturedImage,
	}
	return &post, s.db.Create(&post).Error
}

// Update patches a post. The slug is regenerated from the new title unless
// the client supplied one explicitly.
func (s *Service) Update(id uint, dto *UpdateBlogDTO) (*models.BlogPost, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = strings.TrimSpace(*dto.Title)
	}

	switch {
	case dto.Slug != nil && strings.TrimSpace(*dto.Slug) != "":
		updates["slug"] = strings.TrimSpace(*dto.Slug)
	case dto.Title != nil:
		updates["slug"] = GenerateSlug(*dto.Title)
	}
	if slug, ok := updates["slug"].(string); ok && slug != post.Slug {
		taken, err := s.slugTaken(slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errSlugTaken
		}
	}

	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.Status != nil {
		updates["status"] = *dto.Status
	}
	if dto.Tags != nil {
		updates["tags"] = *dto.Tags
	}
	if dto.AuthorName != nil {
		updates["author_name"] = *dto.AuthorName
	}
	if dto.AuthorEmail != nil {
		updates["author_email"] = *dto.AuthorEmail
	}
	if dto.FeaturedImage != nil {
		updates["featured_image"] = *dto.FeaturedImage
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.BlogPost{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

// Delete removes the post and its SEO row atomically.
func (s *Service) Delete(id uint) (*models.BlogPost, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_post_id = ?", id).Delete(&models.SeoMetatag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BlogPost{}, id).Error
	})
	return post, err
}

// IncrementViews bumps the monotonic views counter atomically.
func (s *Service) IncrementViews(id uint) error {
	return s.db.Model(&models.BlogPost{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (s *Service) slugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.BlogPost{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
