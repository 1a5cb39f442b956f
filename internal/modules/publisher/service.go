package publisher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cybaemtech/site-core/internal/models"
	"github.com/cybaemtech/site-core/internal/modules/seo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const templateFile = "index.html"

var errBlogNotFound = errors.New("blog not found")

// BatchResult reports one GenerateAll run. Per-file failures are collected,
// never fatal to the batch.
type BatchResult struct {
	Generated int      `json:"generated"`
	Files     []string `json:"files"`
	Errors    []string `json:"errors"`
}

// Service pre-renders published blog posts to static HTML and keeps the
// frontend's generated route regions in step with the published list.
type Service struct {
	db          *gorm.DB
	staticDir   string
	webDir      string
	frontendURL string
	log         *zap.Logger
}

func NewService(db *gorm.DB, staticDir, webDir, frontendURL string, log *zap.Logger) *Service {
	return &Service{
		db:          db,
		staticDir:   staticDir,
		webDir:      webDir,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
	}
}

// GenerateBlogHTML renders one post's static page. Drafts get their stale
// file removed instead.
func (s *Service) GenerateBlogHTML(id uint) error {
	blog, seoRow, err := s.load(id)
	if err != nil {
		return err
	}
	if blog.Status != models.BlogStatusPublished {
		return s.removeFile(blog.Slug)
	}
	return s.render(blog, seoRow)
}

// DeleteBlogHTML removes a post's static page by slug, then rebuilds the
// route regions so they stop referencing it. Callers pass the slug because
// the row is usually already deleted by the time this runs.
func (s *Service) DeleteBlogHTML(slug string) error {
	if err := s.removeFile(slug); err != nil {
		return err
	}
	_, err := s.GenerateAll()
	return err
}

// GenerateAll re-renders every published post and rewrites the generated
// regions in vite.config.ts and .htaccess from the published list sorted by
// slug. Running it twice in a row yields byte-identical files.
func (s *Service) GenerateAll() (*BatchResult, error) {
	var posts []models.BlogPost
	err := s.db.Preload("Seo").Where("status = ?", models.BlogStatusPublished).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].Slug < posts[j].Slug })

	result := &BatchResult{Files: []string{}, Errors: []string{}}
	slugs := make([]string, 0, len(posts))
	for i := range posts {
		post := &posts[i]
		slugs = append(slugs, post.Slug)
		if err := s.render(post, post.Seo); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", post.Slug, err))
			continue
		}
		result.Generated++
		result.Files = append(result.Files, post.Slug+".html")
	}

	for _, err := range s.rewriteRegions(slugs) {
		result.Errors = append(result.Errors, err.Error())
	}

	s.log.Info("static blog pages regenerated",
		zap.Int("generated", result.Generated),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

// ListFiles returns the generated HTML files under the static dir, template
// excluded.
func (s *Service) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(s.staticDir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	files := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == templateFile || !strings.HasSuffix(name, ".html") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// ClearFiles deletes every generated HTML file and empties the route regions.
func (s *Service) ClearFiles() (int, error) {
	files, err := s.ListFiles()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range files {
		if err := os.Remove(filepath.Join(s.staticDir, name)); err != nil {
			return removed, err
		}
		removed++
	}
	for _, err := range s.rewriteRegions(nil) {
		s.log.Warn("region rewrite failed during clear", zap.Error(err))
	}
	return removed, nil
}

func (s *Service) load(id uint) (*models.BlogPost, *models.SeoMetatag, error) {
	var blog models.BlogPost
	if err := s.db.Preload("Seo").First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errBlogNotFound
		}
		return nil, nil, err
	}
	return &blog, blog.Seo, nil
}

func (s *Service) render(blog *models.BlogPost, seoRow *models.SeoMetatag) error {
	template, err := os.ReadFile(filepath.Join(s.staticDir, templateFile))
	if err != nil {
		return fmt.Errorf("read page template: %w", err)
	}

	page := string(template)
	closeIdx := headCloseIndex(page)
	if closeIdx == -1 {
		return fmt.Errorf("page template has no </head>")
	}

	effective := seo.Effective(seoRow, blog)
	out := page[:closeIdx] + headBlock(blog, &effective, s.frontendURL) + page[closeIdx:]

	dst := filepath.Join(s.staticDir, blog.Slug+".html")
	if err := os.WriteFile(dst, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// headCloseIndex locates </head> case-insensitively. The returned offset
// indexes page itself, so multi-byte runes earlier in the template cannot
// shift the splice point.
func headCloseIndex(page string) int {
	const tag = "</head>"
	for i := 0; i+len(tag) <= len(page); i++ {
		if strings.EqualFold(page[i:i+len(tag)], tag) {
			return i
		}
	}
	return -1
}

func (s *Service) removeFile(slug string) error {
	if slug == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.staticDir, slug+".html"))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// rewriteRegions updates both frontend files. Skipped entirely when no web
// dir is configured.
func (s *Service) rewriteRegions(slugs []string) []error {
	if s.webDir == "" {
		return nil
	}

	var errs []error
	targets := []struct {
		file, begin, end, body string
	}{
		{"vite.config.ts", viteRegionBegin, viteRegionEnd, viteRoutesBody(slugs)},
		{".htaccess", htaccessRegionBegin, htaccessRegionEnd, htaccessRulesBody(slugs)},
	}
	for _, t := range targets {
		path := filepath.Join(s.webDir, t.file)
		content, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", t.file, err))
			continue
		}
		updated, err := replaceRegion(string(content), t.begin, t.end, t.body)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.file, err))
			continue
		}
		if updated == string(content) {
			continue // already current, keep mtime stable
		}
		if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", t.file, err))
		}
	}
	return errs
}
