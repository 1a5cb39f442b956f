package publisher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cybaemtech/site-core/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const pageTemplate = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
  </head>
  <body><div id="root"></div></body>
</html>
`

const viteFixture = `export default {
  routes: [
    // blog-routes:begin (generated, do not edit)
    // blog-routes:end
  ],
};
`

const htaccessFixture = `RewriteEngine On
# blog-routes:begin (generated, do not edit)
# blog-routes:end
RewriteRule ^ /index.html [L]
`

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.BlogPost{}, &models.SeoMetatag{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testService(t *testing.T, db *gorm.DB) (*Service, string, string) {
	t.Helper()
	staticDir := t.TempDir()
	webDir := t.TempDir()

	writeFile(t, filepath.Join(staticDir, "index.html"), pageTemplate)
	writeFile(t, filepath.Join(webDir, "vite.config.ts"), viteFixture)
	writeFile(t, filepath.Join(webDir, ".htaccess"), htaccessFixture)

	svc := NewService(db, staticDir, webDir, "https://www.example.com", zap.NewNop())
	return svc, staticDir, webDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func seedPost(t *testing.T, db *gorm.DB, title, slug, status string) *models.BlogPost {
	t.Helper()
	post := models.BlogPost{Title: title, Slug: slug, Excerpt: "About " + title, Status: status}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return &post
}

func TestGenerateBlogHTML(t *testing.T) {
	db := testDB(t)
	svc, staticDir, _ := testService(t, db)
	post := seedPost(t, db, "Cloud Guide", "cloud-guide", models.BlogStatusPublished)

	if err := svc.GenerateBlogHTML(post.ID); err != nil {
		t.Fatalf("GenerateBlogHTML: %v", err)
	}

	page := readFile(t, filepath.Join(staticDir, "cloud-guide.html"))
	if !strings.Contains(page, "<title>Cloud Guide</title>") {
		t.Error("rendered page missing title from fallback chain")
	}
	if !strings.Contains(page, `property="og:url" content="https://www.example.com/blog-post/cloud-guide"`) {
		t.Error("rendered page missing og:url")
	}
	if !strings.Contains(page, `rel="canonical"`) {
		t.Error("rendered page missing canonical link")
	}
	if !strings.Contains(page, `content="summary_large_image"`) {
		t.Error("rendered page missing default twitter card")
	}
	if !strings.Contains(page, `<div id="root">`) {
		t.Error("template body must be preserved")
	}
}

func TestGenerateBlogHTMLDraftRemovesFile(t *testing.T) {
	db := testDB(t)
	svc, staticDir, _ := testService(t, db)
	post := seedPost(t, db, "Draft Post", "draft-post", models.BlogStatusPublished)

	if err := svc.GenerateBlogHTML(post.ID); err != nil {
		t.Fatalf("GenerateBlogHTML: %v", err)
	}
	if err := db.Model(post).Update("status", models.BlogStatusDraft).Error; err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if err := svc.GenerateBlogHTML(post.ID); err != nil {
		t.Fatalf("GenerateBlogHTML after unpublish: %v", err)
	}

	if _, err := os.Stat(filepath.Join(staticDir, "draft-post.html")); !os.IsNotExist(err) {
		t.Error("unpublished post should have its static file removed")
	}
}

func TestGenerateBlogHTMLUppercaseHead(t *testing.T) {
	db := testDB(t)
	svc, staticDir, _ := testService(t, db)
	post := seedPost(t, db, "Upper", "upper-post", models.BlogStatusPublished)

	// uppercase closing tag, with a multi-byte rune before it whose lowercase
	// form has a different byte length
	writeFile(t, filepath.Join(staticDir, "index.html"),
		"<!doctype html>\n<html>\n  <HEAD>\n    <title>İstanbul</title>\n  </HEAD>\n  <body><div id=\"root\"></div></body>\n</html>\n")

	if err := svc.GenerateBlogHTML(post.ID); err != nil {
		t.Fatalf("GenerateBlogHTML: %v", err)
	}

	page := readFile(t, filepath.Join(staticDir, "upper-post.html"))
	if !strings.Contains(page, "İstanbul") {
		t.Error("template content before </HEAD> must survive the splice intact")
	}
	if !strings.Contains(page, `rel="canonical"`) {
		t.Error("head block not injected before uppercase </HEAD>")
	}
	if strings.Index(page, `rel="canonical"`) > strings.Index(page, "</HEAD>") {
		t.Error("head block injected after the closing tag")
	}
	if !strings.Contains(page, `<div id="root">`) {
		t.Error("template body must be preserved")
	}
}

func TestDeleteBlogHTMLAfterRowDeleted(t *testing.T) {
	db := testDB(t)
	svc, staticDir, webDir := testService(t, db)
	post := seedPost(t, db, "Gone Post", "gone-post", models.BlogStatusPublished)

	if _, err := svc.GenerateAll(); err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}

	// the admin handler deletes the row first and cleans up afterwards
	if err := db.Delete(&models.BlogPost{}, post.ID).Error; err != nil {
		t.Fatalf("delete row: %v", err)
	}
	if err := svc.DeleteBlogHTML(post.Slug); err != nil {
		t.Fatalf("DeleteBlogHTML: %v", err)
	}

	if _, err := os.Stat(filepath.Join(staticDir, "gone-post.html")); !os.IsNotExist(err) {
		t.Errorf("gone-post.html must be removed after delete, stat err = %v", err)
	}
	if vite := readFile(t, filepath.Join(webDir, "vite.config.ts")); strings.Contains(vite, "gone-post") {
		t.Error("deleted slug still present in vite.config.ts region")
	}
}

func TestGenerateAllIdempotent(t *testing.T) {
	db := testDB(t)
	svc, staticDir, webDir := testService(t, db)
	seedPost(t, db, "Beta", "beta-post", models.BlogStatusPublished)
	seedPost(t, db, "Alpha", "alpha-post", models.BlogStatusPublished)
	seedPost(t, db, "Hidden", "hidden-draft", models.BlogStatusDraft)

	first, err := svc.GenerateAll()
	if err != nil {
		t.Fatalf("first GenerateAll: %v", err)
	}
	if first.Generated != 2 {
		t.Fatalf("Generated = %d, expected 2 (draft excluded)", first.Generated)
	}
	if len(first.Errors) != 0 {
		t.Fatalf("Errors = %v, expected none", first.Errors)
	}

	vite1 := readFile(t, filepath.Join(webDir, "vite.config.ts"))
	ht1 := readFile(t, filepath.Join(webDir, ".htaccess"))
	alpha1 := readFile(t, filepath.Join(staticDir, "alpha-post.html"))

	second, err := svc.GenerateAll()
	if err != nil {
		t.Fatalf("second GenerateAll: %v", err)
	}
	if second.Generated != first.Generated {
		t.Errorf("second Generated = %d, expected %d", second.Generated, first.Generated)
	}

	if got := readFile(t, filepath.Join(webDir, "vite.config.ts")); got != vite1 {
		t.Error("vite.config.ts changed on second run, expected byte-identical output")
	}
	if got := readFile(t, filepath.Join(webDir, ".htaccess")); got != ht1 {
		t.Error(".htaccess changed on second run, expected byte-identical output")
	}
	if got := readFile(t, filepath.Join(staticDir, "alpha-post.html")); got != alpha1 {
		t.Error("alpha-post.html changed on second run, expected byte-identical output")
	}

	if !strings.Contains(vite1, "'/blog-post/alpha-post',\n      '/blog-post/beta-post',") {
		t.Errorf("routes not sorted by slug:\n%s", vite1)
	}
	if strings.Contains(vite1, "hidden-draft") || strings.Contains(ht1, "hidden-draft") {
		t.Error("draft slug leaked into generated regions")
	}
}

func TestGenerateAllMissingTemplate(t *testing.T) {
	db := testDB(t)
	svc, staticDir, _ := testService(t, db)
	seedPost(t, db, "Orphan", "orphan-post", models.BlogStatusPublished)

	if err := os.Remove(filepath.Join(staticDir, "index.html")); err != nil {
		t.Fatalf("remove template: %v", err)
	}

	result, err := svc.GenerateAll()
	if err != nil {
		t.Fatalf("GenerateAll must not fail the batch: %v", err)
	}
	if result.Generated != 0 || len(result.Errors) == 0 {
		t.Errorf("result = %+v, expected zero generated with collected errors", result)
	}
}

func TestClearFiles(t *testing.T) {
	db := testDB(t)
	svc, staticDir, webDir := testService(t, db)
	seedPost(t, db, "Gone Soon", "gone-soon", models.BlogStatusPublished)

	if _, err := svc.GenerateAll(); err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}

	removed, err := svc.ClearFiles()
	if err != nil {
		t.Fatalf("ClearFiles: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, expected 1", removed)
	}
	if _, err := os.Stat(filepath.Join(staticDir, "index.html")); err != nil {
		t.Error("template must survive ClearFiles")
	}
	if vite := readFile(t, filepath.Join(webDir, "vite.config.ts")); strings.Contains(vite, "gone-soon") {
		t.Error("cleared slug still present in vite.config.ts region")
	}
}
