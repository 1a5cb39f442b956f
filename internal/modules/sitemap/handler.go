package sitemap

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/cybaemtech/site-core/internal/models"
	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []urlEntry
}

type urlEntry struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

// Handler renders sitemap.xml per request, so blog mutations never need an
// explicit sitemap refresh.
type Handler struct {
	db      *gorm.DB
	baseURL string
}

func NewHandler(db *gorm.DB, baseURL string) *Handler {
	return &Handler{db: db, baseURL: strings.TrimRight(baseURL, "/")}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/sitemap.xml", h.sitemap)
}

func (h *Handler) sitemap(c *gin.Context) {
	var posts []models.BlogPost
	err := h.db.Select("slug", "updated_at").
		Where("status = ?", models.BlogStatusPublished).
		Order("slug ASC").Find(&posts).Error
	if err != nil {
		response.InternalError(c, err)
		return
	}

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []urlEntry{{Loc: h.baseURL + "/"}},
	}
	for _, post := range posts {
		set.URLs = append(set.URLs, urlEntry{
			Loc:     h.baseURL + "/blog-post/" + post.Slug,
			LastMod: post.UpdatedAt.Format(time.DateOnly),
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8",
		append([]byte(xml.Header), out...))
}
