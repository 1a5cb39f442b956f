package pagination

import (
	"strconv"

	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100
)

// Query holds validated pagination parameters.
type Query struct {
	Page int
	Size int
}

// Offset is the row offset of the requested page.
func (q Query) Offset() int { return (q.Page - 1) * q.Size }

// FromContext reads page and size from the query string. The old admin
// panel sent limit instead of size; both are accepted, size wins.
func FromContext(c *gin.Context) Query {
	size := atoiOr(c.Query("size"), 0)
	if size == 0 {
		size = atoiOr(c.Query("limit"), 0)
	}
	return Clamp(atoiOr(c.Query("page"), 0), size)
}

// Clamp normalizes raw page/size values into a usable Query.
func Clamp(page, size int) Query {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Query{Page: page, Size: size}
}

// Paginate counts the query, loads the requested page into dest and returns
// the metadata the admin panel's tables consume.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := db.Offset(q.Offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	pages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   pages,
		Size:        q.Size,
		HasNextPage: q.Page < pages,
	}, nil
}

func atoiOr(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
