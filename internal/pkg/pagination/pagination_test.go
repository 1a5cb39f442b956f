package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, DefaultSize},
		{-3, 10, 1, 10},
		{2, 500, 2, MaxSize},
		{5, 50, 5, 50},
	}
	for _, tc := range cases {
		got := Clamp(tc.page, tc.size)
		if got.Page != tc.wantPage || got.Size != tc.wantSize {
			t.Errorf("Clamp(%d, %d) = %+v, expected page %d size %d",
				tc.page, tc.size, got, tc.wantPage, tc.wantSize)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := (Query{Page: 3, Size: 20}).Offset(); got != 40 {
		t.Errorf("Offset = %d, expected 40", got)
	}
}

func TestFromContextLimitAlias(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		url      string
		wantSize int
	}{
		{"/?page=2&limit=5", 5},
		{"/?page=2&size=7&limit=5", 7},
		{"/?page=2", DefaultSize},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", tc.url, nil)
		q := FromContext(c)
		if q.Page != 2 || q.Size != tc.wantSize {
			t.Errorf("FromContext(%q) = %+v, expected page 2 size %d", tc.url, q, tc.wantSize)
		}
	}
}
