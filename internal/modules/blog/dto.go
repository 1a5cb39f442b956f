package blog

type CreateBlogDTO struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	Tags          string `json:"tags"`
	AuthorName    string `json:"author_name"`
	AuthorEmail   string `json:"author_email"`
	FeaturedImage string `json:"featured_image"`
}

// UpdateBlogDTO uses pointers so absent fields stay untouched. A supplied
// slug wins over regeneration from the title.
type UpdateBlogDTO struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Excerpt       *string `json:"excerpt"`
	Content       *string `json:"content"`
	Status        *string `json:"status"`
	Tags          *string `json:"tags"`
	AuthorName    *string `json:"author_name"`
	AuthorEmail   *string `json:"author_email"`
	FeaturedImage *string `json:"featured_image"`
}
