package model

import "time"

// Blog post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// BlogPost is an article on the firm's blog. Content is Markdown;
// ContentHTML is the sanitized rendering served to the site.
type BlogPost struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt,omitempty"`
	Content        string     `json:"content"`
	ContentHTML    string     `json:"content_html"`
	Category       string     `json:"category,omitempty"`
	Tags           []string   `json:"tags"`
	Author         string     `json:"author,omitempty"`
	CoverImageURL  string     `json:"cover_image_url,omitempty"`
	ReadingMinutes int        `json:"reading_minutes"`
	Status         string     `json:"status"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BlogListOptions filters blog listings. PublishedOnly is forced for the
// public site.
type BlogListOptions struct {
	Status        string
	Category      string
	Tag           string
	PublishedOnly bool
	Limit         int
	Offset        int
}

// BlogPostPatch holds the editable fields of a post; nil means unchanged.
type BlogPostPatch struct {
	Title         *string
	Slug          *string
	Excerpt       *string
	Content       *string
	Category      *string
	Tags          *[]string
	Author        *string
	CoverImageURL *string
	Status        *string
}
