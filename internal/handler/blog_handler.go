package handler

import (
	"net/http"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/service"
)

// BlogHandler serves the public blog and its admin editor.
type BlogHandler struct {
	blogService service.BlogService
}

func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

type blogPostRequest struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Author        string   `json:"author"`
	CoverImageURL string   `json:"coverImageUrl"`
	Status        string   `json:"status"`
}

// blogPostPatchRequest mirrors model.BlogPostPatch; omitted keys stay unchanged.
type blogPostPatchRequest struct {
	Title         *string   `json:"title"`
	Slug          *string   `json:"slug"`
	Excerpt       *string   `json:"excerpt"`
	Content       *string   `json:"content"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	Author        *string   `json:"author"`
	CoverImageURL *string   `json:"coverImageUrl"`
	Status        *string   `json:"status"`
}

type blogListResponse struct {
	Posts []*model.BlogPost `json:"posts"`
}

func writePosts(w http.ResponseWriter, posts []*model.BlogPost) {
	if posts == nil {
		posts = []*model.BlogPost{}
	}
	writeJSON(w, http.StatusOK, blogListResponse{Posts: posts})
}

// List handles GET /api/blog?category=&tag=&limit=&offset=. Only published
// posts are returned.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := model.BlogListOptions{
		Category:      r.URL.Query().Get("category"),
		Tag:           r.URL.Query().Get("tag"),
		PublishedOnly: true,
	}
	opts.Limit, opts.Offset = page(r)

	posts, err := h.blogService.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	writePosts(w, posts)
}

// GetBySlug handles GET /api/blog/{slug}.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.blogService.GetPublished(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// AdminList handles GET /api/admin/blog?status=&category=&tag=.
func (h *BlogHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := model.BlogListOptions{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
	}
	opts.Limit, opts.Offset = page(r)

	posts, err := h.blogService.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	writePosts(w, posts)
}

// Create handles POST /api/admin/blog.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req blogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p := &model.BlogPost{
		Title:         req.Title,
		Slug:          req.Slug,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		Category:      req.Category,
		Tags:          req.Tags,
		Author:        req.Author,
		CoverImageURL: req.CoverImageURL,
		Status:        req.Status,
	}
	if err := h.blogService.Create(r.Context(), p); err != nil {
		writeServiceError(w, r, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// AdminGet handles GET /api/admin/blog/{id}. Drafts are included.
func (h *BlogHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.blogService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update handles PUT /api/admin/blog/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req blogPostPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.blogService.Update(r.Context(), id, model.BlogPostPatch{
		Title:         req.Title,
		Slug:          req.Slug,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		Category:      req.Category,
		Tags:          req.Tags,
		Author:        req.Author,
		CoverImageURL: req.CoverImageURL,
		Status:        req.Status,
	})
	if err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/admin/blog/{id}.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.blogService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
