package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/repository"
)

// BlogService manages blog posts.
type BlogService interface {
	Create(ctx context.Context, p *model.BlogPost) error
	Update(ctx context.Context, id string, patch model.BlogPostPatch) (*model.BlogPost, error)
	Get(ctx context.Context, id string) (*model.BlogPost, error)
	// GetPublished returns a published post by slug. Drafts yield repository.ErrNotFound.
	GetPublished(ctx context.Context, slug string) (*model.BlogPost, error)
	List(ctx context.Context, opts model.BlogListOptions) ([]*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

var postStatuses = []string{model.PostStatusDraft, model.PostStatusPublished}

const maxTitleLength = 200

type blogServiceImpl struct {
	repo repository.BlogRepository
	now  func() time.Time
}

// NewBlogService creates a BlogService backed by the given repository.
func NewBlogService(repo repository.BlogRepository) BlogService {
	return &blogServiceImpl{repo: repo, now: time.Now}
}

func (s *blogServiceImpl) Create(ctx context.Context, p *model.BlogPost) error {
	trimAll(&p.Title, &p.Slug, &p.Excerpt, &p.Category, &p.Author, &p.CoverImageURL)
	if err := validateTitle(p.Title); err != nil {
		return err
	}
	var ok bool
	if p.Status, ok = defaulted(p.Status, model.PostStatusDraft, postStatuses); !ok {
		return ErrInvalidStatus
	}

	base := p.Slug
	if base == "" {
		base = p.Title
	}
	slug, err := s.freeSlug(ctx, base, "")
	if err != nil {
		return err
	}
	p.Slug = slug
	p.Tags = normalizeTags(p.Tags)

	if err := s.render(p); err != nil {
		return err
	}
	if p.Status == model.PostStatusPublished {
		t := s.now().UTC()
		p.PublishedAt = &t
	} else {
		p.PublishedAt = nil
	}
	return s.repo.Create(ctx, p)
}

// Update applies patch. The slug only changes when the patch sets one, so
// published URLs survive title edits. published_at is set on first publish
// and kept afterwards.
func (s *blogServiceImpl) Update(ctx context.Context, id string, patch model.BlogPostPatch) (*model.BlogPost, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		p.Title = strings.TrimSpace(*patch.Title)
		if err := validateTitle(p.Title); err != nil {
			return nil, err
		}
	}
	if patch.Slug != nil {
		base := strings.TrimSpace(*patch.Slug)
		if base == "" {
			base = p.Title
		}
		if Slugify(base) != p.Slug {
			slug, err := s.freeSlug(ctx, base, p.ID)
			if err != nil {
				return nil, err
			}
			p.Slug = slug
		}
	}
	if patch.Status != nil {
		if !slices.Contains(postStatuses, *patch.Status) {
			return nil, ErrInvalidStatus
		}
		p.Status = *patch.Status
	}
	setTrimmed(&p.Excerpt, patch.Excerpt)
	setTrimmed(&p.Category, patch.Category)
	setTrimmed(&p.Author, patch.Author)
	setTrimmed(&p.CoverImageURL, patch.CoverImageURL)
	if patch.Tags != nil {
		p.Tags = normalizeTags(*patch.Tags)
	}
	if patch.Content != nil {
		p.Content = *patch.Content
		if err := s.render(p); err != nil {
			return nil, err
		}
	}

	if p.Status == model.PostStatusPublished && p.PublishedAt == nil {
		t := s.now().UTC()
		p.PublishedAt = &t
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *blogServiceImpl) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *blogServiceImpl) GetPublished(ctx context.Context, slug string) (*model.BlogPost, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p.Status != model.PostStatusPublished {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (s *blogServiceImpl) List(ctx context.Context, opts model.BlogListOptions) ([]*model.BlogPost, error) {
	return s.repo.List(ctx, opts)
}

func (s *blogServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *blogServiceImpl) freeSlug(ctx context.Context, base, excludeID string) (string, error) {
	slug := Slugify(base)
	if slug == "" {
		slug = "post"
	}
	return uniqueSlug(ctx, slug, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate, excludeID)
	})
}

func (s *blogServiceImpl) render(p *model.BlogPost) error {
	html, err := RenderMarkdown(p.Content)
	if err != nil {
		return err
	}
	p.ContentHTML = html
	p.ReadingMinutes = ReadingMinutes(p.Content)
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return invalid("title", "title_required")
	}
	if len([]rune(title)) > maxTitleLength {
		return invalid("title", "title_too_long")
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
