package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerline/backend/internal/model"
)

// BlogRepository is the persistence interface for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, p *model.BlogPost) error
	List(ctx context.Context, opts model.BlogListOptions) ([]*model.BlogPost, error)
	GetByID(ctx context.Context, id string) (*model.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	Update(ctx context.Context, p *model.BlogPost) error
	Delete(ctx context.Context, id string) error
	// SlugExists reports whether slug is taken by a post other than excludeID.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// PgBlogRepository is the PostgreSQL implementation of BlogRepository.
type PgBlogRepository struct {
	pool *pgxpool.Pool
}

// NewPgBlogRepository creates a PgBlogRepository backed by the given pool.
func NewPgBlogRepository(pool *pgxpool.Pool) *PgBlogRepository {
	return &PgBlogRepository{pool: pool}
}

var _ BlogRepository = (*PgBlogRepository)(nil)

const blogColumns = `id, title, slug, COALESCE(excerpt, ''), content, content_html,
	COALESCE(category, ''), tags, COALESCE(author, ''), COALESCE(cover_image_url, ''),
	reading_minutes, status, published_at, created_at, updated_at`

func scanPost(row pgx.Row) (*model.BlogPost, error) {
	var p model.BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.ContentHTML,
		&p.Category, &p.Tags, &p.Author, &p.CoverImageURL, &p.ReadingMinutes, &p.Status,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

func (r *PgBlogRepository) Create(ctx context.Context, p *model.BlogPost) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO blog_posts
		   (title, slug, excerpt, content, content_html, category, tags, author,
		    cover_image_url, reading_minutes, status, published_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''),
		         NULLIF($9, ''), $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.ContentHTML, p.Category, nonNilStrings(p.Tags),
		p.Author, p.CoverImageURL, p.ReadingMinutes, p.Status, p.PublishedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapWriteError(err)
}

// List returns posts newest first. Published posts sort by published_at.
func (r *PgBlogRepository) List(ctx context.Context, opts model.BlogListOptions) ([]*model.BlogPost, error) {
	var f filter
	if opts.PublishedOnly {
		f.eq("status", model.PostStatusPublished)
	} else {
		f.eq("status", opts.Status)
	}
	f.eq("category", opts.Category)
	if opts.Tag != "" {
		f.raw("? = ANY(tags)", opts.Tag)
	}

	query := `SELECT ` + blogColumns + ` FROM blog_posts` + f.where() +
		` ORDER BY COALESCE(published_at, created_at) DESC` + f.page(opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PgBlogRepository) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	p, err := scanPost(r.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PgBlogRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	p, err := scanPost(r.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PgBlogRepository) Update(ctx context.Context, p *model.BlogPost) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE blog_posts
		 SET title = $2, slug = $3, excerpt = NULLIF($4, ''), content = $5, content_html = $6,
		     category = NULLIF($7, ''), tags = $8, author = NULLIF($9, ''),
		     cover_image_url = NULLIF($10, ''), reading_minutes = $11, status = $12,
		     published_at = $13, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.ContentHTML, p.Category, nonNilStrings(p.Tags),
		p.Author, p.CoverImageURL, p.ReadingMinutes, p.Status, p.PublishedAt,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return mapWriteError(err)
}

func (r *PgBlogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgBlogRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND ($2 = '' OR id::text <> $2))`,
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}
