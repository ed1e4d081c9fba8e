package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerline/backend/internal/model"
)

// ClientRepository is the persistence interface for firm clients.
type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	List(ctx context.Context, opts model.ClientListOptions) ([]*model.Client, error)
	GetByID(ctx context.Context, id string) (*model.Client, error)
	// GetBySourceContact returns the client converted from a contact message, or ErrNotFound.
	GetBySourceContact(ctx context.Context, contactID string) (*model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id string) error
}

// PgClientRepository is the PostgreSQL implementation of ClientRepository.
type PgClientRepository struct {
	pool *pgxpool.Pool
}

// NewPgClientRepository creates a PgClientRepository backed by the given pool.
func NewPgClientRepository(pool *pgxpool.Pool) *PgClientRepository {
	return &PgClientRepository{pool: pool}
}

var _ ClientRepository = (*PgClientRepository)(nil)

const clientColumns = `id, name, COALESCE(company, ''), email, COALESCE(phone, ''), services,
	status, COALESCE(trn, ''), COALESCE(notes, ''), COALESCE(source_contact_id::text, ''),
	created_at, updated_at`

func scanClient(row pgx.Row) (*model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Services,
		&c.Status, &c.TRN, &c.Notes, &c.SourceContactID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if c.Services == nil {
		c.Services = []string{}
	}
	return &c, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Create inserts a client. A second conversion of the same contact yields ErrConflict.
func (r *PgClientRepository) Create(ctx context.Context, c *model.Client) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO clients (name, company, email, phone, services, status, trn, notes, source_contact_id)
		 VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, '')::uuid)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Company, c.Email, c.Phone, nonNilStrings(c.Services), c.Status, c.TRN, c.Notes, c.SourceContactID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapWriteError(err)
}

// List returns clients filtered by status and a name/company/email substring.
func (r *PgClientRepository) List(ctx context.Context, opts model.ClientListOptions) ([]*model.Client, error) {
	var f filter
	f.eq("status", opts.Status)
	f.search(opts.Query, "name", "company", "email")

	query := `SELECT ` + clientColumns + ` FROM clients` + f.where() +
		` ORDER BY name, created_at` + f.page(opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *PgClientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *PgClientRepository) GetBySourceContact(ctx context.Context, contactID string) (*model.Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE source_contact_id = $1`, contactID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// Update overwrites the editable fields; source_contact_id is immutable.
func (r *PgClientRepository) Update(ctx context.Context, c *model.Client) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE clients
		 SET name = $2, company = NULLIF($3, ''), email = $4, phone = NULLIF($5, ''),
		     services = $6, status = $7, trn = NULLIF($8, ''), notes = NULLIF($9, ''),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		c.ID, c.Name, c.Company, c.Email, c.Phone, nonNilStrings(c.Services), c.Status, c.TRN, c.Notes,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PgClientRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
