package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerline/backend/internal/model"
)

// StatsRepository aggregates counts for the admin dashboard.
type StatsRepository interface {
	// Collect returns per-status and per-service counts plus monthly
	// submission counts for the last months calendar months.
	Collect(ctx context.Context, months int) (*model.RawStats, error)
}

// PgStatsRepository is the PostgreSQL implementation of StatsRepository.
type PgStatsRepository struct {
	pool *pgxpool.Pool
}

// NewPgStatsRepository creates a PgStatsRepository backed by the given pool.
func NewPgStatsRepository(pool *pgxpool.Pool) *PgStatsRepository {
	return &PgStatsRepository{pool: pool}
}

var _ StatsRepository = (*PgStatsRepository)(nil)

// statusTables are fixed identifiers, never user input.
var statusTables = []string{"contact_messages", "bookings", "clients", "blog_posts"}

func (r *PgStatsRepository) Collect(ctx context.Context, months int) (*model.RawStats, error) {
	counts := make([]model.StatusCounts, len(statusTables))
	for i, table := range statusTables {
		c, err := r.groupCount(ctx, `SELECT status, COUNT(*) FROM `+table+` GROUP BY status`)
		if err != nil {
			return nil, fmt.Errorf("count %s by status: %w", table, err)
		}
		counts[i] = c
	}

	contactsByService, err := r.groupCount(ctx,
		`SELECT COALESCE(service_type, 'other'), COUNT(*) FROM contact_messages GROUP BY 1`)
	if err != nil {
		return nil, fmt.Errorf("count contacts by service: %w", err)
	}
	bookingsByService, err := r.groupCount(ctx,
		`SELECT service_type, COUNT(*) FROM bookings GROUP BY 1`)
	if err != nil {
		return nil, fmt.Errorf("count bookings by service: %w", err)
	}

	var converted int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM clients WHERE source_contact_id IS NOT NULL`,
	).Scan(&converted); err != nil {
		return nil, fmt.Errorf("count converted contacts: %w", err)
	}

	monthly, err := r.monthly(ctx, months)
	if err != nil {
		return nil, err
	}

	return &model.RawStats{
		Contacts:          counts[0],
		Bookings:          counts[1],
		Clients:           counts[2],
		Posts:             counts[3],
		ContactsByService: contactsByService,
		BookingsByService: bookingsByService,
		ConvertedContacts: converted,
		Monthly:           monthly,
	}, nil
}

func (r *PgStatsRepository) groupCount(ctx context.Context, query string) (model.StatusCounts, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := model.StatusCounts{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}

// monthly returns one row per month, oldest first, including empty months.
func (r *PgStatsRepository) monthly(ctx context.Context, months int) ([]model.MonthlyCount, error) {
	if months <= 0 {
		return []model.MonthlyCount{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`WITH m AS (
		   SELECT generate_series(
		     date_trunc('month', NOW()) - make_interval(months => $1 - 1),
		     date_trunc('month', NOW()),
		     interval '1 month') AS month
		 )
		 SELECT to_char(m.month, 'YYYY-MM'),
		        (SELECT COUNT(*) FROM contact_messages c
		          WHERE date_trunc('month', c.created_at) = m.month),
		        (SELECT COUNT(*) FROM bookings b
		          WHERE date_trunc('month', b.created_at) = m.month)
		 FROM m ORDER BY m.month`, months)
	if err != nil {
		return nil, fmt.Errorf("monthly counts: %w", err)
	}
	defer rows.Close()

	out := []model.MonthlyCount{}
	for rows.Next() {
		var mc model.MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Contacts, &mc.Bookings); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}
