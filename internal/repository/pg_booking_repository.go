package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerline/backend/internal/model"
)

// BookingRepository is the persistence interface for consultation bookings.
type BookingRepository interface {
	Save(ctx context.Context, b *model.Booking) error
	List(ctx context.Context, opts model.BookingListOptions) ([]*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Reschedule(ctx context.Context, id, date, timeOfDay, meetingType string) error
	Delete(ctx context.Context, id string) error
	// ListForDate returns the pending and confirmed bookings on a YYYY-MM-DD date,
	// ordered by time.
	ListForDate(ctx context.Context, date string) ([]*model.Booking, error)
}

// PgBookingRepository is the PostgreSQL implementation of BookingRepository.
type PgBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPgBookingRepository creates a PgBookingRepository backed by the given pool.
func NewPgBookingRepository(pool *pgxpool.Pool) *PgBookingRepository {
	return &PgBookingRepository{pool: pool}
}

var _ BookingRepository = (*PgBookingRepository)(nil)

const bookingColumns = `id, name, email, COALESCE(phone, ''), COALESCE(company, ''),
	service_type, to_char(preferred_date, 'YYYY-MM-DD'), preferred_time, meeting_type,
	urgency, COALESCE(notes, ''), status, created_at, updated_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Company, &b.ServiceType,
		&b.PreferredDate, &b.PreferredTime, &b.MeetingType, &b.Urgency, &b.Notes,
		&b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]*model.Booking, error) {
	defer rows.Close()
	var bookings []*model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PgBookingRepository) Save(ctx context.Context, b *model.Booking) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO bookings
		   (name, email, phone, company, service_type, preferred_date, preferred_time,
		    meeting_type, urgency, notes, status)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6::date, $7, $8, $9, NULLIF($10, ''), $11)
		 RETURNING id, created_at, updated_at`,
		b.Name, b.Email, b.Phone, b.Company, b.ServiceType, b.PreferredDate, b.PreferredTime,
		b.MeetingType, b.Urgency, b.Notes, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// List returns bookings ordered by the requested slot, soonest first.
func (r *PgBookingRepository) List(ctx context.Context, opts model.BookingListOptions) ([]*model.Booking, error) {
	var f filter
	f.eq("status", opts.Status)
	f.cmp("preferred_date", ">=", opts.From)
	f.cmp("preferred_date", "<=", opts.To)

	query := `SELECT ` + bookingColumns + ` FROM bookings` + f.where() +
		` ORDER BY preferred_date, preferred_time, created_at` + f.page(opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PgBookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *PgBookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgBookingRepository) Reschedule(ctx context.Context, id, date, timeOfDay, meetingType string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings
		 SET preferred_date = $2::date, preferred_time = $3, meeting_type = $4, updated_at = NOW()
		 WHERE id = $1`,
		id, date, timeOfDay, meetingType)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgBookingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgBookingRepository) ListForDate(ctx context.Context, date string) ([]*model.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE preferred_date = $1::date AND status IN ('pending', 'confirmed')
		 ORDER BY preferred_time`, date)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}
