package service

import (
	"context"

	"github.com/ledgerline/backend/internal/model"
)

// BookingService defines the business logic for consultation bookings.
type BookingService interface {
	// Submit validates and stores a booking request with status "pending".
	Submit(ctx context.Context, b *model.Booking) error
	List(ctx context.Context, opts model.BookingListOptions) ([]*model.Booking, error)
	Get(ctx context.Context, id string) (*model.Booking, error)
	// UpdateStatus applies a status change. Completed and cancelled bookings
	// are final and return ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error)
	// Reschedule changes the slot or meeting type of an open booking.
	Reschedule(ctx context.Context, id string, change model.BookingReschedule) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	// Agenda returns the open bookings for a YYYY-MM-DD date.
	Agenda(ctx context.Context, date string) ([]*model.Booking, error)
}
