package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/repository"
)

// 14:00 in Dubai on 2026-10-14.
var bookingNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func newTestBookingService(repo *mockBookingRepository, notifier *recordingNotifier) *bookingServiceImpl {
	var svc BookingService
	if notifier == nil {
		svc = NewBookingService(repo, nil, nil)
	} else {
		svc = NewBookingService(repo, notifier, nil)
	}
	impl := svc.(*bookingServiceImpl)
	impl.now = func() time.Time { return bookingNow }
	return impl
}

func validBooking() *model.Booking {
	return &model.Booking{
		Name:          "Omar",
		Email:         "omar@example.com",
		ServiceType:   "corporate_tax",
		PreferredDate: "2026-10-20",
		PreferredTime: "10:30",
	}
}

func TestBookingService_Submit_Defaults(t *testing.T) {
	var saved *model.Booking
	notifier := &recordingNotifier{}
	svc := newTestBookingService(&mockBookingRepository{
		saveFunc: func(ctx context.Context, b *model.Booking) error {
			saved = b
			b.ID = "b1"
			return nil
		},
	}, notifier)

	if err := svc.Submit(context.Background(), validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Status != model.BookingStatusPending {
		t.Errorf("expected pending, got %q", saved.Status)
	}
	if saved.MeetingType != "video" {
		t.Errorf("expected meeting_type default video, got %q", saved.MeetingType)
	}
	if saved.Urgency != "normal" {
		t.Errorf("expected urgency default normal, got %q", saved.Urgency)
	}
	if len(notifier.bookings) != 1 {
		t.Errorf("expected one booking notification, got %d", len(notifier.bookings))
	}
}

func TestBookingService_Submit_TodayAllowed(t *testing.T) {
	svc := newTestBookingService(&mockBookingRepository{}, nil)
	b := validBooking()
	b.PreferredDate = "2026-10-14"
	if err := svc.Submit(context.Background(), b); err != nil {
		t.Errorf("today should be accepted, got %v", err)
	}
}

func TestBookingService_Submit_UsesOfficeDate(t *testing.T) {
	svc := newTestBookingService(&mockBookingRepository{}, nil)
	// 01:00 on the 15th in Dubai while UTC is still the 14th.
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 21, 0, 0, 0, time.UTC) }

	b := validBooking()
	b.PreferredDate = "2026-10-14"
	ve, ok := AsValidation(svc.Submit(context.Background(), b))
	if !ok || ve.Code != "preferred_date_in_past" {
		t.Errorf("expected preferred_date_in_past, got %v", ve)
	}
}

func TestBookingService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *model.Booking)
		code   string
	}{
		{"missing name", func(b *model.Booking) { b.Name = "" }, "name_required"},
		{"bad email", func(b *model.Booking) { b.Email = "omar@" }, "invalid_email"},
		{"missing service", func(b *model.Booking) { b.ServiceType = "" }, "service_type_required"},
		{"missing date", func(b *model.Booking) { b.PreferredDate = "" }, "preferred_date_required"},
		{"bad date", func(b *model.Booking) { b.PreferredDate = "20/10/2026" }, "invalid_preferred_date"},
		{"past date", func(b *model.Booking) { b.PreferredDate = "2026-10-13" }, "preferred_date_in_past"},
		{"missing time", func(b *model.Booking) { b.PreferredTime = "" }, "preferred_time_required"},
		{"bad time", func(b *model.Booking) { b.PreferredTime = "10am" }, "invalid_preferred_time"},
		{"too early", func(b *model.Booking) { b.PreferredTime = "08:59" }, "outside_office_hours"},
		{"at closing", func(b *model.Booking) { b.PreferredTime = "18:00" }, "outside_office_hours"},
		{"bad meeting type", func(b *model.Booking) { b.MeetingType = "zoom" }, "invalid_meeting_type"},
		{"bad urgency", func(b *model.Booking) { b.Urgency = "yesterday" }, "invalid_urgency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestBookingService(&mockBookingRepository{
				saveFunc: func(ctx context.Context, b *model.Booking) error {
					t.Error("Save must not be called for invalid input")
					return nil
				},
			}, nil)
			b := validBooking()
			tt.mutate(b)

			ve, ok := AsValidation(svc.Submit(context.Background(), b))
			if !ok {
				t.Fatal("expected ValidationError")
			}
			if ve.Code != tt.code {
				t.Errorf("expected %q, got %q", tt.code, ve.Code)
			}
		})
	}
}

func TestBookingService_Submit_OpeningTimeAccepted(t *testing.T) {
	svc := newTestBookingService(&mockBookingRepository{}, nil)
	for _, clock := range []string{"09:00", "17:59"} {
		b := validBooking()
		b.PreferredTime = clock
		if err := svc.Submit(context.Background(), b); err != nil {
			t.Errorf("%s should be inside office hours, got %v", clock, err)
		}
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		from, to string
		wantErr  error
		wantSave bool
	}{
		{model.BookingStatusPending, model.BookingStatusConfirmed, nil, true},
		{model.BookingStatusConfirmed, model.BookingStatusCompleted, nil, true},
		{model.BookingStatusPending, model.BookingStatusCancelled, nil, true},
		{model.BookingStatusConfirmed, model.BookingStatusConfirmed, nil, false},
		{model.BookingStatusCompleted, model.BookingStatusPending, ErrInvalidTransition, false},
		{model.BookingStatusCancelled, model.BookingStatusConfirmed, ErrInvalidTransition, false},
		{model.BookingStatusPending, "rejected", ErrInvalidStatus, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			saved := false
			svc := newTestBookingService(&mockBookingRepository{
				getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
					return &model.Booking{ID: id, Status: tt.from}, nil
				},
				updateStatusFunc: func(ctx context.Context, id, status string) error {
					saved = true
					return nil
				},
			}, nil)

			b, err := svc.UpdateStatus(context.Background(), "b1", tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if saved != tt.wantSave {
				t.Errorf("expected save=%v, got %v", tt.wantSave, saved)
			}
			if err == nil && b.Status != tt.to {
				t.Errorf("expected status %q, got %q", tt.to, b.Status)
			}
		})
	}
}

func TestBookingService_UpdateStatus_NotFound(t *testing.T) {
	svc := newTestBookingService(&mockBookingRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, repository.ErrNotFound
		},
	}, nil)
	if _, err := svc.UpdateStatus(context.Background(), "missing", model.BookingStatusConfirmed); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingService_Reschedule(t *testing.T) {
	var gotDate, gotTime, gotMeeting string
	svc := newTestBookingService(&mockBookingRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := validBooking()
			b.ID, b.Status, b.MeetingType = id, model.BookingStatusConfirmed, "video"
			return b, nil
		},
		rescheduleFunc: func(ctx context.Context, id, date, timeOfDay, meetingType string) error {
			gotDate, gotTime, gotMeeting = date, timeOfDay, meetingType
			return nil
		},
	}, nil)

	newTime := "15:00"
	b, err := svc.Reschedule(context.Background(), "b1", model.BookingReschedule{PreferredTime: &newTime})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDate != "2026-10-20" || gotTime != "15:00" || gotMeeting != "video" {
		t.Errorf("unexpected reschedule (%s, %s, %s)", gotDate, gotTime, gotMeeting)
	}
	if b.PreferredTime != "15:00" {
		t.Errorf("expected returned booking to carry new time, got %q", b.PreferredTime)
	}

	bad := "07:00"
	if _, err := svc.Reschedule(context.Background(), "b1", model.BookingReschedule{PreferredTime: &bad}); err == nil {
		t.Error("expected office-hours validation on reschedule")
	}
}

func TestBookingService_Reschedule_FinalRejected(t *testing.T) {
	svc := newTestBookingService(&mockBookingRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.BookingStatusCancelled}, nil
		},
	}, nil)
	if _, err := svc.Reschedule(context.Background(), "b1", model.BookingReschedule{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestBookingService_List_RejectsBadRange(t *testing.T) {
	svc := newTestBookingService(&mockBookingRepository{}, nil)
	if _, err := svc.List(context.Background(), model.BookingListOptions{From: "last week"}); err == nil {
		t.Error("expected validation error for bad from date")
	}
}

func TestBookingService_Agenda(t *testing.T) {
	var gotDate string
	svc := newTestBookingService(&mockBookingRepository{
		listForDateFunc: func(ctx context.Context, date string) ([]*model.Booking, error) {
			gotDate = date
			return []*model.Booking{{ID: "b1"}}, nil
		},
	}, nil)

	got, err := svc.Agenda(context.Background(), "2026-10-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDate != "2026-10-14" || len(got) != 1 {
		t.Errorf("unexpected agenda %v for %q", got, gotDate)
	}
}
