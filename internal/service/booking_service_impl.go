package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/notify"
	"github.com/ledgerline/backend/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// OfficeZone is the firm's local time (Gulf Standard Time, no DST).
var OfficeZone = time.FixedZone("GST", 4*60*60)

// Office hours for consultation start times: opening inclusive, closing exclusive.
var (
	officeOpen  = 9 * time.Hour
	officeClose = 18 * time.Hour
)

var bookingStatuses = []string{
	model.BookingStatusPending,
	model.BookingStatusConfirmed,
	model.BookingStatusCompleted,
	model.BookingStatusCancelled,
}

func bookingFinal(status string) bool {
	return status == model.BookingStatusCompleted || status == model.BookingStatusCancelled
}

type bookingServiceImpl struct {
	repo     repository.BookingRepository
	notifier notify.Notifier
	settings SettingsReader
	now      func() time.Time
}

// NewBookingService creates a BookingService backed by the given repository.
// notifier and settings may be nil.
func NewBookingService(repo repository.BookingRepository, notifier notify.Notifier, settings SettingsReader) BookingService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &bookingServiceImpl{repo: repo, notifier: notifier, settings: settings, now: time.Now}
}

func (s *bookingServiceImpl) today() string {
	return s.now().In(OfficeZone).Format(dateLayout)
}

func (s *bookingServiceImpl) Submit(ctx context.Context, b *model.Booking) error {
	trimAll(&b.Name, &b.Email, &b.Phone, &b.Company, &b.ServiceType,
		&b.PreferredDate, &b.PreferredTime, &b.MeetingType, &b.Urgency)

	if err := requireName(b.Name); err != nil {
		return err
	}
	if err := requireEmail(b.Email); err != nil {
		return err
	}
	if b.ServiceType == "" {
		return invalid("service_type", "service_type_required")
	}
	if err := s.validateSlot(b.PreferredDate, b.PreferredTime); err != nil {
		return err
	}
	var ok bool
	if b.MeetingType, ok = defaulted(b.MeetingType, "video", meetingTypes); !ok {
		return invalid("meeting_type", "invalid_meeting_type")
	}
	if b.Urgency, ok = defaulted(b.Urgency, "normal", urgencies); !ok {
		return invalid("urgency", "invalid_urgency")
	}
	if len([]rune(b.Notes)) > maxMessageLength {
		return invalid("notes", "notes_too_long")
	}

	b.Status = model.BookingStatusPending
	if err := s.repo.Save(ctx, b); err != nil {
		return err
	}

	if to, ok := alertRecipient(ctx, s.settings, func(st *model.Settings) bool { return st.NotifyOnBooking }); ok {
		if err := s.notifier.BookingReceived(ctx, to, b); err != nil {
			slog.Error("booking notification failed", "booking_id", b.ID, "error", err)
		}
	}
	return nil
}

// validateSlot checks a YYYY-MM-DD date that is not in the past and an HH:MM
// start time inside office hours.
func (s *bookingServiceImpl) validateSlot(date, clock string) error {
	if date == "" {
		return invalid("preferred_date", "preferred_date_required")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return invalid("preferred_date", "invalid_preferred_date")
	}
	// ISO dates compare lexically.
	if date < s.today() {
		return invalid("preferred_date", "preferred_date_in_past")
	}

	if clock == "" {
		return invalid("preferred_time", "preferred_time_required")
	}
	t, err := time.Parse(timeLayout, clock)
	if err != nil {
		return invalid("preferred_time", "invalid_preferred_time")
	}
	offset := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
	if offset < officeOpen || offset >= officeClose {
		return invalid("preferred_time", "outside_office_hours")
	}
	return nil
}

func (s *bookingServiceImpl) List(ctx context.Context, opts model.BookingListOptions) ([]*model.Booking, error) {
	for _, d := range []string{opts.From, opts.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, invalid("date_range", "invalid_date_range")
		}
	}
	return s.repo.List(ctx, opts)
}

func (s *bookingServiceImpl) Get(ctx context.Context, id string) (*model.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookingServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	if !slices.Contains(bookingStatuses, status) {
		return nil, ErrInvalidStatus
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == status {
		return b, nil
	}
	if bookingFinal(b.Status) {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *bookingServiceImpl) Reschedule(ctx context.Context, id string, change model.BookingReschedule) (*model.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bookingFinal(b.Status) {
		return nil, ErrInvalidTransition
	}

	date, clock, meeting := b.PreferredDate, b.PreferredTime, b.MeetingType
	if change.PreferredDate != nil {
		date = *change.PreferredDate
	}
	if change.PreferredTime != nil {
		clock = *change.PreferredTime
	}
	if change.MeetingType != nil {
		meeting = *change.MeetingType
	}
	if err := s.validateSlot(date, clock); err != nil {
		return nil, err
	}
	if !slices.Contains(meetingTypes, meeting) {
		return nil, invalid("meeting_type", "invalid_meeting_type")
	}

	if err := s.repo.Reschedule(ctx, id, date, clock, meeting); err != nil {
		return nil, err
	}
	b.PreferredDate, b.PreferredTime, b.MeetingType = date, clock, meeting
	return b, nil
}

func (s *bookingServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *bookingServiceImpl) Agenda(ctx context.Context, date string) ([]*model.Booking, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, invalid("date", "invalid_date")
	}
	return s.repo.ListForDate(ctx, date)
}
