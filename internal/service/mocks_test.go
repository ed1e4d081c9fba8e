package service

import (
	"context"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/notify"
)

// ---------------------------------------------------------------------------
// mockContactRepository
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	saveFunc         func(ctx context.Context, msg *model.ContactMessage) error
	listFunc         func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.ContactMessage, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, msg)
	}
	return nil
}

func (m *mockContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockContactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockBookingRepository
// ---------------------------------------------------------------------------

type mockBookingRepository struct {
	saveFunc         func(ctx context.Context, b *model.Booking) error
	listFunc         func(ctx context.Context, opts model.BookingListOptions) ([]*model.Booking, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Booking, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
	rescheduleFunc   func(ctx context.Context, id, date, timeOfDay, meetingType string) error
	deleteFunc       func(ctx context.Context, id string) error
	listForDateFunc  func(ctx context.Context, date string) ([]*model.Booking, error)
}

func (m *mockBookingRepository) Save(ctx context.Context, b *model.Booking) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, b)
	}
	return nil
}

func (m *mockBookingRepository) List(ctx context.Context, opts model.BookingListOptions) ([]*model.Booking, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepository) Reschedule(ctx context.Context, id, date, timeOfDay, meetingType string) error {
	if m.rescheduleFunc != nil {
		return m.rescheduleFunc(ctx, id, date, timeOfDay, meetingType)
	}
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) ListForDate(ctx context.Context, date string) ([]*model.Booking, error) {
	if m.listForDateFunc != nil {
		return m.listForDateFunc(ctx, date)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// mockClientRepository
// ---------------------------------------------------------------------------

type mockClientRepository struct {
	createFunc             func(ctx context.Context, c *model.Client) error
	listFunc               func(ctx context.Context, opts model.ClientListOptions) ([]*model.Client, error)
	getByIDFunc            func(ctx context.Context, id string) (*model.Client, error)
	getBySourceContactFunc func(ctx context.Context, contactID string) (*model.Client, error)
	updateFunc             func(ctx context.Context, c *model.Client) error
	deleteFunc             func(ctx context.Context, id string) error
}

func (m *mockClientRepository) Create(ctx context.Context, c *model.Client) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	return nil
}

func (m *mockClientRepository) List(ctx context.Context, opts model.ClientListOptions) ([]*model.Client, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockClientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockClientRepository) GetBySourceContact(ctx context.Context, contactID string) (*model.Client, error) {
	if m.getBySourceContactFunc != nil {
		return m.getBySourceContactFunc(ctx, contactID)
	}
	return nil, nil
}

func (m *mockClientRepository) Update(ctx context.Context, c *model.Client) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, c)
	}
	return nil
}

func (m *mockClientRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockBlogRepository
// ---------------------------------------------------------------------------

type mockBlogRepository struct {
	createFunc     func(ctx context.Context, p *model.BlogPost) error
	listFunc       func(ctx context.Context, opts model.BlogListOptions) ([]*model.BlogPost, error)
	getByIDFunc    func(ctx context.Context, id string) (*model.BlogPost, error)
	getBySlugFunc  func(ctx context.Context, slug string) (*model.BlogPost, error)
	updateFunc     func(ctx context.Context, p *model.BlogPost) error
	deleteFunc     func(ctx context.Context, id string) error
	slugExistsFunc func(ctx context.Context, slug, excludeID string) (bool, error)
}

func (m *mockBlogRepository) Create(ctx context.Context, p *model.BlogPost) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}

func (m *mockBlogRepository) List(ctx context.Context, opts model.BlogListOptions) ([]*model.BlogPost, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockBlogRepository) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBlogRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockBlogRepository) Update(ctx context.Context, p *model.BlogPost) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, p)
	}
	return nil
}

func (m *mockBlogRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBlogRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	if m.slugExistsFunc != nil {
		return m.slugExistsFunc(ctx, slug, excludeID)
	}
	return false, nil
}

// ---------------------------------------------------------------------------
// mockSettingsRepository / mockStatsRepository
// ---------------------------------------------------------------------------

type mockSettingsRepository struct {
	getFunc  func(ctx context.Context) (*model.Settings, error)
	saveFunc func(ctx context.Context, s *model.Settings) error
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return nil, nil
}

func (m *mockSettingsRepository) Save(ctx context.Context, s *model.Settings) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, s)
	}
	return nil
}

type mockStatsRepository struct {
	collectFunc func(ctx context.Context, months int) (*model.RawStats, error)
}

func (m *mockStatsRepository) Collect(ctx context.Context, months int) (*model.RawStats, error) {
	if m.collectFunc != nil {
		return m.collectFunc(ctx, months)
	}
	return &model.RawStats{}, nil
}

// ---------------------------------------------------------------------------
// stubSettings / recordingNotifier
// ---------------------------------------------------------------------------

type stubSettings struct {
	settings *model.Settings
	err      error
}

func (s stubSettings) Get(context.Context) (*model.Settings, error) {
	return s.settings, s.err
}

type recordingNotifier struct {
	notify.Nop
	contacts []string // recipients
	bookings []string
	err      error
}

func (r *recordingNotifier) ContactReceived(ctx context.Context, to string, msg *model.ContactMessage) error {
	r.contacts = append(r.contacts, to)
	return r.err
}

func (r *recordingNotifier) BookingReceived(ctx context.Context, to string, b *model.Booking) error {
	r.bookings = append(r.bookings, to)
	return r.err
}
