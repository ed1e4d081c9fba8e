package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ledgerline/backend/internal/model"
)

func validContact() *model.ContactMessage {
	return &model.ContactMessage{
		Name:    "Alice",
		Email:   "test@example.com",
		Message: "Hello",
	}
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestContactService_Submit_SetsNewStatusAndDefaults(t *testing.T) {
	var saved *model.ContactMessage
	mock := &mockContactRepository{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			saved = msg
			return nil
		},
	}
	svc := NewContactService(mock, nil, nil)

	msg := validContact()
	msg.Name = "  Alice  "
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved == nil {
		t.Fatal("expected Save to be called")
	}
	if saved.Status != model.ContactStatusNew {
		t.Errorf("expected status=new, got %q", saved.Status)
	}
	if saved.Name != "Alice" {
		t.Errorf("expected trimmed name, got %q", saved.Name)
	}
	if saved.PreferredContact != "email" {
		t.Errorf("expected preferred_contact default email, got %q", saved.PreferredContact)
	}
	if saved.Urgency != "normal" {
		t.Errorf("expected urgency default normal, got %q", saved.Urgency)
	}
}

// TestContactService_Submit_SetsTimestamps verifies the service sets CreatedAt/UpdatedAt.
func TestContactService_Submit_SetsTimestamps(t *testing.T) {
	before := time.Now()
	var saved *model.ContactMessage
	mock := &mockContactRepository{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			saved = msg
			return nil
		},
	}
	svc := NewContactService(mock, nil, nil)

	if err := svc.Submit(context.Background(), validContact()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := time.Now()
	if saved.CreatedAt.Before(before) || saved.CreatedAt.After(after) {
		t.Errorf("CreatedAt %v not in expected range [%v, %v]", saved.CreatedAt, before, after)
	}
	if saved.UpdatedAt.Before(before) || saved.UpdatedAt.After(after) {
		t.Errorf("UpdatedAt %v not in expected range", saved.UpdatedAt)
	}
}

func TestContactService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *model.ContactMessage)
		code   string
	}{
		{"missing name", func(m *model.ContactMessage) { m.Name = " " }, "name_required"},
		{"missing email", func(m *model.ContactMessage) { m.Email = "" }, "email_required"},
		{"bad email", func(m *model.ContactMessage) { m.Email = "not-an-email" }, "invalid_email"},
		{"display-name email", func(m *model.ContactMessage) { m.Email = "Bob <bob@example.com>" }, "invalid_email"},
		{"missing message", func(m *model.ContactMessage) { m.Message = "" }, "message_required"},
		{"message too long", func(m *model.ContactMessage) { m.Message = strings.Repeat("あ", 5001) }, "message_too_long"},
		{"bad preferred contact", func(m *model.ContactMessage) { m.PreferredContact = "fax" }, "invalid_preferred_contact"},
		{"bad urgency", func(m *model.ContactMessage) { m.Urgency = "asap" }, "invalid_urgency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &mockContactRepository{
				saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
					called = true
					return nil
				},
			}
			svc := NewContactService(mock, nil, nil)

			msg := validContact()
			tt.mutate(msg)
			err := svc.Submit(context.Background(), msg)

			ve, ok := AsValidation(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Code != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, ve.Code)
			}
			if called {
				t.Error("Save must not be called for invalid input")
			}
		})
	}
}

func TestContactService_Submit_MessageAtLimit(t *testing.T) {
	svc := NewContactService(&mockContactRepository{}, nil, nil)
	msg := validContact()
	msg.Message = strings.Repeat("a", 5000)
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Errorf("5000 characters should be accepted, got %v", err)
	}
}

// TestContactService_Submit_RepositoryError propagates repository errors.
func TestContactService_Submit_RepositoryError(t *testing.T) {
	notifier := &recordingNotifier{}
	mock := &mockContactRepository{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			return errors.New("db write failed")
		},
	}
	svc := NewContactService(mock, notifier, nil)

	if err := svc.Submit(context.Background(), validContact()); err == nil {
		t.Error("expected error from repository, got nil")
	}
	if len(notifier.contacts) != 0 {
		t.Error("no notification should be sent when saving fails")
	}
}

func TestContactService_Submit_Notifies(t *testing.T) {
	settings := model.DefaultSettings()
	settings.NotificationEmail = "partners@ledgerline.ae"
	notifier := &recordingNotifier{}
	svc := NewContactService(&mockContactRepository{}, notifier, stubSettings{settings: settings})

	if err := svc.Submit(context.Background(), validContact()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.contacts) != 1 || notifier.contacts[0] != "partners@ledgerline.ae" {
		t.Errorf("expected one notification to settings recipient, got %v", notifier.contacts)
	}
}

func TestContactService_Submit_NotificationDisabled(t *testing.T) {
	settings := model.DefaultSettings()
	settings.NotifyOnContact = false
	notifier := &recordingNotifier{}
	svc := NewContactService(&mockContactRepository{}, notifier, stubSettings{settings: settings})

	if err := svc.Submit(context.Background(), validContact()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.contacts) != 0 {
		t.Errorf("expected no notification, got %v", notifier.contacts)
	}
}

func TestContactService_Submit_NotificationFailureIgnored(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewContactService(&mockContactRepository{}, notifier, stubSettings{err: errors.New("db down")})

	if err := svc.Submit(context.Background(), validContact()); err != nil {
		t.Errorf("notification failures must not fail the submission, got %v", err)
	}
	if len(notifier.contacts) != 1 || notifier.contacts[0] != "" {
		t.Errorf("expected fallback to default recipient, got %v", notifier.contacts)
	}
}

// ---------------------------------------------------------------------------
// List / UpdateStatus tests
// ---------------------------------------------------------------------------

func TestContactService_List_ForwardsOptions(t *testing.T) {
	var capturedOpts model.ContactListOptions
	mock := &mockContactRepository{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
			capturedOpts = opts
			return nil, nil
		},
	}
	svc := NewContactService(mock, nil, nil)

	opts := model.ContactListOptions{Status: "new", Query: "acme", Limit: 10, Offset: 5}
	if _, err := svc.List(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedOpts != opts {
		t.Errorf("expected %+v forwarded, got %+v", opts, capturedOpts)
	}
}

// TestContactService_List_RepositoryError propagates repository errors.
func TestContactService_List_RepositoryError(t *testing.T) {
	mock := &mockContactRepository{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
			return nil, errors.New("db read failed")
		},
	}
	svc := NewContactService(mock, nil, nil)

	if _, err := svc.List(context.Background(), model.ContactListOptions{}); err == nil {
		t.Error("expected error from repository, got nil")
	}
}

func TestContactService_UpdateStatus(t *testing.T) {
	var gotID, gotStatus string
	mock := &mockContactRepository{
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			gotID, gotStatus = id, status
			return nil
		},
	}
	svc := NewContactService(mock, nil, nil)

	if err := svc.UpdateStatus(context.Background(), "c1", model.ContactStatusReplied); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "c1" || gotStatus != "replied" {
		t.Errorf("unexpected update (%q, %q)", gotID, gotStatus)
	}

	if err := svc.UpdateStatus(context.Background(), "c1", "unread"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}
