package service

import (
	"context"
	"log/slog"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/notify"
	"github.com/ledgerline/backend/internal/repository"
)

var contactStatuses = []string{
	model.ContactStatusNew,
	model.ContactStatusRead,
	model.ContactStatusReplied,
	model.ContactStatusArchived,
}

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier notify.Notifier
	settings SettingsReader
}

// NewContactService creates a ContactService backed by the given repository.
// notifier and settings may be nil.
func NewContactService(repo repository.ContactRepository, notifier notify.Notifier, settings SettingsReader) ContactService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &contactServiceImpl{repo: repo, notifier: notifier, settings: settings}
}

// Submit validates the message, stores it with status "new" and alerts staff.
// Alert failures are logged and never returned.
func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if err := validateContact(msg); err != nil {
		return err
	}

	now := time.Now().UTC()
	msg.Status = model.ContactStatusNew
	msg.CreatedAt = now
	msg.UpdatedAt = now
	if err := s.repo.Save(ctx, msg); err != nil {
		return err
	}

	if to, ok := alertRecipient(ctx, s.settings, func(st *model.Settings) bool { return st.NotifyOnContact }); ok {
		if err := s.notifier.ContactReceived(ctx, to, msg); err != nil {
			slog.Error("contact notification failed", "contact_id", msg.ID, "error", err)
		}
	}
	return nil
}

func validateContact(msg *model.ContactMessage) error {
	trimAll(&msg.Name, &msg.Email, &msg.Phone, &msg.Company, &msg.Subject,
		&msg.ServiceType, &msg.PreferredContact, &msg.Urgency)

	if err := requireName(msg.Name); err != nil {
		return err
	}
	if err := requireEmail(msg.Email); err != nil {
		return err
	}
	if msg.Message == "" {
		return invalid("message", "message_required")
	}
	if utf8.RuneCountInString(msg.Message) > maxMessageLength {
		return invalid("message", "message_too_long")
	}

	var ok bool
	if msg.PreferredContact, ok = defaulted(msg.PreferredContact, "email", preferredContact); !ok {
		return invalid("preferred_contact", "invalid_preferred_contact")
	}
	if msg.Urgency, ok = defaulted(msg.Urgency, "normal", urgencies); !ok {
		return invalid("urgency", "invalid_urgency")
	}
	return nil
}

// List returns contact messages according to the given filter/pagination options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx, opts)
}

func (s *contactServiceImpl) Get(ctx context.Context, id string) (*model.ContactMessage, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus changes the status of a contact message.
func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id string, status string) error {
	if !slices.Contains(contactStatuses, status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
