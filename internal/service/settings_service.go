package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/repository"
)

// SettingsReader is the read side of SettingsService, used by services that
// consult the notification toggles.
type SettingsReader interface {
	Get(ctx context.Context) (*model.Settings, error)
}

// SettingsService manages the firm settings document.
type SettingsService interface {
	SettingsReader
	// Update validates and saves s.
	Update(ctx context.Context, s *model.Settings) error
}

type settingsServiceImpl struct {
	repo repository.SettingsRepository
}

// NewSettingsService creates a SettingsService backed by the given repository.
func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsServiceImpl{repo: repo}
}

// Get returns the saved settings, or the defaults when nothing was saved yet.
func (s *settingsServiceImpl) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return model.DefaultSettings(), nil
	}
	return settings, err
}

func (s *settingsServiceImpl) Update(ctx context.Context, settings *model.Settings) error {
	trimAll(&settings.FirmName, &settings.Email, &settings.Phone, &settings.WhatsApp,
		&settings.Address, &settings.BusinessHours, &settings.NotificationEmail)

	if settings.FirmName == "" {
		return invalid("firm_name", "firm_name_required")
	}
	if err := requireEmail(settings.Email); err != nil {
		return err
	}
	if settings.NotificationEmail != "" && !validEmail(settings.NotificationEmail) {
		return invalid("notification_email", "invalid_notification_email")
	}
	return s.repo.Save(ctx, settings)
}

// alertRecipient resolves whether an alert should be sent and to whom.
// A settings read failure falls back to sending to the default recipient.
func alertRecipient(ctx context.Context, settings SettingsReader, enabled func(*model.Settings) bool) (string, bool) {
	if settings == nil {
		return "", true
	}
	cur, err := settings.Get(ctx)
	if err != nil {
		slog.Warn("settings unavailable for notification", "error", err)
		return "", true
	}
	if !enabled(cur) {
		return "", false
	}
	return strings.TrimSpace(cur.NotificationEmail), true
}
