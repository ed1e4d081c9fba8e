// Package scheduler runs the server's periodic jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/notify"
	"github.com/ledgerline/backend/internal/service"
	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single run.
const jobTimeout = 2 * time.Minute

// Agenda lists the open bookings for a YYYY-MM-DD date.
type Agenda interface {
	Agenda(ctx context.Context, date string) ([]*model.Booking, error)
}

// DigestJob e-mails the day's pending and confirmed consultations.
type DigestJob struct {
	bookings Agenda
	notifier notify.Notifier
	settings service.SettingsReader
	now      func() time.Time
}

// NewDigestJob creates a DigestJob.
func NewDigestJob(bookings Agenda, notifier notify.Notifier, settings service.SettingsReader) *DigestJob {
	return &DigestJob{bookings: bookings, notifier: notifier, settings: settings, now: time.Now}
}

// Run sends the digest for today's office date unless the daily digest is
// switched off in settings. It reports whether a digest was sent.
func (j *DigestJob) Run(ctx context.Context) (bool, error) {
	s, err := j.settings.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("load settings: %w", err)
	}
	if !s.DailyDigest {
		return false, nil
	}

	date := j.now().In(service.OfficeZone).Format("2006-01-02")
	bookings, err := j.bookings.Agenda(ctx, date)
	if err != nil {
		return false, fmt.Errorf("list bookings for %s: %w", date, err)
	}
	if err := j.notifier.DailyDigest(ctx, s.NotificationEmail, date, bookings); err != nil {
		return false, err
	}
	return true, nil
}

// Scheduler wraps a cron runner in office time.
type Scheduler struct {
	cron *cron.Cron
}

// New registers job on a standard 5-field cron expression.
func New(expr string, job *DigestJob) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(service.OfficeZone))
	_, err := c.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		sent, err := job.Run(ctx)
		if err != nil {
			slog.Error("daily digest failed", "error", err)
			return
		}
		slog.Info("daily digest run", "sent", sent)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule digest %q: %w", expr, err)
	}
	return &Scheduler{cron: c}, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job, up to ctx's deadline.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("scheduler stop timed out")
	}
}

// Entries is the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
