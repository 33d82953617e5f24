package notify

import (
	"context"
	"time"

	"magazine-crm/internal/domain"
	notificationrepo "magazine-crm/internal/repository/notification"

	"github.com/rs/zerolog"
)

// Recorder appends events to the notifications document.
type Recorder struct {
	repo   notificationrepo.Repository
	logger zerolog.Logger
	now    func() time.Time
}

// NewRecorder returns a Recorder writing through repo.
func NewRecorder(repo notificationrepo.Repository, logger zerolog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger, now: time.Now}
}

// Record appends {message, timestamp}. An unreadable document is treated as
// empty. Failures are logged and never returned to the caller.
func (r *Recorder) Record(ctx context.Context, ev domain.Event) {
	ctx = context.WithoutCancel(ctx)

	existing, err := r.repo.List(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("read notifications, starting empty")
		existing = nil
	}
	existing = append(existing, domain.Notification{
		Message:   ev,
		Timestamp: r.now().UTC().Format(domain.TimestampLayout),
	})
	if err := r.repo.ReplaceAll(ctx, existing); err != nil {
		r.logger.Error().Err(err).Str("event", string(ev.Type)).Msg("write notification")
	}
}

// List returns the persisted feed in append order.
func (r *Recorder) List(ctx context.Context) ([]domain.Notification, error) {
	return r.repo.List(ctx)
}
