package notify

import (
	"context"

	"magazine-crm/internal/domain"
)

// Notifier publishes an event live and records it.
type Notifier struct {
	hub      *Hub
	recorder *Recorder
}

// NewNotifier joins the live hub and the persisted feed.
func NewNotifier(hub *Hub, recorder *Recorder) *Notifier {
	return &Notifier{hub: hub, recorder: recorder}
}

// Notify pushes ev to open listeners, then appends it to the feed.
func (n *Notifier) Notify(ctx context.Context, ev domain.Event) {
	n.hub.Publish(ev)
	n.recorder.Record(ctx, ev)
}
