package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/synergysphere/synergysphere/internal/metrics"
	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/realtime"
	"github.com/synergysphere/synergysphere/internal/rules"
	"github.com/synergysphere/synergysphere/internal/types"
)

const maxConcurrentWrites = 8

// Publisher pushes an event to a user's live connections.
type Publisher interface {
	Publish(userID uint, event realtime.Event)
}

// Batch is the set of notifications produced by one successful action.
// Summary is the project-channel wording used for webhooks.
type Batch struct {
	Project  models.Project
	Summary  string
	Commands []rules.NotificationCommand
}

// Dispatcher writes notification batches. Every command is attempted and a
// failed write never fails the action that produced it.
type Dispatcher struct {
	store    NotificationStore
	hub      Publisher
	webhooks *WebhookNotifier
	metrics  *metrics.Metrics
	log      zerolog.Logger

	wg sync.WaitGroup
}

// NewDispatcher wires the dispatcher. hub, webhooks and m may be nil.
func NewDispatcher(store NotificationStore, hub Publisher, webhooks *WebhookNotifier, m *metrics.Metrics, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		hub:      hub,
		webhooks: webhooks,
		metrics:  m,
		log:      log,
	}
}

// Dispatch writes the batch concurrently and waits for every write. It
// returns the notifications that were stored.
func (d *Dispatcher) Dispatch(ctx context.Context, batch Batch) []models.Notification {
	if len(batch.Commands) == 0 {
		return nil
	}

	written := make([]*models.Notification, len(batch.Commands))

	// The primary write has already committed; a client going away must
	// not drop its notifications.
	writeCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(maxConcurrentWrites)

	for i, cmd := range batch.Commands {
		g.Go(func() error {
			n := cmd.Notification()
			if err := d.store.CreateNotification(writeCtx, &n); err != nil {
				d.log.Error().
					Err(err).
					Uint("recipient_id", cmd.RecipientID).
					Str("type", cmd.Type).
					Msg("failed to create notification")
				if d.metrics != nil {
					d.metrics.NotificationsFailed.WithLabelValues(cmd.Type).Inc()
				}
				return fmt.Errorf("notify user %d: %w", cmd.RecipientID, err)
			}
			if d.metrics != nil {
				d.metrics.NotificationsCreated.WithLabelValues(cmd.Type).Inc()
			}
			written[i] = &n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		d.log.Warn().
			Err(err).
			Uint("project_id", batch.Project.ID).
			Int("attempted", len(batch.Commands)).
			Msg("notification batch partially failed")
	}

	delivered := make([]models.Notification, 0, len(written))
	for _, n := range written {
		if n == nil {
			continue
		}
		delivered = append(delivered, *n)
		if d.hub != nil {
			d.hub.Publish(n.UserID, realtime.Event{Type: realtime.EventNotification, Payload: types.NewNotificationResponse(*n)})
		}
	}

	if len(delivered) > 0 && d.webhooks != nil && HasWebhook(batch.Project) {
		d.announce(writeCtx, batch, len(delivered))
	}

	return delivered
}

func (d *Dispatcher) announce(ctx context.Context, batch Batch, recipients int) {
	activity := Activity{
		Kind:       batch.Commands[0].Type,
		Summary:    batch.Summary,
		Recipients: recipients,
		At:         time.Now().UTC(),
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.webhooks.Send(ctx, batch.Project, activity); err != nil {
			d.log.Warn().Err(err).Uint("project_id", batch.Project.ID).Msg("project webhook failed")
		}
	}()
}

// Wait blocks until in-flight webhook deliveries finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
