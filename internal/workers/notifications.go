package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

// NotificationDispatcher delivers notifications through a fixed pool of
// goroutines fed by a bounded queue. Enqueue never blocks: when the queue is
// full, or the dispatcher is stopped, the notification is dropped and logged.
type NotificationDispatcher struct {
	notifier adapter.Notifier
	workers  int

	mu      sync.RWMutex
	queue   chan models.Notification
	stopped bool
	wg      sync.WaitGroup

	logger *logger.Logger
}

// NewNotificationDispatcher builds a dispatcher sized by cfg. Call Run to start it.
func NewNotificationDispatcher(notifier adapter.Notifier, cfg config.Workers, logger *logger.Logger) *NotificationDispatcher {
	workers := cfg.NotificationWorkers
	if workers <= 0 {
		workers = 1
	}

	return &NotificationDispatcher{
		notifier: notifier,
		workers:  workers,
		queue:    make(chan models.Notification, cfg.NotificationQueueSize),
		logger:   logger,
	}
}

// Run starts the delivery goroutines.
func (d *NotificationDispatcher) Run() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.loop(i)
	}
	d.logger.Info().Str("func", "*NotificationDispatcher.Run").Int("workers", d.workers).Msg("notification dispatcher started")
}

func (d *NotificationDispatcher) loop(id int) {
	defer d.wg.Done()

	log := d.logger.With().Int("worker", id).Logger()
	ctx := log.WithContext(context.Background())

	for notification := range d.queue {
		if err := d.notifier.Notify(ctx, notification); err != nil {
			log.Err(err).
				Str("func", "*NotificationDispatcher.loop").
				Str("kind", string(notification.Kind)).
				Msg("failed to deliver notification")
		}
	}
}

// Enqueue schedules notification for delivery and reports whether it was accepted.
func (d *NotificationDispatcher) Enqueue(ctx context.Context, notification models.Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	log := logger.FromContext(ctx)
	if d.stopped {
		log.Warn().Str("func", "*NotificationDispatcher.Enqueue").Str("kind", string(notification.Kind)).Msg("dispatcher stopped, notification dropped")
		return false
	}

	select {
	case d.queue <- notification:
		return true
	default:
		log.Warn().Str("func", "*NotificationDispatcher.Enqueue").Str("kind", string(notification.Kind)).Msg("notification queue is full, notification dropped")
		return false
	}
}

// Stop refuses new notifications and waits for queued ones to be delivered
// or for ctx to end.
func (d *NotificationDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info().Str("func", "*NotificationDispatcher.Stop").Msg("notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
