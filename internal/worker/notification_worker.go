package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/flicky/storefront/internal/kv"
	"github.com/flicky/storefront/internal/model"
)

const idempotencyTTL = 24 * time.Hour

// Notifier hands a notification to whoever delivers it. Services depend on
// it for outbound mail; LogNotifier and Publisher implement it.
type Notifier interface {
	Notify(ctx context.Context, msg model.Notification) error
}

// NotificationWorker consumes the Notifications queue and delivers each
// notification at most once per idempotencyTTL.
type NotificationWorker struct {
	channel  amqpConsumer
	marks    kv.Store
	deliver  Notifier
	log      *slog.Logger
	done     chan struct{}
	stopOnce sync.Once
}

func NewNotificationWorker(ch amqpConsumer, marks kv.Store, deliver Notifier, log *slog.Logger) *NotificationWorker {
	return &NotificationWorker{
		channel: ch,
		marks:   marks,
		deliver: deliver,
		log:     log,
		done:    make(chan struct{}),
	}
}

func (w *NotificationWorker) Start(ctx context.Context) error {
	if err := consume(ctx, w.channel, Notifications.Queue, w.done, w.processMessage); err != nil {
		return err
	}
	w.log.Info("notification worker started", "queue", Notifications.Queue)
	return nil
}

func (w *NotificationWorker) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

func (w *NotificationWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	var n model.Notification
	if err := json.Unmarshal(msg.Body, &n); err != nil || n.ID == "" {
		w.log.Error("unreadable notification", "error", err)
		_ = msg.Nack(false, false)
		return
	}

	log := w.log.With("notification_id", n.ID, "kind", n.Kind)

	idempotencyKey := "notification_processed:" + n.ID
	_, err := w.marks.Get(ctx, idempotencyKey)
	switch {
	case err == nil:
		log.Info("notification already delivered, skipping")
		_ = msg.Ack(false)
		return
	case !errors.Is(err, kv.ErrNotFound):
		log.Error("check idempotency key", "error", err)
		_ = msg.Nack(false, true)
		return
	}

	if err := w.deliver.Notify(ctx, n); err != nil {
		log.Error("deliver notification failed", "error", err)
		_ = msg.Nack(false, false) // to DLQ
		return
	}

	if err := w.marks.SetWithTTL(ctx, idempotencyKey, []byte("1"), idempotencyTTL); err != nil {
		log.Error("set idempotency key", "error", err)
	}

	_ = msg.Ack(false)
}
