package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/flicky/storefront/internal/model"
)

// LogNotifier delivers notifications as structured log lines. It stands in
// for a mail gateway.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, msg model.Notification) error {
	attrs := []any{"id", msg.ID, "kind", msg.Kind, "email", msg.Email}
	switch msg.Kind {
	case model.NotificationVerificationCode:
		attrs = append(attrs, "code", msg.Code)
	case model.NotificationOrderPlaced:
		attrs = append(attrs, "order_id", msg.OrderID)
	}
	n.log.InfoContext(ctx, "notification delivered", attrs...)
	return nil
}

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher queues notifications on RabbitMQ for the NotificationWorker.
type Publisher struct {
	ch amqpPublisher
}

func NewPublisher(ch amqpPublisher) *Publisher {
	return &Publisher{ch: ch}
}

func (p *Publisher) Notify(ctx context.Context, msg model.Notification) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	err = p.ch.PublishWithContext(ctx, "", Notifications.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    msg.ID,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
