package worker

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpDeclarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Qos(prefetchCount, prefetchSize int, global bool) error
}

type amqpConsumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Topology is a durable work queue whose rejected messages are routed
// through <queue>.dlx into <queue>.dlq.
type Topology struct {
	Queue    string
	Prefetch int
}

// Notifications carries model.Notification payloads to the NotificationWorker.
var Notifications = Topology{Queue: "notifications", Prefetch: 1}

func (t Topology) DeadLetterExchange() string { return t.Queue + ".dlx" }
func (t Topology) DeadLetterQueue() string    { return t.Queue + ".dlq" }

// Declare is idempotent; RabbitMQ accepts redeclaration with equal arguments.
func (t Topology) Declare(ch amqpDeclarer) error {
	dlx, dlq := t.DeadLetterExchange(), t.DeadLetterQueue()

	if err := ch.ExchangeDeclare(dlx, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", dlx, err)
	}
	if _, err := ch.QueueDeclare(dlq, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", dlq, err)
	}
	if err := ch.QueueBind(dlq, t.Queue, dlx, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", dlq, err)
	}
	args := amqp.Table{
		"x-dead-letter-exchange":    dlx,
		"x-dead-letter-routing-key": t.Queue,
	}
	if _, err := ch.QueueDeclare(t.Queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("declare %s: %w", t.Queue, err)
	}
	if t.Prefetch > 0 {
		if err := ch.Qos(t.Prefetch, 0, false); err != nil {
			return fmt.Errorf("set QoS: %w", err)
		}
	}
	return nil
}

// SetupRabbitMQ declares every queue this service consumes or publishes to.
func SetupRabbitMQ(ch amqpDeclarer) error {
	return Notifications.Declare(ch)
}

// consume hands each delivery on queue to handle, one at a time, until the
// channel closes, done is closed or ctx ends.
func consume(ctx context.Context, ch amqpConsumer, queue string, done <-chan struct{}, handle func(context.Context, amqp.Delivery)) error {
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				handle(ctx, msg)
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
