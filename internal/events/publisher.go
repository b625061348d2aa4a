package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// Publisher emits capacity-released events. The booking service calls it
// after its transaction commits, never inside it.
type Publisher interface {
	PublishCapacityReleased(ctx context.Context, ev CapacityReleased) error
	Close() error
}

type amqpPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewPublisher connects to RabbitMQ and declares the durable event queue.
func NewPublisher(url, queue string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}

	return &amqpPublisher{conn: conn, channel: ch, queue: queue}, nil
}

func (p *amqpPublisher) PublishCapacityReleased(_ context.Context, ev CapacityReleased) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode capacity released event: %w", err)
	}

	err = p.channel.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish capacity released event: %w", err)
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NopPublisher discards events. Used when no broker is configured and in tests.
type NopPublisher struct{}

func (NopPublisher) PublishCapacityReleased(context.Context, CapacityReleased) error { return nil }
func (NopPublisher) Close() error                                                    { return nil }
