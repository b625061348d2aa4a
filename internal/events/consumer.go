package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// Handler processes one capacity-released event. A non-nil error leaves the
// message un-acked so the broker redelivers it.
type Handler func(ctx context.Context, ev CapacityReleased) error

// Consumer reads capacity-released events off the queue and hands them to a
// Handler. Modeled as a long-lived worker started from main.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	handler Handler
}

// NewConsumer connects to RabbitMQ and declares the queue it will consume.
func NewConsumer(url, queue string, handler Handler) (*Consumer, error) {
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

	return &Consumer{conn: conn, channel: ch, queue: queue, handler: handler}, nil
}

// Start consumes until ctx is cancelled or the delivery channel closes.
// It blocks; run it in its own goroutine.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume queue %q: %w", c.queue, err)
	}

	log.Printf("events: consuming %q", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel for %q closed", c.queue)
			}
			c.dispatch(ctx, d)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery) {
	var ev CapacityReleased
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		log.Printf("events: drop malformed message: %v", err)
		d.Nack(false, false)
		return
	}

	if err := c.handler(ctx, ev); err != nil {
		log.Printf("events: handle capacity released (room_type=%s): %v", ev.RoomTypeID, err)
		d.Nack(false, true)
		return
	}
	d.Ack(false)
}

// Close tears down the channel and connection.
func (c *Consumer) Close() error {
	if err := c.channel.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}
