// Package messaging publishes domain events to the message broker.
package messaging

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/errors"
)

// DefaultExchange is the topic exchange domain events are published to.
const DefaultExchange = "events.domain-events"

// RabbitPublisher implements event.Publisher on top of RabbitMQ. Each
// domain event becomes one persistent JSON message on a durable topic
// exchange, routed by event name.
type RabbitPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *log.Logger
}

// NewRabbitPublisher dials the broker and declares the exchange.
func NewRabbitPublisher(url, exchange string, logger *log.Logger) (*RabbitPublisher, error) {
	const op = "messaging.NewRabbitPublisher"

	if url == "" {
		return nil, errors.Config(op, "broker url is required")
	}
	if exchange == "" {
		exchange = DefaultExchange
	}
	if logger == nil {
		logger = log.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.IOWrap(err, op, "failed to connect to broker")
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close() //nolint:errcheck // already failing
		return nil, errors.IOWrap(err, op, "failed to open channel")
	}

	if err := channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close() //nolint:errcheck // already failing
		conn.Close()    //nolint:errcheck // already failing
		return nil, errors.IOWrap(err, op, "failed to declare exchange")
	}

	logger.Debug("connected to broker", "exchange", exchange)
	return &RabbitPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Publish sends the events in order. Publishing stops at the first
// failure so downstream consumers never see a later event without the
// earlier ones.
func (p *RabbitPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	const op = "messaging.RabbitPublisher.Publish"

	for _, ev := range events {
		body, err := json.Marshal(ev)
		if err != nil {
			return errors.Wrap(err, errors.KindInternal, op, "failed to marshal event")
		}

		err = p.channel.PublishWithContext(ctx,
			p.exchange,
			ev.EventName(), // routing key
			false,          // mandatory
			false,          // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Type:         ev.EventName(),
				Timestamp:    ev.OccurredAt(),
				Body:         body,
			},
		)
		if err != nil {
			return errors.IOWrap(err, op, "failed to publish event")
		}
		p.logger.Debug("published domain event",
			"event", ev.EventName(), "aggregate_id", ev.AggregateID())
	}
	return nil
}

// Close releases the channel and connection.
func (p *RabbitPublisher) Close() error {
	const op = "messaging.RabbitPublisher.Close"

	if err := p.channel.Close(); err != nil {
		p.conn.Close() //nolint:errcheck // already failing
		return errors.IOWrap(err, op, "failed to close channel")
	}
	if err := p.conn.Close(); err != nil {
		return errors.IOWrap(err, op, "failed to close connection")
	}
	return nil
}
