// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events delivers repair request lifecycle events to a RabbitMQ
// queue. Messages are persistent JSON documents published to a durable
// queue through the default exchange.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/models"
)

var (
	ErrPublisherClosed = errors.New("event publisher is closed")
	ErrNoBrokerURL     = errors.New("broker URL is not configured")
)

// channel is the subset of *amqp.Channel used by the publisher.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes request events over one long-lived channel.
type AMQPPublisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel channel
	queue   string
	closed  bool

	logger *logger.Logger
}

// NewAMQPPublisher dials the broker and declares the durable event queue.
func NewAMQPPublisher(cfg config.Broker, logger *logger.Logger) (*AMQPPublisher, error) {
	if cfg.URL == "" {
		return nil, ErrNoBrokerURL
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err = ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %q: %w", cfg.Queue, err)
	}

	logger.Info().Str("func", "NewAMQPPublisher").Str("queue", cfg.Queue).Msg("connected to event broker")

	p := newPublisher(ch, cfg.Queue, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, queue string, logger *logger.Logger) *AMQPPublisher {
	return &AMQPPublisher{channel: ch, queue: queue, logger: logger}
}

// PublishRequestEvent sends event as a persistent JSON message.
func (p *AMQPPublisher) PublishRequestEvent(ctx context.Context, event models.RequestEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}

	if err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "AMQPPublisher.PublishRequestEvent").
		Str("event_type", string(event.Type)).
		Int64("request_id", event.RequestID).
		Msg("request event published")
	return nil
}

func newMessage(event models.RequestEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}, nil
}

// Close closes the channel and the connection. It is safe to call twice.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	err := p.channel.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishRequestEvent(context.Context, models.RequestEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
