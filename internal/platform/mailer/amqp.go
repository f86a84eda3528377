// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/taibuivan/sixcent/internal/platform/constants"
)

// AMQPEnqueuer publishes mail jobs to a durable RabbitMQ queue.
//
// # Connection Handling
//
// A single connection and channel are held for the process lifetime and
// re-dialed lazily after a broker failure. Messages are published as
// persistent so they survive broker restarts; the delivery worker on the
// other side of the queue owns retries and failure logging.
type AMQPEnqueuer struct {
	url    string
	logger *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewAMQPEnqueuer dials the broker and declares the outbound mail queue.
func NewAMQPEnqueuer(url string, logger *slog.Logger) (*AMQPEnqueuer, error) {
	enqueuer := &AMQPEnqueuer{url: url, logger: logger}

	if err := enqueuer.connect(); err != nil {
		return nil, err
	}

	logger.Info("mail queue connected", slog.String("queue", constants.MailQueueName))
	return enqueuer, nil
}

// dialTimeout bounds the TCP dial and AMQP handshake. The reconnect
// attempt in Enqueue runs on the request path, so a broker outage must
// not stall callers for the platform's default dial timeout.
const dialTimeout = 5 * time.Second

// connect establishes the connection/channel pair and declares the queue.
// Callers must hold no lock; connect takes it.
func (enqueuer *AMQPEnqueuer) connect() error {
	enqueuer.mu.Lock()
	defer enqueuer.mu.Unlock()

	conn, err := amqp.DialConfig(enqueuer.url, amqp.Config{
		Dial: amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		return fmt.Errorf("mailer: amqp dial failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("mailer: amqp channel open failed: %w", err)
	}

	// Idempotent declare. Durable so queued mail survives broker restarts.
	if _, err := channel.QueueDeclare(
		constants.MailQueueName, // name
		true,                    // durable
		false,                   // autoDelete
		false,                   // exclusive
		false,                   // noWait
		nil,                     // args
	); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return fmt.Errorf("mailer: queue declare failed: %w", err)
	}

	enqueuer.conn = conn
	enqueuer.channel = channel
	return nil
}

/*
Enqueue publishes a mail job to the durable queue.

Description: Serializes the job as JSON and publishes it persistently. On a
stale connection the publish is retried once after a reconnect.

Parameters:
  - ctx: context.Context
  - job: Job

Returns:
  - error: Broker connectivity or publish failures (callers log and continue)
*/
func (enqueuer *AMQPEnqueuer) Enqueue(ctx context.Context, job Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("mailer: marshal job failed: %w", err)
	}

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := enqueuer.publish(ctx, publishing); err == nil {
		return nil
	}

	// One reconnect attempt. The broker may have dropped the channel.
	if err := enqueuer.connect(); err != nil {
		return err
	}

	if err := enqueuer.publish(ctx, publishing); err != nil {
		return fmt.Errorf("mailer: publish failed: %w", err)
	}
	return nil
}

// publish sends a prepared message through the current channel.
func (enqueuer *AMQPEnqueuer) publish(ctx context.Context, publishing amqp.Publishing) error {
	enqueuer.mu.Lock()
	defer enqueuer.mu.Unlock()

	if enqueuer.channel == nil {
		return fmt.Errorf("mailer: channel not connected")
	}

	return enqueuer.channel.PublishWithContext(ctx,
		"",                      // default exchange
		constants.MailQueueName, // routing key = queue name
		false,                   // mandatory
		false,                   // immediate
		publishing,
	)
}

// Close releases the channel and connection.
func (enqueuer *AMQPEnqueuer) Close() error {
	enqueuer.mu.Lock()
	defer enqueuer.mu.Unlock()

	if enqueuer.channel != nil {
		_ = enqueuer.channel.Close()
	}
	if enqueuer.conn != nil {
		return enqueuer.conn.Close()
	}
	return nil
}
