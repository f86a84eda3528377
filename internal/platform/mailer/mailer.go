// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer provides the fire-and-forget outbound email dispatch layer.

The service layer constructs a value-typed [Job] and hands it to an
[Enqueuer]; a separate worker (the AMQP consumer, or the in-process channel
worker in development) performs the actual delivery. The triggering request
never blocks on delivery and never observes a delivery failure.

Implementations:

  - AMQPEnqueuer: Publishes jobs to a durable RabbitMQ queue.
  - ChannelEnqueuer: Buffers jobs on an in-process channel for dev/tests.

Delivery itself (SES, SMTP) lives outside this core.
*/
package mailer

import "context"

// Job is the full description of one outbound email.
//
// The core only assembles this payload; template rendering beyond simple
// link interpolation and the actual transport are external collaborators.
type Job struct {
	Subject    string   `json:"subject"`
	HTMLBody   string   `json:"html_body"`
	From       string   `json:"from"`
	Recipients []string `json:"recipients"`
}

// Enqueuer dispatches a [Job] for asynchronous delivery.
//
// # Contract
//
// Enqueue returns quickly. Callers on the request path log a returned
// error and move on: email is strictly best-effort, so a broker outage
// must never fail a registration or password-reset request.
type Enqueuer interface {
	Enqueue(ctx context.Context, job Job) error
}
