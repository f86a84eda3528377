// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mailer

import (
	"context"
	"log/slog"

	"github.com/taibuivan/sixcent/internal/platform/constants"
)

// DeliverFunc performs the actual delivery of a single mail job.
type DeliverFunc func(ctx context.Context, job Job) error

// ChannelEnqueuer runs the queue and the worker inside one process.
//
// # Usage
//
// Used in development and tests, where no broker is configured. A single
// background goroutine drains the channel; delivery failures are logged
// and dropped, matching the fire-and-forget contract of the AMQP path.
type ChannelEnqueuer struct {
	jobs    chan Job
	logger  *slog.Logger
	deliver DeliverFunc
}

// NewChannelEnqueuer starts the in-process worker goroutine.
//
// # Parameters
//   - ctx: Cancelling this context stops the worker.
//   - deliver: The delivery callback. Nil means log-only (dev mode).
//   - logger: Structured logger for worker events.
func NewChannelEnqueuer(ctx context.Context, deliver DeliverFunc, logger *slog.Logger) *ChannelEnqueuer {
	enqueuer := &ChannelEnqueuer{
		jobs:    make(chan Job, constants.MailChannelBuffer),
		logger:  logger,
		deliver: deliver,
	}

	go enqueuer.run(ctx)
	return enqueuer
}

// Enqueue places a job on the channel without blocking the request path.
// A full buffer drops the job: email is best-effort by contract.
func (enqueuer *ChannelEnqueuer) Enqueue(ctx context.Context, job Job) error {
	select {
	case enqueuer.jobs <- job:
		return nil
	default:
		enqueuer.logger.Warn("mail_channel_full_job_dropped",
			slog.String("subject", job.Subject),
		)
		return nil
	}
}

// run drains the job channel until the context is cancelled.
func (enqueuer *ChannelEnqueuer) run(ctx context.Context) {
	for {
		select {
		case job := <-enqueuer.jobs:
			if enqueuer.deliver == nil {
				enqueuer.logger.Info("mail_job_logged",
					slog.String("subject", job.Subject),
					slog.Any("recipients", job.Recipients),
				)
				continue
			}
			if err := enqueuer.deliver(ctx, job); err != nil {
				// Failures are logged, never retried, never surfaced.
				enqueuer.logger.Error("mail_delivery_failed",
					slog.String("subject", job.Subject),
					slog.Any("error", err),
				)
			}
		case <-ctx.Done():
			return
		}
	}
}
