// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mailer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcent/internal/platform/mailer"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestChannelEnqueuer_Delivers hands an enqueued job to the delivery
callback on the worker goroutine.
*/
func TestChannelEnqueuer_Delivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	delivered := make(chan mailer.Job, 1)
	enqueuer := mailer.NewChannelEnqueuer(ctx, func(ctx context.Context, job mailer.Job) error {
		delivered <- job
		return nil
	}, discardLogger())

	job := mailer.Job{
		Subject:    "[Sixcent English App] Register Confirmation",
		HTMLBody:   "<p>hello</p>",
		From:       "no-reply@sixcent.app",
		Recipients: []string{"tai@example.com"},
	}
	require.NoError(t, enqueuer.Enqueue(ctx, job))

	select {
	case got := <-delivered:
		assert.Equal(t, job, got)
	case <-time.After(2 * time.Second):
		t.Fatal("job was never delivered")
	}
}

/*
TestChannelEnqueuer_DeliveryFailureIsSwallowed keeps Enqueue succeeding
and the worker alive when the callback fails.
*/
func TestChannelEnqueuer_DeliveryFailureIsSwallowed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	attempts := make(chan string, 2)
	enqueuer := mailer.NewChannelEnqueuer(ctx, func(ctx context.Context, job mailer.Job) error {
		attempts <- job.Subject
		if job.Subject == "broken" {
			return errors.New("smtp unreachable")
		}
		return nil
	}, discardLogger())

	require.NoError(t, enqueuer.Enqueue(ctx, mailer.Job{Subject: "broken"}))
	require.NoError(t, enqueuer.Enqueue(ctx, mailer.Job{Subject: "fine"}))

	for _, expected := range []string{"broken", "fine"} {
		select {
		case subject := <-attempts:
			assert.Equal(t, expected, subject)
		case <-time.After(2 * time.Second):
			t.Fatalf("worker stalled waiting for %q", expected)
		}
	}
}

/*
TestChannelEnqueuer_NilDeliverIsLogOnly accepts jobs in dev mode where no
delivery callback is wired.
*/
func TestChannelEnqueuer_NilDeliverIsLogOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enqueuer := mailer.NewChannelEnqueuer(ctx, nil, discardLogger())
	require.NoError(t, enqueuer.Enqueue(ctx, mailer.Job{Subject: "logged only"}))
}
