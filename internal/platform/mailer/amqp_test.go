// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mailer_test

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcent/internal/platform/mailer"
)

/*
TestNewAMQPEnqueuer_DialIsBounded fails fast against a broker that
accepts TCP but never completes the AMQP handshake, instead of stalling
for the platform's default dial timeout. The same bounded dial backs the
lazy reconnect on the request path.
*/
func TestNewAMQPEnqueuer_DialIsBounded(t *testing.T) {
	// A listener that accepts connections and then stays silent.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	started := time.Now()
	_, err = mailer.NewAMQPEnqueuer("amqp://guest:guest@"+listener.Addr().String()+"/", discardLogger())
	elapsed := time.Since(started)

	require.Error(t, err)
	assert.Less(t, elapsed, 10*time.Second)
}
