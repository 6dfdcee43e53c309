/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package audit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
)

func runJetStreamServer(t *testing.T) *server.Server {
	t.Helper()

	opts := &server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	}

	srv, err := server.NewServer(opts)
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(10 * time.Second) {
		srv.Shutdown()
		t.Fatalf("embedded NATS server not ready for connections")
	}

	require.Eventually(t, func() bool {
		return srv.JetStreamEnabled()
	}, 5*time.Second, 50*time.Millisecond, "embedded NATS server not ready for JetStream")

	return srv
}

func TestPublishTopicChange(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	srv := runJetStreamServer(t)
	t.Cleanup(srv.Shutdown)

	cfg := &models.AuditConfig{
		Enabled:       true,
		NATSURL:       srv.ClientURL(),
		Stream:        "topic-audit",
		SubjectPrefix: "events.topics",
	}

	pub, nc, err := Connect(ctx, cfg, logger.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, pub.PublishTopicChange(ctx, &models.TopicChangeEventData{
		Device:     "plc-1",
		Address:    "DB1.X0",
		Kind:       models.EditCycle.String(),
		Interested: true,
		Cycle:      7,
		Operator:   "alice",
		Timestamp:  when,
	}))

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	stream, err := js.Stream(ctx, "topic-audit")
	require.NoError(t, err)

	msg, err := stream.GetLastMsgForSubject(ctx, pub.Subject(models.EditCycle.String()))
	require.NoError(t, err)

	var event struct {
		models.CloudEvent
		Data models.TopicChangeEventData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &event))

	assert.Equal(t, "1.0", event.SpecVersion)
	assert.Equal(t, eventSource, event.Source)
	assert.Equal(t, eventType, event.Type)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, models.DeviceName("plc-1"), event.Data.Device)
	assert.Equal(t, 7, event.Data.Cycle)
	assert.True(t, event.Data.Timestamp.Equal(when))
}

func TestConnectReusesExistingStream(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	srv := runJetStreamServer(t)
	t.Cleanup(srv.Shutdown)

	cfg := &models.AuditConfig{
		Enabled:       true,
		NATSURL:       srv.ClientURL(),
		Stream:        "topic-audit",
		SubjectPrefix: "events.topics",
	}

	_, first, err := Connect(ctx, cfg, logger.NewTestLogger())
	require.NoError(t, err)
	first.Close()

	_, second, err := Connect(ctx, cfg, logger.NewTestLogger())
	require.NoError(t, err)
	second.Close()
}

func TestConnectDisabled(t *testing.T) {
	_, _, err := Connect(context.Background(), &models.AuditConfig{}, logger.NewTestLogger())
	require.ErrorIs(t, err, errAuditDisabled)
}

func TestTLSConfig(t *testing.T) {
	t.Run("server name only", func(t *testing.T) {
		conf, err := TLSConfig(&models.TLSConfig{ServerName: "nats.local"})
		require.NoError(t, err)
		assert.Equal(t, "nats.local", conf.ServerName)
		assert.Nil(t, conf.RootCAs)
	})

	t.Run("half a key pair", func(t *testing.T) {
		_, err := TLSConfig(&models.TLSConfig{CertFile: "client.pem"})
		require.ErrorIs(t, err, ErrIncompleteTLS)
	})

	t.Run("garbage CA", func(t *testing.T) {
		ca := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(ca, []byte("not a certificate"), 0o600))

		_, err := TLSConfig(&models.TLSConfig{CAFile: ca})
		require.ErrorIs(t, err, ErrCAParsingFailed)
	})

	t.Run("missing CA file", func(t *testing.T) {
		_, err := TLSConfig(&models.TLSConfig{CAFile: filepath.Join(t.TempDir(), "nope.pem")})
		require.Error(t, err)
	})
}
