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

// Package audit publishes accepted topic edits as CloudEvents to NATS JetStream.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
)

const (
	eventSource = "topic-console"
	eventType   = "com.carverauto.topicconsole.topic.changed"
)

var errAuditDisabled = errors.New("audit publishing is disabled")

// EventPublisher provides methods for publishing CloudEvents to NATS JetStream.
type EventPublisher struct {
	js            jetstream.JetStream
	stream        string
	subjectPrefix string
	logger        logger.Logger
}

// NewEventPublisher creates a new EventPublisher for the specified stream.
func NewEventPublisher(js jetstream.JetStream, streamName, subjectPrefix string, log logger.Logger) *EventPublisher {
	return &EventPublisher{
		js:            js,
		stream:        streamName,
		subjectPrefix: subjectPrefix,
		logger:        log,
	}
}

// Subject returns the subject an edit of kind is published on.
func (p *EventPublisher) Subject(kind string) string {
	return p.subjectPrefix + "." + kind
}

// PublishTopicChange publishes one accepted edit.
func (p *EventPublisher) PublishTopicChange(ctx context.Context, data *models.TopicChangeEventData) error {
	event := models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         p.Subject(data.Kind),
		Time:            &data.Timestamp,
		Data:            data,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal topic change event: %w", err)
	}

	ack, err := p.js.Publish(ctx, event.Subject, eventBytes)
	if err != nil {
		return fmt.Errorf("failed to publish topic change event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", event.Subject).
		Uint64("seq", ack.Sequence).
		Msg("Published topic change event")

	return nil
}

// Connect dials NATS, makes sure the audit stream exists and returns a
// publisher bound to it. The caller owns the returned connection.
func Connect(ctx context.Context, cfg *models.AuditConfig, log logger.Logger, extraOpts ...nats.Option) (*EventPublisher, *nats.Conn, error) {
	if !cfg.Enabled {
		return nil, nil, errAuditDisabled
	}

	opts, err := connectOptions(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	opts = append(opts, extraOpts...)

	nc, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	// Ensure the stream exists
	if _, err = js.Stream(ctx, cfg.Stream); err != nil {
		streamConfig := jetstream.StreamConfig{
			Name:     cfg.Stream,
			Subjects: []string{cfg.SubjectPrefix + ".>"},
		}

		if _, err = js.CreateOrUpdateStream(ctx, streamConfig); err != nil {
			nc.Close()
			return nil, nil, fmt.Errorf("failed to create or get stream %s: %w", cfg.Stream, err)
		}

		log.Info().Str("stream", cfg.Stream).Msg("Created audit stream")
	}

	return NewEventPublisher(js, cfg.Stream, cfg.SubjectPrefix, log), nc, nil
}

func connectOptions(cfg *models.AuditConfig, log logger.Logger) ([]nats.Option, error) {
	opts := []nats.Option{nats.Name(eventSource)}

	if cfg.TLS != nil {
		tlsConf, err := TLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to build NATS TLS config: %w", err)
		}

		opts = append(opts, nats.Secure(tlsConf))
	}

	opts = append(opts,
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)

	return opts, nil
}
