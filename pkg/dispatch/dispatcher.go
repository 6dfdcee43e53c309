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

// Package dispatch turns operator edits into configuration server calls.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
	"github.com/carverauto/topic-console/pkg/topicsrv"
)

// Dispatcher maps an edit to exactly one update call. It never touches the
// mirror or the delta cache.
type Dispatcher struct {
	updater  topicsrv.TopicUpdater
	audit    AuditSink
	operator string
	logger   logger.Logger
}

// NewDispatcher creates a Dispatcher. audit may be nil.
func NewDispatcher(updater topicsrv.TopicUpdater, audit AuditSink, operator string, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		updater:  updater,
		audit:    audit,
		operator: operator,
		logger:   log,
	}
}

// Push sends record's new state for the field named by edit. Proxy edits
// choose add/delete proxy from record.Proxy; interest and cycle edits choose
// add/cancel interest from record.Interested.
func (d *Dispatcher) Push(ctx context.Context, record models.TopicRecord, edit models.Edit) error {
	if err := validate(&record, edit); err != nil {
		return err
	}

	var err error

	switch edit.Kind {
	case models.EditProxy:
		if record.Proxy {
			err = d.updater.AddProxy(ctx, record.Device, record.Address)
		} else {
			err = d.updater.DeleteProxy(ctx, record.Device, record.Address)
		}
	case models.EditInterest, models.EditCycle:
		if record.Interested {
			err = d.updater.AddInterest(ctx, record.Device, record.Address, record.Cycle)
		} else {
			err = d.updater.CancelInterest(ctx, record.Device, record.Address)
		}
	}

	if err != nil {
		d.logger.Error().
			Err(err).
			Str("device", string(record.Device)).
			Str("address", record.Address).
			Str("field", edit.Kind.String()).
			Msg("Failed to push topic update")

		return err
	}

	d.logger.Info().
		Str("device", string(record.Device)).
		Str("address", record.Address).
		Str("field", edit.Kind.String()).
		Bool("interested", record.Interested).
		Bool("proxy", record.Proxy).
		Int("cycle", record.DisplayCycle()).
		Msg("Pushed topic update")

	d.publishAudit(ctx, &record, edit)

	return nil
}

func (d *Dispatcher) publishAudit(ctx context.Context, record *models.TopicRecord, edit models.Edit) {
	if d.audit == nil {
		return
	}

	data := &models.TopicChangeEventData{
		Device:     record.Device,
		Address:    record.Address,
		Kind:       edit.Kind.String(),
		Interested: record.Interested,
		Proxy:      record.Proxy,
		Operator:   d.operator,
		Timestamp:  time.Now().UTC(),
	}

	if record.Interested {
		data.Cycle = record.Cycle
	}

	if err := d.audit.PublishTopicChange(ctx, data); err != nil {
		d.logger.Warn().Err(err).Str("record", record.Key().String()).Msg("Failed to publish audit event")
	}
}

// validate rejects anything that cannot become a well-formed request.
func validate(record *models.TopicRecord, edit models.Edit) error {
	if record.Device == "" || record.Address == "" {
		return fmt.Errorf("%w: record needs device and address", models.ErrValidation)
	}

	switch edit.Kind {
	case models.EditProxy:
		return nil
	case models.EditInterest, models.EditCycle:
		if record.Interested && record.Cycle <= 0 {
			return fmt.Errorf("%w: cycle must be positive, got %d", models.ErrValidation, record.Cycle)
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown edit kind %d", models.ErrValidation, int(edit.Kind))
	}
}
