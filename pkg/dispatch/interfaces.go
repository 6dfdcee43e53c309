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

package dispatch

import (
	"context"
	"time"

	"github.com/carverauto/topic-console/pkg/models"
)

//go:generate mockgen -destination=mock_dispatch.go -package=dispatch github.com/carverauto/topic-console/pkg/dispatch Pusher,AuditSink

// Pusher sends one edit to the configuration server.
type Pusher interface {
	Push(ctx context.Context, record models.TopicRecord, edit models.Edit) error
}

// AuditSink receives every edit the server accepted.
type AuditSink interface {
	PublishTopicChange(ctx context.Context, data *models.TopicChangeEventData) error
}

// Request is one queued push. Record is the state after the edit was applied locally.
type Request struct {
	ID     uint64
	Record models.TopicRecord
	Edit   models.Edit
}

// Key returns the record the request targets.
func (r *Request) Key() models.RecordKey {
	return r.Record.Key()
}

// Result reports how a Request ended.
type Result struct {
	Request  Request
	Err      error
	Duration time.Duration
}
