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

// Package reconcile keeps the operator's device selection, the editable topic
// mirror and the push bookkeeping consistent with the configuration server.
package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/carverauto/topic-console/pkg/dispatch"
	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
	"github.com/carverauto/topic-console/pkg/topicsrv"
)

// RecordState is where a record sits in its edit lifecycle.
type RecordState int

const (
	StateIdle RecordState = iota
	StatePushing
	// StateUnconfirmed marks a local edit whose push failed. It stays until
	// the next successful refetch.
	StateUnconfirmed
)

func (s RecordState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePushing:
		return "pushing"
	case StateUnconfirmed:
		return "unconfirmed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type recordStatus struct {
	state    RecordState
	inflight int
	err      error
	// failed holds the last failure per field; a later successful push of
	// the same field clears it.
	failed map[models.EditKind]error
}

func (st *recordStatus) settle() {
	st.err = nil

	for _, err := range st.failed {
		st.err = err
		break
	}

	switch {
	case st.inflight > 0:
		st.state = StatePushing
	case st.err != nil:
		st.state = StateUnconfirmed
	default:
		st.state = StateIdle
	}
}

// Status is the line shown to the operator after the last notable event.
type Status struct {
	Message string
	Err     error
	At      time.Time
}

// Row is one record with its push state, ready to render.
type Row struct {
	Record models.TopicRecord
	State  RecordState
	Err    error
}

// Engine owns all reconciliation state. It is not safe for concurrent use:
// every method must be called from the single UI update loop, and background
// work reports back through ApplyDirectory, ApplyTopics and ApplyPushResult.
type Engine struct {
	devices  []models.DeviceName
	current  Selection
	previous Selection

	mirror *Mirror
	cache  *DeltaCache
	states map[models.RecordKey]*recordStatus

	fetching bool
	force    bool
	nextID   uint64

	directoryErr error
	topicsErr    error
	status       Status

	logger logger.Logger
	now    func() time.Time
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		current:  make(Selection),
		previous: make(Selection),
		mirror:   NewMirror(),
		cache:    NewDeltaCache(),
		states:   make(map[models.RecordKey]*recordStatus),
		logger:   log,
		now:      time.Now,
	}
}

// Devices is the last good directory listing.
func (e *Engine) Devices() []models.DeviceName {
	return e.devices
}

// IsSelected reports the operator's current choice for device.
func (e *Engine) IsSelected(device models.DeviceName) bool {
	return e.current[device]
}

// Selection returns a copy of the current selection.
func (e *Engine) Selection() Selection {
	return e.current.Clone()
}

// Status returns the latest status line.
func (e *Engine) Status() Status {
	return e.status
}

// DirectoryErr is the error of the last directory refresh, nil once one succeeds.
func (e *Engine) DirectoryErr() error {
	return e.directoryErr
}

// TopicsErr is the error of the last topic fetch, nil once one succeeds.
func (e *Engine) TopicsErr() error {
	return e.topicsErr
}

// Fetching reports whether a topic fetch is in flight.
func (e *Engine) Fetching() bool {
	return e.fetching
}

func (e *Engine) setStatus(err error, format string, args ...interface{}) {
	e.status = Status{Message: fmt.Sprintf(format, args...), Err: err, At: e.now()}
}

// ApplyDirectory installs a fresh directory listing.
func (e *Engine) ApplyDirectory(names []models.DeviceName) {
	e.devices = names
	e.directoryErr = nil
	e.current.Sync(names)

	e.logger.Info().Int("devices", len(names)).Msg("Device directory refreshed")
	e.setStatus(nil, "%d devices available", len(names))
}

// ApplyDirectoryError records a failed refresh. The previous listing stays.
func (e *Engine) ApplyDirectoryError(err error) {
	e.directoryErr = err

	e.logger.Error().Err(err).Msg("Device directory refresh failed")
	e.setStatus(err, "directory refresh failed, showing last known devices")
}

// SetSelected sets the operator's choice for device.
func (e *Engine) SetSelected(device models.DeviceName, selected bool) error {
	if _, ok := e.current[device]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDevice, device)
	}

	e.current[device] = selected

	return nil
}

// Toggle flips the operator's choice for device.
func (e *Engine) Toggle(device models.DeviceName) error {
	return e.SetSelected(device, !e.current[device])
}

// ForceRefetch asks for a topic reload on the next tick even if the
// selection did not change.
func (e *Engine) ForceRefetch() {
	e.force = true
}

// PendingRefetch reports whether the next tick should fetch topics.
func (e *Engine) PendingRefetch() bool {
	return !e.fetching && (e.force || HasChanged(e.previous, e.current))
}

// BeginRefetch marks a fetch as started and returns the selection it is for.
// ok is false when no fetch is needed or one is already running.
func (e *Engine) BeginRefetch() (requested Selection, ok bool) {
	if !e.PendingRefetch() {
		return nil, false
	}

	e.fetching = true

	return e.current.Clone(), true
}

// ApplyTopics completes a fetch started by BeginRefetch. On error nothing
// changes, so the next tick retries. An empty selection leaves the mirror
// as it is.
func (e *Engine) ApplyTopics(requested Selection, result topicsrv.TopicsResult, err error) {
	e.fetching = false

	if err != nil {
		e.topicsErr = err

		e.logger.Error().Err(err).Msg("Topic fetch failed")
		e.setStatus(err, "topic fetch failed, showing last known configuration")

		return
	}

	e.previous = requested
	e.force = false
	e.topicsErr = nil

	if result.NoSelection {
		e.setStatus(nil, "no device selected")
		return
	}

	e.mirror.Rebuild(result.Snapshot, e.cache)
	e.resetStates()

	e.logger.Info().
		Int("devices", len(result.Snapshot)).
		Int("topics", e.mirror.Len()).
		Msg("Topic configuration loaded")
	e.setStatus(nil, "loaded %d topics for %d devices", e.mirror.Len(), len(result.Snapshot))
}

// resetStates drops settled states after a rebuild; records with pushes in
// flight keep theirs so the results still land.
func (e *Engine) resetStates() {
	for key, st := range e.states {
		if st.inflight == 0 {
			delete(e.states, key)
			continue
		}

		st.err = nil
		st.failed = nil
		st.state = StatePushing
	}
}

// Edit applies edit to the mirrored record and returns the push it implies.
// The request is nil when nothing needs sending: a cycle edit back to the
// last value the server has.
func (e *Engine) Edit(device models.DeviceName, address string, edit models.Edit) (*dispatch.Request, error) {
	if edit.Kind == models.EditCycle && edit.Cycle <= 0 {
		edit.Cycle = models.DefaultCycle
	}

	rec, err := e.mirror.SetField(device, address, edit)
	if err != nil {
		e.setStatus(err, "edit of %s/%s rejected", device, address)
		return nil, err
	}

	key := rec.Key()

	switch edit.Kind {
	case models.EditCycle:
		if !e.cache.ShouldPush(key, rec.Cycle) {
			e.logger.Debug().Str("record", key.String()).Int("cycle", rec.Cycle).Msg("Cycle unchanged, not pushing")
			return nil, nil
		}
	case models.EditInterest:
		if rec.Interested {
			e.cache.Seed(key, rec.Cycle)
		}
	case models.EditProxy:
	}

	e.nextID++

	st := e.stateFor(key)
	st.inflight++
	st.state = StatePushing

	return &dispatch.Request{ID: e.nextID, Record: rec, Edit: edit}, nil
}

func (e *Engine) stateFor(key models.RecordKey) *recordStatus {
	st, ok := e.states[key]
	if !ok {
		st = &recordStatus{}
		e.states[key] = st
	}

	return st
}

// EditRejected undoes the bookkeeping of a request that could not be queued.
func (e *Engine) EditRejected(req *dispatch.Request, err error) {
	e.ApplyPushResult(dispatch.Result{Request: *req, Err: err})
}

// ApplyPushResult records how a push ended. A failure keeps the local edit
// and marks the record unconfirmed; there is no rollback and no retry. A
// later successful push of the same field confirms it again.
func (e *Engine) ApplyPushResult(res dispatch.Result) {
	key := res.Request.Key()
	st := e.stateFor(key)

	if st.inflight > 0 {
		st.inflight--
	}

	field := res.Request.Edit.Kind.String()

	if res.Err != nil {
		if st.failed == nil {
			st.failed = make(map[models.EditKind]error)
		}

		st.failed[res.Request.Edit.Kind] = res.Err
		st.state = StateUnconfirmed
		st.err = res.Err

		e.setStatus(res.Err, "push of %s for %s failed, local edit kept", field, key)

		if errors.Is(res.Err, models.ErrValidation) {
			e.logger.Warn().Err(res.Err).Str("record", key.String()).Msg("Push rejected before sending")
		}

		return
	}

	delete(st.failed, res.Request.Edit.Kind)

	st.settle()

	e.setStatus(nil, "pushed %s for %s in %s", field, key, res.Duration.Round(time.Millisecond))
}

// RecordState returns the push state of key.
func (e *Engine) RecordState(key models.RecordKey) (RecordState, error) {
	st, ok := e.states[key]
	if !ok {
		return StateIdle, nil
	}

	return st.state, st.err
}

// Records returns the mirrored records of device.
func (e *Engine) Records(device models.DeviceName) []models.TopicRecord {
	return e.mirror.Get(device)
}

// Record returns the mirrored record at key.
func (e *Engine) Record(key models.RecordKey) (models.TopicRecord, bool) {
	return e.mirror.Lookup(key)
}

// Rows flattens the mirror for display, devices ascending, records in server order.
func (e *Engine) Rows() []Row {
	rows := make([]Row, 0, e.mirror.Len())

	for _, device := range e.mirror.Devices() {
		for _, rec := range e.mirror.Get(device) {
			state, err := e.RecordState(rec.Key())
			rows = append(rows, Row{Record: rec, State: state, Err: err})
		}
	}

	return rows
}
