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

package reconcile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/topic-console/pkg/dispatch"
	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
	"github.com/carverauto/topic-console/pkg/topicsrv"
)

// loadedEngine returns an engine with device "a" selected and one interested topic at cycle 5.
func loadedEngine(t *testing.T) *Engine {
	t.Helper()

	e := NewEngine(logger.NewTestLogger())
	e.ApplyDirectory([]models.DeviceName{"a", "b"})
	require.NoError(t, e.SetSelected("a", true))

	requested, ok := e.BeginRefetch()
	require.True(t, ok)
	assert.Equal(t, []models.DeviceName{"a"}, requested.Selected())

	e.ApplyTopics(requested, topicsrv.TopicsResult{Snapshot: models.Snapshot{
		"a": {{Device: "a", Address: "t1", Interested: true, Cycle: 5}},
	}}, nil)

	require.False(t, e.PendingRefetch())

	return e
}

func TestEngineSelectFetchAndSuppressUnchangedCycle(t *testing.T) {
	e := loadedEngine(t)

	records := e.Records("a")
	require.Len(t, records, 1)
	assert.Equal(t, 5, records[0].Cycle)

	req, err := e.Edit("a", "t1", models.CycleEdit(5))
	require.NoError(t, err)
	assert.Nil(t, req, "unchanged cycle must not be pushed")

	req, err = e.Edit("a", "t1", models.CycleEdit(6))
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, 6, req.Record.Cycle)
	assert.Equal(t, models.EditCycle, req.Edit.Kind)

	state, _ := e.RecordState(req.Key())
	assert.Equal(t, StatePushing, state)

	e.ApplyPushResult(dispatch.Result{Request: *req, Duration: time.Millisecond})

	state, stateErr := e.RecordState(req.Key())
	assert.Equal(t, StateIdle, state)
	assert.NoError(t, stateErr)
}

func TestEngineCycleEditsClampToOne(t *testing.T) {
	e := loadedEngine(t)

	req, err := e.Edit("a", "t1", models.CycleEdit(-3))
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, 1, req.Record.Cycle)
}

func TestEngineToggleEditsAlwaysPush(t *testing.T) {
	e := loadedEngine(t)

	first, err := e.Edit("a", "t1", models.ProxyEdit(true))
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := e.Edit("a", "t1", models.ProxyEdit(true))
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Greater(t, second.ID, first.ID)

	off, err := e.Edit("a", "t1", models.InterestEdit(false))
	require.NoError(t, err)
	require.NotNil(t, off)
	assert.False(t, off.Record.Interested)
}

func TestEngineEmptySelectionKeepsMirror(t *testing.T) {
	e := loadedEngine(t)

	require.NoError(t, e.Toggle("a"))
	require.True(t, e.PendingRefetch())

	requested, ok := e.BeginRefetch()
	require.True(t, ok)
	assert.Empty(t, requested.Selected())

	e.ApplyTopics(requested, topicsrv.TopicsResult{NoSelection: true}, nil)

	assert.Len(t, e.Records("a"), 1, "mirror is left unchanged")
	assert.False(t, e.PendingRefetch())
	assert.Equal(t, "no device selected", e.Status().Message)
}

func TestEngineFailedFetchRetriesAndKeepsData(t *testing.T) {
	e := loadedEngine(t)

	require.NoError(t, e.SetSelected("b", true))

	requested, ok := e.BeginRefetch()
	require.True(t, ok)

	_, again := e.BeginRefetch()
	assert.False(t, again, "only one fetch in flight")

	e.ApplyTopics(requested, topicsrv.TopicsResult{}, models.ErrTransport)

	assert.Len(t, e.Records("a"), 1)
	require.ErrorIs(t, e.TopicsErr(), models.ErrTransport)
	assert.True(t, e.PendingRefetch(), "previous untouched so the next tick retries")
}

func TestEngineSelectionChangedDuringFetch(t *testing.T) {
	e := loadedEngine(t)

	require.NoError(t, e.SetSelected("b", true))
	requested, ok := e.BeginRefetch()
	require.True(t, ok)

	require.NoError(t, e.SetSelected("a", false))

	e.ApplyTopics(requested, topicsrv.TopicsResult{Snapshot: models.Snapshot{}}, nil)

	assert.True(t, e.PendingRefetch(), "the later toggle still needs a fetch")
}

func TestEngineForceRefetch(t *testing.T) {
	e := loadedEngine(t)

	e.ForceRefetch()
	requested, ok := e.BeginRefetch()
	require.True(t, ok)

	e.ApplyTopics(requested, topicsrv.TopicsResult{Snapshot: models.Snapshot{
		"a": {{Device: "a", Address: "t1", Interested: true, Cycle: 7}},
	}}, nil)

	assert.False(t, e.PendingRefetch())
	assert.Equal(t, 7, e.Records("a")[0].Cycle)

	req, err := e.Edit("a", "t1", models.CycleEdit(7))
	require.NoError(t, err)
	assert.Nil(t, req, "rebuild reseeds the cache")
}

func TestEngineFailedPushKeepsLocalEdit(t *testing.T) {
	e := loadedEngine(t)

	req, err := e.Edit("a", "t1", models.ProxyEdit(true))
	require.NoError(t, err)

	e.ApplyPushResult(dispatch.Result{Request: *req, Err: models.ErrTransport})

	rec, ok := e.Record(req.Key())
	require.True(t, ok)
	assert.True(t, rec.Proxy, "no rollback")

	state, stateErr := e.RecordState(req.Key())
	assert.Equal(t, StateUnconfirmed, state)
	require.ErrorIs(t, stateErr, models.ErrTransport)
	require.ErrorIs(t, e.Status().Err, models.ErrTransport)

	rows := e.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, StateUnconfirmed, rows[0].State)

	// a successful refetch resynchronizes
	e.ForceRefetch()
	requested, _ := e.BeginRefetch()
	e.ApplyTopics(requested, topicsrv.TopicsResult{Snapshot: models.Snapshot{
		"a": {{Device: "a", Address: "t1", Interested: true, Cycle: 5}},
	}}, nil)

	state, _ = e.RecordState(req.Key())
	assert.Equal(t, StateIdle, state)
}

func TestEngineLaterPushConfirmsField(t *testing.T) {
	e := loadedEngine(t)

	failed, err := e.Edit("a", "t1", models.ProxyEdit(true))
	require.NoError(t, err)
	e.ApplyPushResult(dispatch.Result{Request: *failed, Err: models.ErrTransport})

	cycle, err := e.Edit("a", "t1", models.CycleEdit(9))
	require.NoError(t, err)
	e.ApplyPushResult(dispatch.Result{Request: *cycle})

	state, stateErr := e.RecordState(failed.Key())
	assert.Equal(t, StateUnconfirmed, state, "a cycle push does not confirm the proxy flag")
	require.ErrorIs(t, stateErr, models.ErrTransport)

	retry, err := e.Edit("a", "t1", models.ProxyEdit(true))
	require.NoError(t, err)

	state, _ = e.RecordState(retry.Key())
	assert.Equal(t, StatePushing, state)

	e.ApplyPushResult(dispatch.Result{Request: *retry})

	state, stateErr = e.RecordState(retry.Key())
	assert.Equal(t, StateIdle, state)
	require.NoError(t, stateErr)
}

func TestEngineRebuildKeepsInflightPushes(t *testing.T) {
	e := loadedEngine(t)

	settled, err := e.Edit("a", "t1", models.ProxyEdit(true))
	require.NoError(t, err)
	e.ApplyPushResult(dispatch.Result{Request: *settled, Err: models.ErrTransport})

	pending, err := e.Edit("a", "t1", models.InterestEdit(false))
	require.NoError(t, err)

	e.ForceRefetch()
	requested, ok := e.BeginRefetch()
	require.True(t, ok)
	e.ApplyTopics(requested, topicsrv.TopicsResult{Snapshot: models.Snapshot{
		"a": {{Device: "a", Address: "t1", Interested: true, Cycle: 5, Proxy: true}},
	}}, nil)

	state, stateErr := e.RecordState(pending.Key())
	assert.Equal(t, StatePushing, state, "the in-flight push still owns the record")
	require.NoError(t, stateErr, "the rebuild drops the old failure")

	e.ApplyPushResult(dispatch.Result{Request: *pending})

	state, stateErr = e.RecordState(pending.Key())
	assert.Equal(t, StateIdle, state)
	require.NoError(t, stateErr)
}

func TestEngineEditErrors(t *testing.T) {
	e := loadedEngine(t)

	_, err := e.Edit("a", "missing", models.ProxyEdit(true))
	require.ErrorIs(t, err, ErrUnknownRecord)

	_, err = e.Edit("a", "t1", models.Edit{Kind: 42})
	require.ErrorIs(t, err, models.ErrValidation)
	require.Error(t, e.Status().Err)
}

func TestEngineDirectory(t *testing.T) {
	e := NewEngine(logger.NewTestLogger())

	require.ErrorIs(t, e.Toggle("a"), ErrUnknownDevice)

	e.ApplyDirectory([]models.DeviceName{"a", "b"})
	require.NoError(t, e.Toggle("a"))

	e.ApplyDirectoryError(errors.New("boom"))
	assert.Equal(t, []models.DeviceName{"a", "b"}, e.Devices(), "failed refresh keeps the list")
	require.Error(t, e.DirectoryErr())

	e.ApplyDirectory([]models.DeviceName{"a", "b", "c"})
	assert.True(t, e.IsSelected("a"), "refresh keeps existing choices")
	assert.False(t, e.IsSelected("c"))
	assert.NoError(t, e.DirectoryErr())
}
