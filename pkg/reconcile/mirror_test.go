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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/topic-console/pkg/models"
)

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		"a": {
			{Device: "a", Address: "t1", Interested: true, Cycle: 5},
			{Device: "a", Address: "t2", Cycle: 1, Proxy: true},
		},
		"b": {
			{Device: "b", Address: "t1", Interested: true, Cycle: 30},
		},
	}
}

func TestShouldPushLastValueOnly(t *testing.T) {
	c := NewDeltaCache()
	key := models.RecordKey{Device: "a", Address: "t1"}

	assert.True(t, c.ShouldPush(key, 5), "no cached value")
	assert.False(t, c.ShouldPush(key, 5), "same value again")
	assert.True(t, c.ShouldPush(key, 6))
	assert.True(t, c.ShouldPush(key, 5), "toggling back is a change")
	assert.False(t, c.ShouldPush(key, 5))
}

func TestDeltaCacheKeysAreIndependent(t *testing.T) {
	c := NewDeltaCache()

	c.Seed(models.RecordKey{Device: "a", Address: "t1"}, 5)

	assert.True(t, c.ShouldPush(models.RecordKey{Device: "b", Address: "t1"}, 5))
	assert.True(t, c.ShouldPush(models.RecordKey{Device: "a", Address: "t2"}, 5))

	c.Reset()
	assert.Zero(t, c.Len())
}

func TestRebuildSeedsCache(t *testing.T) {
	m := NewMirror()
	c := NewDeltaCache()
	snap := sampleSnapshot()

	m.Rebuild(snap, c)

	for device, records := range snap {
		for _, rec := range records {
			assert.False(t, c.ShouldPush(models.RecordKey{Device: device, Address: rec.Address}, rec.Cycle),
				"%s/%s should be seeded", device, rec.Address)
		}
	}
}

func TestRebuildReplacesWholesale(t *testing.T) {
	m := NewMirror()
	c := NewDeltaCache()

	m.Rebuild(sampleSnapshot(), c)
	m.Rebuild(models.Snapshot{"b": {{Device: "b", Address: "t9", Cycle: 1}}}, c)

	assert.Empty(t, m.Get("a"))
	assert.Equal(t, []models.DeviceName{"b"}, m.Devices())
	require.Len(t, m.Get("b"), 1)
	assert.Equal(t, "t9", m.Get("b")[0].Address)

	// the old seed is gone with the old snapshot
	assert.True(t, c.ShouldPush(models.RecordKey{Device: "a", Address: "t1"}, 5))
}

func TestMirrorGetReturnsCopy(t *testing.T) {
	m := NewMirror()
	m.Rebuild(sampleSnapshot(), NewDeltaCache())

	rows := m.Get("a")
	rows[0].Cycle = 99

	assert.Equal(t, 5, m.Get("a")[0].Cycle)
}

func TestSetFieldChangesOneField(t *testing.T) {
	m := NewMirror()
	m.Rebuild(sampleSnapshot(), NewDeltaCache())

	rec, err := m.SetField("a", "t2", models.ProxyEdit(false))
	require.NoError(t, err)
	assert.Equal(t, models.TopicRecord{Device: "a", Address: "t2", Cycle: 1}, rec)

	rows := m.Get("a")
	assert.Equal(t, rec, rows[1])
	assert.Equal(t, models.TopicRecord{Device: "a", Address: "t1", Interested: true, Cycle: 5}, rows[0])
	assert.Equal(t, 30, m.Get("b")[0].Cycle)
}

func TestSetFieldErrors(t *testing.T) {
	m := NewMirror()
	m.Rebuild(sampleSnapshot(), NewDeltaCache())

	_, err := m.SetField("a", "nope", models.ProxyEdit(true))
	require.ErrorIs(t, err, ErrUnknownRecord)

	_, err = m.SetField("a", "t2", models.CycleEdit(10))
	require.ErrorIs(t, err, models.ErrValidation, "cycle of a non-interested topic")

	rec, ok := m.Lookup(models.RecordKey{Device: "a", Address: "t2"})
	require.True(t, ok)
	assert.Equal(t, 1, rec.Cycle, "rejected edit leaves the record alone")
}
