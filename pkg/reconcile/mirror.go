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
	"fmt"
	"slices"

	"github.com/carverauto/topic-console/pkg/models"
)

type recordIndex struct {
	device models.DeviceName
	pos    int
}

// Mirror is the editable local copy of the last fetched snapshot.
type Mirror struct {
	records map[models.DeviceName][]models.TopicRecord
	index   map[models.RecordKey]recordIndex
}

func NewMirror() *Mirror {
	return &Mirror{
		records: make(map[models.DeviceName][]models.TopicRecord),
		index:   make(map[models.RecordKey]recordIndex),
	}
}

// Rebuild replaces the whole mirror with snap and reseeds cache with every
// record's cycle, so an edit back to the fetched value is not pushed.
func (m *Mirror) Rebuild(snap models.Snapshot, cache *DeltaCache) {
	records := make(map[models.DeviceName][]models.TopicRecord, len(snap))
	index := make(map[models.RecordKey]recordIndex)

	cache.Reset()

	for device, topics := range snap {
		rows := make([]models.TopicRecord, len(topics))

		for i, rec := range topics {
			rec.Device = device
			rows[i] = rec

			key := rec.Key()
			index[key] = recordIndex{device: device, pos: i}
			cache.Seed(key, rec.Cycle)
		}

		records[device] = rows
	}

	m.records = records
	m.index = index
}

// Get returns a copy of device's records in server order.
func (m *Mirror) Get(device models.DeviceName) []models.TopicRecord {
	return slices.Clone(m.records[device])
}

// Lookup returns the record at key.
func (m *Mirror) Lookup(key models.RecordKey) (models.TopicRecord, bool) {
	idx, ok := m.index[key]
	if !ok {
		return models.TopicRecord{}, false
	}

	return m.records[idx.device][idx.pos], true
}

// Devices returns the mirrored devices in ascending order.
func (m *Mirror) Devices() []models.DeviceName {
	names := make([]models.DeviceName, 0, len(m.records))
	for name := range m.records {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Len is the number of records across all devices.
func (m *Mirror) Len() int {
	return len(m.index)
}

// SetField applies edit to exactly one record and returns the result. It never
// talks to the network.
func (m *Mirror) SetField(device models.DeviceName, address string, edit models.Edit) (models.TopicRecord, error) {
	key := models.RecordKey{Device: device, Address: address}

	idx, ok := m.index[key]
	if !ok {
		return models.TopicRecord{}, fmt.Errorf("%w: %s", ErrUnknownRecord, key)
	}

	rec := &m.records[idx.device][idx.pos]

	if err := edit.Validate(rec); err != nil {
		return models.TopicRecord{}, err
	}

	*rec = edit.Apply(*rec)

	return *rec, nil
}
