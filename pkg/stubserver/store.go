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

// Package stubserver is an in-memory configuration server speaking the same
// protocol as the real one.
package stubserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/carverauto/topic-console/pkg/models"
)

var (
	errUnknownDevice  = errors.New("unknown device")
	errUnknownAddress = errors.New("unknown address")
	errBadCycle       = errors.New("cycle must be positive")
)

// Store holds the topics of every device. Topics keep their seed order.
type Store struct {
	mu      sync.RWMutex
	devices map[models.DeviceName][]models.TopicRecord
}

// NewStore builds a store from a seed. Records are validated the same way the
// console decodes them.
func NewStore(seed models.TopicsResponse) (*Store, error) {
	snap, err := models.DecodeSnapshot(seed)
	if err != nil {
		return nil, err
	}

	return &Store{devices: snap}, nil
}

// DefaultSeed is used when no seed file is given.
func DefaultSeed() models.TopicsResponse {
	on, off, five, ten := 1, 0, 5, 10

	return models.TopicsResponse{
		"plc-line-1": {
			{Address: "DB1.DBX0.0", Interested: &on, Proxy: &off, Cycle: &five},
			{Address: "DB1.DBW2", Interested: &off, Proxy: &on},
			{Address: "DB2.DBD4", Interested: &off, Proxy: &off},
		},
		"plc-line-2": {
			{Address: "MW100", Interested: &on, Proxy: &on, Cycle: &ten},
			{Address: "MW102", Interested: &off, Proxy: &off},
		},
		"robot-cell": {
			{Address: "axis/1/position", Interested: &off, Proxy: &off},
		},
	}
}

// LoadSeed reads a seed file. Files ending in .yaml or .yml are YAML, anything
// else is JSON.
func LoadSeed(path string) (models.TopicsResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var seed models.TopicsResponse

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &seed)
	default:
		err = json.Unmarshal(data, &seed)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	return seed, nil
}

// Devices returns every device name, sorted.
func (s *Store) Devices() []models.DeviceName {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]models.DeviceName, 0, len(s.devices))
	for name := range s.devices {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// Topics returns the wire form of the topics of each requested host. Unknown
// hosts are left out.
func (s *Store) Topics(hosts []models.DeviceName) models.TopicsResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := make(models.TopicsResponse, len(hosts))

	for _, host := range hosts {
		records, ok := s.devices[host]
		if !ok {
			continue
		}

		topics := make([]models.WireTopic, 0, len(records))
		for i := range records {
			topics = append(topics, models.WireTopicFromRecord(&records[i]))
		}

		resp[host] = topics
	}

	return resp
}

// Record returns a copy of one record.
func (s *Store) Record(device models.DeviceName, address string) (models.TopicRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, err := s.indexLocked(device, address)
	if err != nil {
		return models.TopicRecord{}, false
	}

	return s.devices[device][idx], true
}

// Change is one update addressed at device/address.
type Change struct {
	Device  models.DeviceName
	Address string
	Apply   func(*models.TopicRecord)
}

// Update applies every change or none of them.
func (s *Store) Update(changes []Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	indexes := make([]int, len(changes))

	for i, c := range changes {
		idx, err := s.indexLocked(c.Device, c.Address)
		if err != nil {
			return err
		}

		indexes[i] = idx
	}

	for i, c := range changes {
		c.Apply(&s.devices[c.Device][indexes[i]])
	}

	return nil
}

func (s *Store) indexLocked(device models.DeviceName, address string) (int, error) {
	records, ok := s.devices[device]
	if !ok {
		return 0, fmt.Errorf("%w: %s", errUnknownDevice, device)
	}

	for i := range records {
		if records[i].Address == address {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %s/%s", errUnknownAddress, device, address)
}
