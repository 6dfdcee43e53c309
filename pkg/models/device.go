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

// Package models holds the types shared by the topic console packages.
package models

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultCycle is the displayed polling interval of a topic nobody is interested in.
const DefaultCycle = 1

// DeviceName identifies a device. Ordering is lexicographic.
type DeviceName string

// SortDevices sorts names ascending and removes duplicates, returning the
// compacted slice.
func SortDevices(names []DeviceName) []DeviceName {
	slices.Sort(names)

	return slices.Compact(names)
}

// TopicRecord is one row of a device's topic configuration.
type TopicRecord struct {
	Device     DeviceName `json:"device"`
	Address    string     `json:"address"`
	Interested bool       `json:"interested"`
	Cycle      int        `json:"cycle"`
	Proxy      bool       `json:"proxy"`
}

// Key returns the identity of the record.
func (r *TopicRecord) Key() RecordKey {
	return RecordKey{Device: r.Device, Address: r.Address}
}

// DisplayCycle is the cycle shown to the operator: the stored value when
// interested, DefaultCycle otherwise.
func (r *TopicRecord) DisplayCycle() int {
	if !r.Interested {
		return DefaultCycle
	}

	return r.Cycle
}

// RecordKey identifies a record across the mirror, the delta cache and the push queue.
type RecordKey struct {
	Device  DeviceName
	Address string
}

func (k RecordKey) String() string {
	return string(k.Device) + "/" + k.Address
}

// Snapshot is the authoritative configuration returned by one topic fetch.
type Snapshot map[DeviceName][]TopicRecord

// Devices returns the devices in the snapshot, sorted.
func (s Snapshot) Devices() []DeviceName {
	names := make([]DeviceName, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// ParseCycle parses an operator-typed cycle value.
func ParseCycle(s string) (int, error) {
	s = strings.TrimSpace(s)

	cycle, err := strconv.Atoi(s)
	if err != nil {
		return 0, validationf("cycle %q is not an integer", s)
	}

	if cycle <= 0 {
		return 0, validationf("cycle must be positive, got %d", cycle)
	}

	return cycle, nil
}
