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
	"slices"

	"github.com/carverauto/topic-console/pkg/models"
)

// Selection records which devices the operator picked. A missing key is false.
type Selection map[models.DeviceName]bool

// HasChanged reports whether two selections differ on any device, treating
// absent keys as false. It compares the whole state because several toggles
// may land between two ticks.
func HasChanged(previous, current Selection) bool {
	for name, selected := range current {
		if previous[name] != selected {
			return true
		}
	}

	for name, selected := range previous {
		if current[name] != selected {
			return true
		}
	}

	return false
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for name, selected := range s {
		out[name] = selected
	}

	return out
}

// Selected returns the selected devices in ascending order.
func (s Selection) Selected() []models.DeviceName {
	names := make([]models.DeviceName, 0, len(s))

	for name, selected := range s {
		if selected {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}

// Sync makes the key set equal to names. New devices start unselected, known
// devices keep their choice and devices gone from the directory are removed.
func (s Selection) Sync(names []models.DeviceName) {
	known := make(map[models.DeviceName]struct{}, len(names))

	for _, name := range names {
		known[name] = struct{}{}

		if _, ok := s[name]; !ok {
			s[name] = false
		}
	}

	for name := range s {
		if _, ok := known[name]; !ok {
			delete(s, name)
		}
	}
}
