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

package models

import "fmt"

// EditKind selects which field of a TopicRecord an Edit changes.
type EditKind int

const (
	EditProxy EditKind = iota + 1
	EditInterest
	EditCycle
)

func (k EditKind) String() string {
	switch k {
	case EditProxy:
		return "proxy"
	case EditInterest:
		return "interest"
	case EditCycle:
		return "cycle"
	default:
		return fmt.Sprintf("edit(%d)", int(k))
	}
}

// Edit is a single operator change. Flag carries the new value of a proxy or
// interest edit; Cycle carries the new value of a cycle edit.
type Edit struct {
	Kind  EditKind
	Flag  bool
	Cycle int
}

func ProxyEdit(on bool) Edit {
	return Edit{Kind: EditProxy, Flag: on}
}

func InterestEdit(on bool) Edit {
	return Edit{Kind: EditInterest, Flag: on}
}

func CycleEdit(cycle int) Edit {
	return Edit{Kind: EditCycle, Cycle: cycle}
}

// Apply returns r with the edit applied. It does not validate.
func (e Edit) Apply(r TopicRecord) TopicRecord {
	switch e.Kind {
	case EditProxy:
		r.Proxy = e.Flag
	case EditInterest:
		r.Interested = e.Flag
	case EditCycle:
		r.Cycle = e.Cycle
	}

	return r
}

// Validate checks the edit against the record it is about to change.
func (e Edit) Validate(r *TopicRecord) error {
	switch e.Kind {
	case EditProxy, EditInterest:
		return nil
	case EditCycle:
		if !r.Interested {
			return validationf("cycle of %s is not editable while not interested", r.Key())
		}

		if e.Cycle <= 0 {
			return validationf("cycle must be positive, got %d", e.Cycle)
		}

		return nil
	default:
		return validationf("unknown edit kind %d", int(e.Kind))
	}
}
