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

import "github.com/carverauto/topic-console/pkg/models"

// DeltaCache remembers the last cycle accepted per record so unchanged cycles
// are not pushed again. It is not authoritative and may be reset at any time.
type DeltaCache struct {
	last map[models.RecordKey]int
}

func NewDeltaCache() *DeltaCache {
	return &DeltaCache{last: make(map[models.RecordKey]int)}
}

// ShouldPush reports whether cycle differs from the cached value for key, and
// records it when it does.
func (c *DeltaCache) ShouldPush(key models.RecordKey, cycle int) bool {
	if last, ok := c.last[key]; ok && last == cycle {
		return false
	}

	c.last[key] = cycle

	return true
}

// Seed stores cycle as the known value for key.
func (c *DeltaCache) Seed(key models.RecordKey, cycle int) {
	c.last[key] = cycle
}

// Reset forgets every cached value.
func (c *DeltaCache) Reset() {
	c.last = make(map[models.RecordKey]int)
}

func (c *DeltaCache) Len() int {
	return len(c.last)
}
