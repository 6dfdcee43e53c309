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

import "errors"

var (
	// ErrUnknownRecord is returned for edits of a device/address the mirror does not hold.
	ErrUnknownRecord = errors.New("unknown topic record")
	// ErrUnknownDevice is returned when selecting a device that is not in the directory.
	ErrUnknownDevice = errors.New("unknown device")
)
