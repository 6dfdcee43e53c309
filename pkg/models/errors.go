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

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure surfaced by the client, dispatcher or engine
// wraps exactly one of these.
var (
	// ErrTransport covers connection failures and any status other than 200.
	ErrTransport = errors.New("transport error")
	// ErrDecode covers malformed or schema-violating response bodies.
	ErrDecode = errors.New("decode error")
	// ErrValidation covers locally-held values that cannot be sent.
	ErrValidation = errors.New("validation error")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
