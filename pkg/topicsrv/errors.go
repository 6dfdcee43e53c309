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

package topicsrv

import (
	"errors"

	"github.com/carverauto/topic-console/pkg/models"
)

const (
	pathDevices        = models.PathDevices
	pathTopics         = models.PathTopics
	pathAddProxy       = models.PathAddProxy
	pathDeleteProxy    = models.PathDeleteProxy
	pathAddInterest    = models.PathAddInterest
	pathCancelInterest = models.PathCancelInterest
)

var (
	errUnexpectedStatusCode = errors.New("unexpected status code")
	errMissingHostField     = errors.New(`response has no "host" field`)
	errEmptyAddress         = errors.New("empty topic address")
	errEmptyDevice          = errors.New("empty device name")
)
