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
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/carverauto/topic-console/pkg/models"
)

// ListDevices fetches the device directory. The result is sorted and free of
// duplicates. On error callers should keep whatever list they already have.
func (c *Client) ListDevices(ctx context.Context) ([]models.DeviceName, error) {
	data, err := c.do(ctx, http.MethodGet, pathDevices, nil)
	if err != nil {
		return nil, err
	}

	var resp models.DevicesResponse

	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrDecode, pathDevices, err)
	}

	if resp.Host == nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDecode, errMissingHostField)
	}

	names := make([]models.DeviceName, 0, len(*resp.Host))
	empty := 0

	for _, name := range *resp.Host {
		if name == "" {
			empty++
			continue
		}

		names = append(names, name)
	}

	if empty > 0 {
		c.logger.Warn().Int("empty", empty).Msg("Directory returned empty device names, skipping them")
	}

	before := len(names)
	names = models.SortDevices(names)

	if dropped := before - len(names); dropped > 0 {
		c.logger.Warn().Int("duplicates", dropped).Msg("Directory returned duplicate device names")
	}

	c.logger.Debug().Int("devices", len(names)).Msg("Fetched device directory")

	return names, nil
}
