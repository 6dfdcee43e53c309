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

// TopicsResult is the outcome of FetchTopics. NoSelection reports that the
// selection was empty and no request was made; Snapshot is nil in that case.
type TopicsResult struct {
	Snapshot    models.Snapshot
	NoSelection bool
}

// FetchTopics retrieves the configuration of the selected devices.
func (c *Client) FetchTopics(ctx context.Context, selected []models.DeviceName) (TopicsResult, error) {
	if len(selected) == 0 {
		return TopicsResult{NoSelection: true}, nil
	}

	data, err := c.do(ctx, http.MethodPost, pathTopics, models.TopicsRequest{Hosts: selected})
	if err != nil {
		return TopicsResult{}, err
	}

	var resp models.TopicsResponse

	if err := json.Unmarshal(data, &resp); err != nil {
		return TopicsResult{}, fmt.Errorf("%w: %s: %w", models.ErrDecode, pathTopics, err)
	}

	snap, err := models.DecodeSnapshot(resp)
	if err != nil {
		return TopicsResult{}, err
	}

	c.logger.Debug().
		Int("requested", len(selected)).
		Int("returned", len(snap)).
		Msg("Fetched topic configuration")

	return TopicsResult{Snapshot: snap}, nil
}
