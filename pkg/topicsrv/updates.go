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
	"fmt"
	"net/http"

	"github.com/carverauto/topic-console/pkg/models"
)

// AddProxy enables proxying of device/address.
func (c *Client) AddProxy(ctx context.Context, device models.DeviceName, address string) error {
	return c.postProxy(ctx, pathAddProxy, device, address)
}

// DeleteProxy disables proxying of device/address.
func (c *Client) DeleteProxy(ctx context.Context, device models.DeviceName, address string) error {
	return c.postProxy(ctx, pathDeleteProxy, device, address)
}

// AddInterest subscribes to device/address with the given polling cycle.
func (c *Client) AddInterest(ctx context.Context, device models.DeviceName, address string, cycle int) error {
	if cycle <= 0 {
		return fmt.Errorf("%w: cycle must be positive, got %d", models.ErrValidation, cycle)
	}

	return c.postInterest(ctx, pathAddInterest, device, address, &cycle)
}

// CancelInterest unsubscribes from device/address. No cycle is sent.
func (c *Client) CancelInterest(ctx context.Context, device models.DeviceName, address string) error {
	return c.postInterest(ctx, pathCancelInterest, device, address, nil)
}

func (c *Client) postProxy(ctx context.Context, path string, device models.DeviceName, address string) error {
	if err := checkTarget(device, address); err != nil {
		return err
	}

	payload := []models.ProxyEntry{{
		HostName: device,
		API:      models.APIRef{Address: address},
	}}

	_, err := c.do(ctx, http.MethodPost, path, payload)

	return err
}

func (c *Client) postInterest(ctx context.Context, path string, device models.DeviceName, address string, cycle *int) error {
	if err := checkTarget(device, address); err != nil {
		return err
	}

	payload := models.InterestRequest{
		Interest: []models.InterestEntry{{
			HostName: device,
			InterestTopic: []models.InterestTopic{{
				API:   models.APIRef{Address: address},
				Cycle: cycle,
			}},
		}},
	}

	_, err := c.do(ctx, http.MethodPost, path, payload)

	return err
}

func checkTarget(device models.DeviceName, address string) error {
	if device == "" {
		return fmt.Errorf("%w: %w", models.ErrValidation, errEmptyDevice)
	}

	if address == "" {
		return fmt.Errorf("%w: %w", models.ErrValidation, errEmptyAddress)
	}

	return nil
}
