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

// Package topicsrv is the HTTP client for the topic configuration server.
package topicsrv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
	"github.com/carverauto/topic-console/pkg/version"
)

const (
	maxErrorBodyLen = 256
	requestIDHeader = "X-Request-ID"
)

// Client talks to the configuration server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     logger.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the server described by cfg.
func NewClient(cfg *models.ServerConfig, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout),
		},
		logger: log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do sends one request and returns the body of a 200 response. Anything else
// is an ErrTransport.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader = http.NoBody

	var encoded []byte

	if payload != nil {
		var err error

		encoded, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s request: %w", path, err)
		}

		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrTransport, err)
	}

	requestID := uuid.New().String()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(requestIDHeader, requestID)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		RawJSON("body", jsonOrNull(encoded)).
		Msg("Sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", models.ErrTransport, method, path, err)
	}
	defer c.closeResponse(resp)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %w", models.ErrTransport, path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w: %s %s returned %d: %s", models.ErrTransport,
			errUnexpectedStatusCode, method, path, resp.StatusCode, truncate(data))
	}

	return data, nil
}

// closeResponse closes the HTTP response body, logging any errors.
func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to close response body")
	}
}

func jsonOrNull(b []byte) []byte {
	if len(b) == 0 {
		return []byte("null")
	}

	return b
}

func truncate(b []byte) string {
	if len(b) > maxErrorBodyLen {
		return string(b[:maxErrorBodyLen]) + "..."
	}

	return string(b)
}
