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
	"net/http"

	"github.com/carverauto/topic-console/pkg/models"
)

//go:generate mockgen -destination=mock_topicsrv.go -package=topicsrv github.com/carverauto/topic-console/pkg/topicsrv HTTPClient,DirectoryLister,TopicFetcher,TopicUpdater

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DirectoryLister lists the devices known to the directory endpoint.
type DirectoryLister interface {
	ListDevices(ctx context.Context) ([]models.DeviceName, error)
}

// TopicFetcher retrieves the authoritative configuration of selected devices.
type TopicFetcher interface {
	FetchTopics(ctx context.Context, selected []models.DeviceName) (TopicsResult, error)
}

// TopicUpdater issues the four update calls of the protocol.
type TopicUpdater interface {
	AddProxy(ctx context.Context, device models.DeviceName, address string) error
	DeleteProxy(ctx context.Context, device models.DeviceName, address string) error
	AddInterest(ctx context.Context, device models.DeviceName, address string, cycle int) error
	CancelInterest(ctx context.Context, device models.DeviceName, address string) error
}
