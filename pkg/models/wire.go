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

// Wire shapes of the configuration server protocol.

const (
	PathDevices        = "/get_devices"
	PathTopics         = "/get_api"
	PathAddProxy       = "/add_proxy"
	PathDeleteProxy    = "/delete_proxy"
	PathAddInterest    = "/add_interest_topic"
	PathCancelInterest = "/cancel_interest_topic"
)

// DevicesResponse is the body of GET /get_devices.
type DevicesResponse struct {
	Host *[]DeviceName `json:"host"`
}

// TopicsRequest is the body of POST /get_api.
type TopicsRequest struct {
	Hosts []DeviceName `json:"hosts"`
}

// TopicsResponse is the body returned by POST /get_api.
type TopicsResponse map[DeviceName][]WireTopic

// WireTopic is one per-address record as the server encodes it. Flags are 0/1
// integers; Cycle may be absent for topics nobody is interested in.
type WireTopic struct {
	Address    string `json:"address"`
	Interested *int   `json:"interested"`
	Proxy      *int   `json:"proxy"`
	Cycle      *int   `json:"cycle,omitempty"`
}

// APIRef names a topic endpoint on a device.
type APIRef struct {
	Address string `json:"address"`
}

// ProxyEntry is one element of the /add_proxy and /delete_proxy bodies.
type ProxyEntry struct {
	HostName DeviceName `json:"host_name"`
	API      APIRef     `json:"API"`
}

// InterestRequest is the body of /add_interest_topic and /cancel_interest_topic.
type InterestRequest struct {
	Interest []InterestEntry `json:"interest"`
}

type InterestEntry struct {
	HostName      DeviceName      `json:"host_name"`
	InterestTopic []InterestTopic `json:"interest_topic"`
}

// InterestTopic carries Cycle only on add.
type InterestTopic struct {
	API   APIRef `json:"API"`
	Cycle *int   `json:"cycle,omitempty"`
}

func decodef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDecode, fmt.Sprintf(format, args...))
}

func decodeFlag(device DeviceName, address, field string, v *int) (bool, error) {
	if v == nil {
		return false, decodef("%s/%s: missing %q", device, address, field)
	}

	switch *v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, decodef("%s/%s: %q must be 0 or 1, got %d", device, address, field, *v)
	}
}

// Record validates w and converts it into a TopicRecord owned by device.
func (w *WireTopic) Record(device DeviceName) (TopicRecord, error) {
	if w.Address == "" {
		return TopicRecord{}, decodef("%s: topic without address", device)
	}

	interested, err := decodeFlag(device, w.Address, "interested", w.Interested)
	if err != nil {
		return TopicRecord{}, err
	}

	proxy, err := decodeFlag(device, w.Address, "proxy", w.Proxy)
	if err != nil {
		return TopicRecord{}, err
	}

	cycle := DefaultCycle

	switch {
	case w.Cycle != nil && *w.Cycle <= 0:
		return TopicRecord{}, decodef("%s/%s: cycle must be positive, got %d", device, w.Address, *w.Cycle)
	case w.Cycle != nil:
		cycle = *w.Cycle
	case interested:
		return TopicRecord{}, decodef("%s/%s: interested topic without cycle", device, w.Address)
	}

	return TopicRecord{
		Device:     device,
		Address:    w.Address,
		Interested: interested,
		Cycle:      cycle,
		Proxy:      proxy,
	}, nil
}

// WireTopicFromRecord encodes r the way the server does. Cycle is omitted for
// topics nobody is interested in.
func WireTopicFromRecord(r *TopicRecord) WireTopic {
	w := WireTopic{
		Address:    r.Address,
		Interested: intPtr(boolToInt(r.Interested)),
		Proxy:      intPtr(boolToInt(r.Proxy)),
	}

	if r.Interested {
		w.Cycle = intPtr(r.Cycle)
	}

	return w
}

// DecodeSnapshot converts a whole /get_api response. Any invalid record fails
// the whole snapshot so a device is never rebuilt from partial data.
func DecodeSnapshot(resp TopicsResponse) (Snapshot, error) {
	snap := make(Snapshot, len(resp))

	for device, topics := range resp {
		records := make([]TopicRecord, 0, len(topics))
		seen := make(map[string]struct{}, len(topics))

		for i := range topics {
			rec, err := topics[i].Record(device)
			if err != nil {
				return nil, err
			}

			if _, dup := seen[rec.Address]; dup {
				return nil, decodef("%s/%s: duplicate address", device, rec.Address)
			}

			seen[rec.Address] = struct{}{}
			records = append(records, rec)
		}

		snap[device] = records
	}

	return snap, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

func intPtr(v int) *int {
	return &v
}
