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

package dispatch

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
)

// trackingPusher records per-record concurrency and call order.
type trackingPusher struct {
	mu          sync.Mutex
	inflight    map[models.RecordKey]int
	maxPerKey   int
	totalNow    int
	maxTotal    int
	order       []int
	delay       time.Duration
	failAddress string
}

func newTrackingPusher(delay time.Duration) *trackingPusher {
	return &trackingPusher{inflight: make(map[models.RecordKey]int), delay: delay}
}

func (p *trackingPusher) Push(_ context.Context, record models.TopicRecord, edit models.Edit) error {
	key := record.Key()

	p.mu.Lock()
	p.inflight[key]++
	p.totalNow++
	p.maxPerKey = max(p.maxPerKey, p.inflight[key])
	p.maxTotal = max(p.maxTotal, p.totalNow)
	p.order = append(p.order, edit.Cycle)
	p.mu.Unlock()

	time.Sleep(p.delay)

	p.mu.Lock()
	p.inflight[key]--
	p.totalNow--
	p.mu.Unlock()

	if record.Address == p.failAddress {
		return models.ErrTransport
	}

	return nil
}

func collect(t *testing.T, q *Queue, n int) []Result {
	t.Helper()

	results := make([]Result, 0, n)
	timeout := time.After(5 * time.Second)

	for len(results) < n {
		select {
		case res := <-q.Results():
			results = append(results, res)
		case <-timeout:
			t.Fatalf("timed out waiting for results, got %d of %d", len(results), n)
		}
	}

	return results
}

func cycleRequest(id uint64, address string, cycle int) Request {
	return Request{
		ID:     id,
		Record: models.TopicRecord{Device: "a", Address: address, Interested: true, Cycle: cycle},
		Edit:   models.CycleEdit(cycle),
	}
}

func TestQueueSerializesPerRecord(t *testing.T) {
	pusher := newTrackingPusher(10 * time.Millisecond)
	q := NewQueue(pusher, 4, time.Second, logger.NewTestLogger())

	for i := 1; i <= 5; i++ {
		require.NoError(t, q.Enqueue(cycleRequest(uint64(i), "t1", i)))
	}

	results := collect(t, q, 5)
	q.Close()

	pusher.mu.Lock()
	defer pusher.mu.Unlock()

	assert.Equal(t, 1, pusher.maxPerKey)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pusher.order)

	for i, res := range results {
		assert.Equal(t, uint64(i+1), res.Request.ID)
		assert.NoError(t, res.Err)
	}
}

func TestQueueRunsRecordsConcurrentlyWithinBound(t *testing.T) {
	pusher := newTrackingPusher(30 * time.Millisecond)
	q := NewQueue(pusher, 2, time.Second, logger.NewTestLogger())

	for i, addr := range []string{"t1", "t2", "t3", "t4"} {
		require.NoError(t, q.Enqueue(cycleRequest(uint64(i+1), addr, 5)))
	}

	collect(t, q, 4)
	q.Close()

	pusher.mu.Lock()
	defer pusher.mu.Unlock()

	assert.LessOrEqual(t, pusher.maxTotal, 2)
}

func TestQueueReportsFailures(t *testing.T) {
	pusher := newTrackingPusher(0)
	pusher.failAddress = "bad"

	var buf bytes.Buffer

	q := NewQueue(pusher, 1, 0, logger.New(zerolog.New(&buf).Level(zerolog.WarnLevel)))

	require.NoError(t, q.Enqueue(cycleRequest(1, "bad", 3)))

	results := collect(t, q, 1)
	q.Close()

	require.ErrorIs(t, results[0].Err, models.ErrTransport)
	assert.Equal(t, "bad", results[0].Request.Record.Address)

	// logged even if nobody reads the result
	assert.Contains(t, buf.String(), "Push failed")
	assert.Contains(t, buf.String(), "/bad")
}

func TestQueuePassesDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	pusher := NewMockPusher(ctrl)

	pusher.EXPECT().Push(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.TopicRecord, _ models.Edit) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok)

			<-ctx.Done()

			return ctx.Err()
		})

	q := NewQueue(pusher, 1, 20*time.Millisecond, logger.NewTestLogger())
	require.NoError(t, q.Enqueue(cycleRequest(1, "t1", 3)))

	results := collect(t, q, 1)
	q.Close()

	assert.True(t, errors.Is(results[0].Err, context.DeadlineExceeded))
}

func TestQueueCloseRejectsAndClosesResults(t *testing.T) {
	q := NewQueue(newTrackingPusher(0), 1, 0, logger.NewTestLogger())

	q.Close()
	q.Close()

	require.ErrorIs(t, q.Enqueue(cycleRequest(1, "t1", 3)), ErrQueueClosed)

	_, open := <-q.Results()
	assert.False(t, open)
}
