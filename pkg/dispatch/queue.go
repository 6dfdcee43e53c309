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
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
)

const resultBuffer = 64

// ErrQueueClosed is returned by Enqueue after Close.
var ErrQueueClosed = errors.New("push queue closed")

type lane struct {
	pending []Request
}

// Queue runs pushes off the UI thread. Requests for the same record run one
// at a time in enqueue order; different records run concurrently, bounded by
// maxInflight.
type Queue struct {
	pusher  Pusher
	sem     *semaphore.Weighted
	timeout time.Duration
	logger  logger.Logger

	mu     sync.Mutex
	lanes  map[models.RecordKey]*lane
	closed bool

	wg      sync.WaitGroup
	results chan Result
}

// NewQueue creates a Queue. A zero timeout means pushes never time out.
func NewQueue(pusher Pusher, maxInflight int, timeout time.Duration, log logger.Logger) *Queue {
	if maxInflight <= 0 {
		maxInflight = 1
	}

	return &Queue{
		pusher:  pusher,
		sem:     semaphore.NewWeighted(int64(maxInflight)),
		timeout: timeout,
		logger:  log,
		lanes:   make(map[models.RecordKey]*lane),
		results: make(chan Result, resultBuffer),
	}
}

// Results delivers one Result per enqueued Request. It is closed by Close.
func (q *Queue) Results() <-chan Result {
	return q.results
}

// Enqueue schedules req without blocking.
func (q *Queue) Enqueue(req Request) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	key := req.Key()

	l, running := q.lanes[key]
	if !running {
		l = &lane{}
		q.lanes[key] = l
	}

	l.pending = append(l.pending, req)

	if !running {
		q.wg.Add(1)

		go q.drain(key, l)
	}

	q.logger.Debug().
		Uint64("request", req.ID).
		Str("record", key.String()).
		Int("queued", len(l.pending)).
		Msg("Queued push")

	return nil
}

// drain runs the lane until it is empty, then removes it.
func (q *Queue) drain(key models.RecordKey, l *lane) {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		if len(l.pending) == 0 {
			delete(q.lanes, key)
			q.mu.Unlock()

			return
		}

		req := l.pending[0]
		l.pending = l.pending[1:]
		q.mu.Unlock()

		res := q.run(req)
		if res.Err != nil {
			q.logger.Warn().
				Err(res.Err).
				Uint64("request", req.ID).
				Str("record", key.String()).
				Msg("Push failed")
		}

		q.results <- res
	}
}

func (q *Queue) run(req Request) Result {
	ctx := context.Background()

	if err := q.sem.Acquire(ctx, 1); err != nil {
		return Result{Request: req, Err: err}
	}
	defer q.sem.Release(1)

	if q.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	start := time.Now()
	err := q.pusher.Push(ctx, req.Record, req.Edit)

	return Result{Request: req, Err: err, Duration: time.Since(start)}
}

// Close stops accepting requests, waits for queued ones to finish and closes
// the results channel. Results must keep being drained until it returns.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}

	q.closed = true
	q.mu.Unlock()

	q.wg.Wait()
	close(q.results)
}
