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

// Package console is the terminal UI for browsing and editing topic
// configuration.
package console

import (
	"context"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/topic-console/pkg/dispatch"
	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
	"github.com/carverauto/topic-console/pkg/reconcile"
	"github.com/carverauto/topic-console/pkg/topicsrv"
)

const (
	paneDevices = iota
	paneTopics
)

const defaultTick = 250 * time.Millisecond

// PushQueue runs pushes in the background and reports how each ended.
type PushQueue interface {
	Enqueue(req dispatch.Request) error
	Results() <-chan dispatch.Result
}

// Options wires a Model to its collaborators.
type Options struct {
	Context      context.Context
	Engine       *reconcile.Engine
	Directory    topicsrv.DirectoryLister
	Fetcher      topicsrv.TopicFetcher
	Queue        PushQueue
	TickInterval time.Duration
	ServerURL    string
	Logger       logger.Logger
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the bubbletea model of the console. All engine access happens in
// Update, which bubbletea calls from a single goroutine.
type Model struct {
	ctx       context.Context
	engine    *reconcile.Engine
	directory topicsrv.DirectoryLister
	fetcher   topicsrv.TopicFetcher
	queue     PushQueue
	tick      time.Duration
	serverURL string
	logger    logger.Logger
	copyText  func(string) error

	stopListening chan struct{}
	stopOnce      sync.Once

	focus        int
	deviceCursor int
	topicCursor  int

	editing    bool
	cycleInput textinput.Model

	keys keyMap
	help help.Model

	refreshing bool
	notice     string
	width      int
	quitting   bool

	styles styles
}

// StopListening detaches the model from the push queue. Call it once the
// program has exited so the queue results can be drained elsewhere.
func (m *Model) StopListening() {
	m.stopOnce.Do(func() { close(m.stopListening) })
}

// New creates a Model.
func New(opts Options) *Model {
	ci := textinput.New()
	ci.Placeholder = "cycle"
	ci.CharLimit = 9
	ci.Width = 10
	ci.Prompt = "cycle> "
	ci.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	ci.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
	ci.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	st := newStyles()

	h := help.New()
	h.Styles.FullDesc = st.help
	h.Styles.ShortDesc = st.help
	h.Styles.FullKey = st.cursor
	h.Styles.ShortKey = st.cursor

	m := &Model{
		ctx:        opts.Context,
		engine:     opts.Engine,
		directory:  opts.Directory,
		fetcher:    opts.Fetcher,
		queue:      opts.Queue,
		tick:       opts.TickInterval,
		serverURL:  opts.ServerURL,
		logger:     opts.Logger,
		copyText:   opts.Clipboard,
		cycleInput: ci,

		stopListening: make(chan struct{}),
		keys:       defaultKeyMap(),
		help:       h,
		styles:     st,
	}

	if m.ctx == nil {
		m.ctx = context.Background()
	}

	if m.tick <= 0 {
		m.tick = defaultTick
	}

	if m.copyText == nil {
		m.copyText = clipboard.WriteAll
	}

	if m.logger == nil {
		m.logger = logger.NewTestLogger()
	}

	return m
}

// selectedDevice is the device under the cursor of the device pane.
func (m *Model) selectedDevice() (models.DeviceName, bool) {
	devices := m.engine.Devices()
	if m.deviceCursor < 0 || m.deviceCursor >= len(devices) {
		return "", false
	}

	return devices[m.deviceCursor], true
}

// selectedRow is the record under the cursor of the topic pane.
func (m *Model) selectedRow() (reconcile.Row, bool) {
	rows := m.engine.Rows()
	if m.topicCursor < 0 || m.topicCursor >= len(rows) {
		return reconcile.Row{}, false
	}

	return rows[m.topicCursor], true
}

func (m *Model) clampCursors() {
	m.deviceCursor = clamp(m.deviceCursor, len(m.engine.Devices()))
	m.topicCursor = clamp(m.topicCursor, len(m.engine.Rows()))
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}

	if i >= n {
		return n - 1
	}

	return i
}
