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

package console

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/carverauto/topic-console/pkg/dispatch"
	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
	"github.com/carverauto/topic-console/pkg/reconcile"
	"github.com/carverauto/topic-console/pkg/topicsrv"
)

var errNothingToCopy = errors.New("no topic under the cursor")

type tickMsg time.Time

type directoryMsg struct {
	names []models.DeviceName
	err   error
}

type topicsMsg struct {
	requested reconcile.Selection
	result    topicsrv.TopicsResult
	err       error
}

type pushResultMsg struct {
	result dispatch.Result
}

type queueClosedMsg struct{}

// Init loads the directory and starts the reconciliation tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refreshDirectory(), m.scheduleTick(), m.waitForResult())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.fetchIfNeeded(), m.scheduleTick())
	case directoryMsg:
		m.refreshing = false

		if msg.err != nil {
			m.engine.ApplyDirectoryError(msg.err)
		} else {
			m.engine.ApplyDirectory(msg.names)
		}

		m.clampCursors()

		return m, nil
	case topicsMsg:
		m.engine.ApplyTopics(msg.requested, msg.result, msg.err)
		m.clampCursors()

		return m, nil
	case pushResultMsg:
		m.engine.ApplyPushResult(msg.result)

		return m, m.waitForResult()
	case queueClosedMsg:
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}

		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchIfNeeded starts a topic fetch when the selection changed since the
// last one, or a reload was asked for. It returns nil otherwise.
func (m *Model) fetchIfNeeded() tea.Cmd {
	requested, ok := m.engine.BeginRefetch()
	if !ok {
		return nil
	}

	ctx := m.ctx
	fetcher := m.fetcher

	return func() tea.Msg {
		result, err := fetcher.FetchTopics(ctx, requested.Selected())

		return topicsMsg{requested: requested, result: result, err: err}
	}
}

func (m *Model) refreshDirectory() tea.Cmd {
	if m.refreshing {
		return nil
	}

	m.refreshing = true

	ctx := m.ctx
	directory := m.directory

	return func() tea.Msg {
		names, err := directory.ListDevices(ctx)

		return directoryMsg{names: names, err: err}
	}
}

func (m *Model) waitForResult() tea.Cmd {
	results := m.queue.Results()
	stop := m.stopListening
	log := m.logger

	return func() tea.Msg {
		select {
		case <-stop:
			return nil
		case res, ok := <-results:
			if !ok {
				return queueClosedMsg{}
			}

			select {
			case <-stop:
				logDetachedResult(log, res)
				return nil
			default:
			}

			return pushResultMsg{result: res}
		}
	}
}

// logDetachedResult records a push that finished after the UI went away.
func logDetachedResult(log logger.Logger, res dispatch.Result) {
	if res.Err != nil {
		log.Warn().Err(res.Err).Str("record", res.Request.Key().String()).Msg("Push failed after console exit")
		return
	}

	log.Debug().Str("record", res.Request.Key().String()).Msg("Push finished after console exit")
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

		return m, tea.Quit
	case key.Matches(msg, m.keys.SwitchPane):
		m.focus = (m.focus + 1) % 2
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		if m.focus == paneDevices {
			m.toggleDevice()
		}
	case key.Matches(msg, m.keys.RefreshDevice):
		return m, m.refreshDirectory()
	case key.Matches(msg, m.keys.ReloadTopics):
		m.engine.ForceRefetch()
	case key.Matches(msg, m.keys.Interest):
		m.editSelected(func(r models.TopicRecord) models.Edit { return models.InterestEdit(!r.Interested) })
	case key.Matches(msg, m.keys.Proxy):
		m.editSelected(func(r models.TopicRecord) models.Edit { return models.ProxyEdit(!r.Proxy) })
	case key.Matches(msg, m.keys.CycleUp):
		m.editSelected(func(r models.TopicRecord) models.Edit { return models.CycleEdit(r.Cycle + 1) })
	case key.Matches(msg, m.keys.CycleDown):
		m.editSelected(func(r models.TopicRecord) models.Edit { return models.CycleEdit(r.Cycle - 1) })
	case key.Matches(msg, m.keys.TypeCycle):
		return m, m.startCycleInput()
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.focus == paneDevices {
		m.deviceCursor = clamp(m.deviceCursor+delta, len(m.engine.Devices()))
		return
	}

	m.topicCursor = clamp(m.topicCursor+delta, len(m.engine.Rows()))
}

func (m *Model) toggleDevice() {
	device, ok := m.selectedDevice()
	if !ok {
		return
	}

	if err := m.engine.Toggle(device); err != nil {
		m.logger.Warn().Err(err).Str("device", string(device)).Msg("Cannot toggle device")
	}
}

// editSelected applies the edit built by mk to the record under the cursor
// and queues the push it implies.
func (m *Model) editSelected(mk func(models.TopicRecord) models.Edit) {
	if m.focus != paneTopics {
		return
	}

	row, ok := m.selectedRow()
	if !ok {
		return
	}

	m.submit(row.Record, mk(row.Record))
}

func (m *Model) submit(rec models.TopicRecord, edit models.Edit) {
	req, err := m.engine.Edit(rec.Device, rec.Address, edit)
	if err != nil || req == nil {
		return
	}

	if err := m.queue.Enqueue(*req); err != nil {
		m.engine.EditRejected(req, err)
	}
}

func (m *Model) startCycleInput() tea.Cmd {
	if m.focus != paneTopics {
		return nil
	}

	row, ok := m.selectedRow()
	if !ok {
		return nil
	}

	if !row.Record.Interested {
		m.notice = "enable interest before setting a cycle"
		return nil
	}

	m.editing = true
	m.cycleInput.SetValue(fmt.Sprint(row.Record.Cycle))
	m.cycleInput.CursorEnd()
	m.cycleInput.Focus()

	return textinput.Blink
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // Default case forwards everything else to the input
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true

		return m, tea.Quit
	case tea.KeyEsc:
		m.stopCycleInput()

		return m, nil
	case tea.KeyEnter:
		cycle, err := models.ParseCycle(m.cycleInput.Value())
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}

		m.stopCycleInput()

		if row, ok := m.selectedRow(); ok {
			m.submit(row.Record, models.CycleEdit(cycle))
		}

		return m, nil
	default:
		var cmd tea.Cmd

		m.cycleInput, cmd = m.cycleInput.Update(msg)

		return m, cmd
	}
}

func (m *Model) stopCycleInput() {
	m.editing = false
	m.cycleInput.Blur()
	m.cycleInput.Reset()
}

func (m *Model) copySelected() {
	row, ok := m.selectedRow()
	if !ok {
		m.notice = errNothingToCopy.Error()
		return
	}

	key := row.Record.Key().String()

	if err := m.copyText(key); err != nil {
		m.notice = "Failed to copy to clipboard"
		m.logger.Warn().Err(err).Msg("Clipboard write failed")

		return
	}

	m.notice = "Copied " + key + " to clipboard"
}
