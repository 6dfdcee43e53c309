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
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/topic-console/pkg/reconcile"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var content strings.Builder

	title := m.styles.title.Render("Topic Console")
	if m.serverURL != "" {
		title += m.styles.muted.Render("  " + m.serverURL)
	}

	content.WriteString(title + "\n\n")

	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderDevices(), " ", m.renderTopics()))
	content.WriteString("\n")

	if m.editing {
		content.WriteString(m.cycleInput.View() + "\n")
	}

	content.WriteString(m.renderStatus() + "\n")
	content.WriteString(m.help.FullHelpView(m.keys.FullHelp()))

	app := m.styles.app
	if m.width > 0 {
		app = app.MaxWidth(m.width)
	}

	return app.Render(content.String())
}

func (m *Model) renderDevices() string {
	var b strings.Builder

	b.WriteString(m.styles.header.Render("Devices") + "\n")

	devices := m.engine.Devices()
	if len(devices) == 0 {
		b.WriteString(m.styles.muted.Render("(none)"))
	}

	for i, device := range devices {
		box := "[ ]"
		line := string(device)

		if m.engine.IsSelected(device) {
			box = "[x]"
			line = m.styles.selected.Render(line)
		}

		prefix := "  "
		if m.focus == paneDevices && i == m.deviceCursor {
			prefix = m.styles.cursor.Render("> ")
		}

		b.WriteString(prefix + box + " " + line)

		if i < len(devices)-1 {
			b.WriteString("\n")
		}
	}

	if m.engine.DirectoryErr() != nil {
		b.WriteString("\n" + m.styles.warn.Render("stale"))
	}

	style := m.styles.pane
	if m.focus == paneDevices {
		style = m.styles.activePane
	}

	return style.Render(b.String())
}

func (m *Model) renderTopics() string {
	var b strings.Builder

	b.WriteString(m.styles.header.Render(fmt.Sprintf("  %-16s %-24s %-8s %-6s %-6s %s",
		"DEVICE", "ADDRESS", "INTEREST", "PROXY", "CYCLE", "STATE")))

	rows := m.engine.Rows()
	if len(rows) == 0 {
		b.WriteString("\n" + m.styles.muted.Render("  select a device to load its topics"))
	}

	for i, row := range rows {
		prefix := "  "
		if m.focus == paneTopics && i == m.topicCursor {
			prefix = m.styles.cursor.Render("> ")
		}

		line := fmt.Sprintf("%-16s %-24s %-8s %-6s %-6d ",
			row.Record.Device, row.Record.Address,
			flag(row.Record.Interested), flag(row.Record.Proxy), row.Record.DisplayCycle())

		b.WriteString("\n" + prefix + line + m.renderState(row))
	}

	if m.engine.Fetching() {
		b.WriteString("\n" + m.styles.muted.Render("  loading…"))
	}

	style := m.styles.pane
	if m.focus == paneTopics {
		style = m.styles.activePane
	}

	return style.Render(b.String())
}

func (m *Model) renderState(row reconcile.Row) string {
	switch row.State {
	case reconcile.StatePushing:
		return m.styles.warn.Render(row.State.String())
	case reconcile.StateUnconfirmed:
		return m.styles.error.Render(row.State.String())
	case reconcile.StateIdle:
		return m.styles.muted.Render("ok")
	default:
		return row.State.String()
	}
}

func (m *Model) renderStatus() string {
	if m.notice != "" {
		return m.styles.warn.Render(m.notice)
	}

	status := m.engine.Status()
	if status.Message == "" {
		return ""
	}

	if status.Err != nil {
		return m.styles.error.Render(fmt.Sprintf("Error: %s: %v", status.Message, status.Err))
	}

	return m.styles.success.Render(status.Message)
}

func flag(on bool) string {
	if on {
		return "yes"
	}

	return "no"
}
