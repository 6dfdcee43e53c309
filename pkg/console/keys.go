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

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	SwitchPane    key.Binding
	Up            key.Binding
	Down          key.Binding
	Select        key.Binding
	Interest      key.Binding
	Proxy         key.Binding
	CycleUp       key.Binding
	CycleDown     key.Binding
	TypeCycle     key.Binding
	ReloadTopics  key.Binding
	RefreshDevice key.Binding
	Copy          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		SwitchPane:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pane")),
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:        key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "select device")),
		Interest:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "interest")),
		Proxy:         key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "proxy")),
		CycleUp:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "cycle up")),
		CycleDown:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "cycle down")),
		TypeCycle:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "type cycle")),
		ReloadTopics:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload topics")),
		RefreshDevice: key.NewBinding(key.WithKeys("ctrl+r", "f5"), key.WithHelp("ctrl+r", "refresh devices")),
		Copy:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPane, k.Select, k.Interest, k.Proxy, k.TypeCycle, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchPane, k.Select},
		{k.Interest, k.Proxy, k.CycleUp, k.CycleDown, k.TypeCycle},
		{k.ReloadTopics, k.RefreshDevice, k.Copy, k.Quit},
	}
}
