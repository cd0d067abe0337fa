// Package tui implements the interactive player on bubbletea: a station
// list with filtering, favorites, and a now-playing pane fed by the
// playback coordinator's events.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/radiotray/internal/app"
	"github.com/cristianoliveira/radiotray/internal/catalog"
	"github.com/cristianoliveira/radiotray/internal/player"
	"github.com/cristianoliveira/radiotray/internal/station"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	volumeStep    = 0.05
)

type (
	// stationsLoadedMsg carries a freshly loaded station collection.
	stationsLoadedMsg []station.Station
	// playerEventMsg wraps one coordinator event into the tea loop.
	playerEventMsg struct{ event player.Event }
	// playerClosedMsg signals the coordinator's event channel closed.
	playerClosedMsg struct{}
)

// stationItem adapts a station to the bubbles list widget.
type stationItem struct {
	station  station.Station
	favorite bool
}

func (i stationItem) Title() string {
	if i.favorite {
		return "* " + i.station.Name
	}
	return "  " + i.station.Name
}

func (i stationItem) Description() string {
	desc := i.station.Country
	if i.station.Tags != "" {
		desc += " · " + i.station.Tags
	}
	return desc
}

func (i stationItem) FilterValue() string { return i.station.Name }

// Model is the bubbletea model for the interactive player. All state
// mutations happen inside Update, on the program goroutine.
type Model struct {
	app    *app.App
	events <-chan player.Event

	list      list.Model
	filter    textinput.Model
	filtering bool

	state  player.State
	meta   map[string]string
	status string

	width  int
	height int
}

// NewModel creates the TUI model. The app must have an engine attached.
func NewModel(a *app.App) *Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, defaultWidth, defaultHeight-6)
	l.Title = "radiotray"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false) // filtering goes through the catalog
	l.SetShowHelp(false)

	filter := textinput.New()
	filter.Placeholder = "filter by name, country, or tags"
	filter.Prompt = "/ "

	return &Model{
		app:    a,
		events: a.Player().Events(),
		list:   l,
		filter: filter,
		state:  player.StateIdle,
		meta:   make(map[string]string),
		status: "Loading stations...",
	}
}

// Init loads the stations and starts consuming player events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadStationsCmd(false), m.waitForEvent())
}

// loadStationsCmd fetches the collection off the update loop; the
// result comes back as a message and is applied to the catalog inside
// Update, on the program goroutine.
func (m *Model) loadStationsCmd(force bool) tea.Cmd {
	return func() tea.Msg {
		return stationsLoadedMsg(m.app.FetchStations(context.Background(), force))
	}
}

// waitForEvent blocks on the coordinator's channel for the next event.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return playerClosedMsg{}
		}
		return playerEventMsg{event: ev}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)
		return m, nil
	case stationsLoadedMsg:
		m.app.ApplyStations(msg)
		if len(msg) == 0 && m.app.Catalog.ViewMode() == catalog.ViewAll {
			m.status = "No stations found"
		} else {
			m.status = ""
		}
		m.syncList()
		return m, nil
	case playerEventMsg:
		m.handlePlayerEvent(msg.event)
		return m, m.waitForEvent()
	case playerClosedMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.app.Stop()
		return m, tea.Quit
	case "enter":
		if item, ok := m.list.SelectedItem().(stationItem); ok {
			if err := m.app.PlayStation(item.station); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
			}
		}
		return m, nil
	case "s":
		m.app.Stop()
		return m, nil
	case "f":
		if item, ok := m.list.SelectedItem().(stationItem); ok {
			m.app.Favorites.Toggle(item.station)
			m.rememberSelection()
			m.syncList()
		}
		return m, nil
	case "tab":
		m.rememberSelection()
		if m.app.Catalog.ViewMode() == catalog.ViewAll {
			m.app.Catalog.SetViewMode(catalog.ViewFavorites)
		} else {
			m.app.Catalog.SetViewMode(catalog.ViewAll)
		}
		m.filter.SetValue("")
		m.syncList()
		return m, nil
	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	case "r":
		m.status = "Refreshing stations..."
		return m, m.loadStationsCmd(true)
	case "+", "=":
		m.app.SetVolume(m.app.Settings().Volume + volumeStep)
		return m, nil
	case "-":
		m.app.SetVolume(m.app.Settings().Volume - volumeStep)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.rememberSelection()
	return m, cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.app.Catalog.SetFilter("")
		m.syncList()
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.app.Catalog.SetFilter(m.filter.Value())
	m.syncList()
	return m, cmd
}

func (m *Model) handlePlayerEvent(ev player.Event) {
	switch ev := ev.(type) {
	case player.StateChanged:
		m.state = ev.State
		if ev.State != player.StatePlaying {
			m.meta = make(map[string]string)
		}
	case player.MetadataChanged:
		m.meta[ev.Key] = ev.Value
	case player.PlaybackError:
		m.status = ev.Message
	}
}

// rememberSelection mirrors the widget cursor into the catalog.
func (m *Model) rememberSelection() {
	if item, ok := m.list.SelectedItem().(stationItem); ok {
		m.app.Catalog.Select(item.station.StationUUID)
	}
}

// syncList rebuilds the widget items from the catalog's display list and
// restores the cursor onto the selected station.
func (m *Model) syncList() {
	display := m.app.Catalog.DisplayList()
	items := make([]list.Item, len(display))
	cursor := 0
	for i, s := range display {
		items[i] = stationItem{station: s, favorite: m.app.Favorites.IsFavorite(s.StationUUID)}
		if s.StationUUID == m.app.Catalog.SelectedUUID() {
			cursor = i
		}
	}
	m.list.SetItems(items)
	m.list.Select(cursor)
}

// Run starts the interactive player.
func Run(a *app.App) error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
