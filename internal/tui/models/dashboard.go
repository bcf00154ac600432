package models

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dallionking/waybar-finance/internal/app"
	"github.com/Dallionking/waybar-finance/internal/events"
)

// RenderFunc draws one frame from a state snapshot.
type RenderFunc func(snap app.Snapshot, width, height int, now time.Time) string

// eventMsg delivers one bus event to Update.
type eventMsg struct{ ev events.Event }

// busClosedMsg reports that the bus drained and closed.
type busClosedMsg struct{}

// DashboardModel adapts the event bus to Bubble Tea. Terminal input is
// translated into bus events; Update applies bus events to the state one at
// a time in arrival order, so the bus is the only path into the state.
type DashboardModel struct {
	bus    *events.Bus
	state  *app.State
	render RenderFunc
	clock  func() time.Time

	width  int
	height int
}

// NewDashboardModel creates the model.
func NewDashboardModel(bus *events.Bus, state *app.State, render RenderFunc) DashboardModel {
	return DashboardModel{
		bus:    bus,
		state:  state,
		render: render,
		clock:  time.Now,
		width:  80,
		height: 24,
	}
}

// Init starts pulling events from the bus.
func (m DashboardModel) Init() tea.Cmd {
	return waitForEvent(m.bus)
}

// waitForEvent blocks until the next bus event.
func waitForEvent(bus *events.Bus) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-bus.Events()
		if !ok {
			return busClosedMsg{}
		}
		return eventMsg{ev: ev}
	}
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		for _, ev := range TranslateKey(msg) {
			m.bus.Publish(ev)
		}
		return m, nil

	case eventMsg:
		m.state.Handle(msg.ev)
		if m.state.ShouldQuit() {
			return m, tea.Quit
		}
		return m, waitForEvent(m.bus)

	case busClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current snapshot.
func (m DashboardModel) View() string {
	return m.render(m.state.Snapshot(), m.width, m.height, m.clock())
}

// TranslateKey maps a terminal key to zero or more bus events. Bracketed
// pastes become a single Paste; a burst of typed runes becomes one KeyPress
// per rune.
func TranslateKey(msg tea.KeyMsg) []events.Event {
	if msg.Paste {
		return []events.Event{events.Paste{Text: string(msg.Runes)}}
	}

	code := func(c events.KeyCode) []events.Event {
		return []events.Event{events.KeyPress{Code: c}}
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return code(events.KeyCtrlC)
	case tea.KeyEnter:
		return code(events.KeyEnter)
	case tea.KeyEsc:
		return code(events.KeyEsc)
	case tea.KeyBackspace:
		return code(events.KeyBackspace)
	case tea.KeyUp:
		return code(events.KeyUp)
	case tea.KeyDown:
		return code(events.KeyDown)
	case tea.KeyDelete:
		return code(events.KeyDelete)
	case tea.KeySpace:
		return []events.Event{events.KeyPress{Code: events.KeyRune, Rune: ' '}}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		out := make([]events.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, events.KeyPress{Code: events.KeyRune, Rune: r})
		}
		return out
	}
	return nil
}
