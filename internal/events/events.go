// Package events carries everything that can happen to the dashboard through
// one ordered, unbounded channel. Producers publish; exactly one consumer
// reads Bus.Events and applies each event to the application state.
package events

import (
	"time"

	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/market"
)

// Event is implemented by every type the bus carries.
type Event interface {
	event()
}

// KeyCode identifies a key press. Printable keys use KeyRune.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyUp
	KeyDown
	KeyDelete
	KeyCtrlC
)

// String returns a short name for the key code.
func (k KeyCode) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyEnter:
		return "enter"
	case KeyEsc:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyDelete:
		return "delete"
	case KeyCtrlC:
		return "ctrl+c"
	}
	return "unknown"
}

// Tick forces a render pass. It carries no state change.
type Tick struct {
	At time.Time
}

// KeyPress is one key read from the terminal.
type KeyPress struct {
	Code KeyCode
	Rune rune // set when Code is KeyRune
}

// Paste is a bracketed paste read from the terminal.
type Paste struct {
	Text string
}

// QuoteFetched carries the result of a quote fetch for Symbol.
type QuoteFetched struct {
	Symbol string
	Quote  market.Quote
	Err    error
}

// HistoryFetched carries the result of a history fetch for Symbol.
type HistoryFetched struct {
	Symbol string
	Points []market.Point
	Err    error
}

// DetailsFetched carries the result of a fundamentals fetch for Symbol.
type DetailsFetched struct {
	Symbol  string
	Details market.Fundamentals
	Err     error
}

// SearchFetched carries the result of a symbol search for Query.
type SearchFetched struct {
	Query   string
	Results []market.SearchResult
	Err     error
}

// MarketFetched carries the result of a periodic market status poll.
type MarketFetched struct {
	Status market.Status
	Err    error
}

// ConfigChanged reports that the config file was edited on disk.
type ConfigChanged struct {
	Config config.Config
	Err    error
}

func (Tick) event()           {}
func (KeyPress) event()       {}
func (Paste) event()          {}
func (QuoteFetched) event()   {}
func (HistoryFetched) event() {}
func (DetailsFetched) event() {}
func (SearchFetched) event()  {}
func (MarketFetched) event()  {}
func (ConfigChanged) event()  {}
