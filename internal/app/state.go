// Package app holds the dashboard's single authoritative state and the
// three-mode input state machine that mutates it. State is owned by one
// consumer goroutine and is never locked; everything that happens arrives as
// an events.Event through Handle.
package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/events"
	"github.com/Dallionking/waybar-finance/internal/market"
)

// minSearchLen is the shortest buffer that triggers a symbol search.
const minSearchLen = 2

// Spawner starts the asynchronous work the state machine asks for. Results
// come back later as events.
type Spawner interface {
	FetchSymbol(symbol, apiKey string)
	Search(query string)
}

// Persister stores the watchlist and API key.
type Persister interface {
	Save(cfg config.Config) error
}

// State is the application state. Create it with New.
type State struct {
	mode      Mode
	watchlist Watchlist
	input     string
	apiKey    string

	// focused is the symbol whose fetch was last confirmed. Fetch results
	// for any other symbol are stale and discarded.
	focused string
	quote   Field[market.Quote]
	history Field[[]market.Point]
	stats   market.SeriesStats
	details Field[market.Fundamentals]

	search       []market.SearchResult
	searchCursor int

	market  Field[market.Status]
	message Message
	quit    bool

	// lastSaved is what this process last wrote, used to recognise the
	// watcher echo of our own saves.
	lastSaved *config.Config

	spawner   Spawner
	persister Persister
	log       zerolog.Logger
	now       func() time.Time
}

// New creates the state from the loaded config. Without an API key the
// state starts in ModeEditingAPIKey.
func New(cfg config.Config, spawner Spawner, persister Persister, log zerolog.Logger) *State {
	s := &State{
		mode:         ModeNormal,
		watchlist:    NewWatchlist(cfg.Stocks),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		searchCursor: -1,
		spawner:      spawner,
		persister:    persister,
		log:          log.With().Str("component", "state").Logger(),
		now:          time.Now,
	}
	// The market poller fires immediately on startup.
	s.market.begin()

	if s.apiKey == "" {
		s.mode = ModeEditingAPIKey
		s.setMessage(LevelWarn, "Enter your Finnhub API key")
	} else {
		s.setMessage(LevelInfo, "Ready")
	}
	return s
}

// Mode returns the active mode.
func (s *State) Mode() Mode {
	return s.mode
}

// ShouldQuit reports whether a quit was requested.
func (s *State) ShouldQuit() bool {
	return s.quit
}

// Config returns the persistable part of the state.
func (s *State) Config() config.Config {
	return config.Config{Stocks: s.watchlist.Symbols(), APIKey: s.apiKey}
}

// Persist saves the watchlist and API key. It is called on the shutdown path
// and blocks until the write completes.
func (s *State) Persist() error {
	cfg := s.Config()
	if err := s.persister.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	s.lastSaved = &cfg
	return nil
}

// Handle applies one event. It is the only place state changes.
func (s *State) Handle(ev events.Event) {
	switch e := ev.(type) {
	case events.Tick:
		// Forces a render, nothing to apply.
	case events.KeyPress:
		s.handleKey(e)
	case events.Paste:
		s.handlePaste(e)
	case events.QuoteFetched:
		s.applyQuote(e)
	case events.HistoryFetched:
		s.applyHistory(e)
	case events.DetailsFetched:
		s.applyDetails(e)
	case events.SearchFetched:
		s.applySearch(e)
	case events.MarketFetched:
		s.applyMarket(e)
	case events.ConfigChanged:
		s.applyConfig(e)
	default:
		s.log.Warn().Str("event", fmt.Sprintf("%T", ev)).Msg("unhandled event")
	}
}

// ---------------------------------------------------------------------------
// Input
// ---------------------------------------------------------------------------

func (s *State) handleKey(k events.KeyPress) {
	if k.Code == events.KeyCtrlC {
		s.quit = true
		return
	}

	switch s.mode {
	case ModeNormal:
		s.normalKey(k)
	case ModeEditingSymbol:
		s.editSymbolKey(k)
	case ModeEditingAPIKey:
		s.editAPIKeyKey(k)
	}
}

func (s *State) normalKey(k events.KeyPress) {
	switch k.Code {
	case events.KeyUp:
		s.watchlist.Prev()
	case events.KeyDown:
		s.watchlist.Next()
	case events.KeyEnter:
		if sym, ok := s.watchlist.Selected(); ok {
			s.confirm(sym)
			s.setMessage(LevelProgress, fmt.Sprintf("Fetching %s...", sym))
		}
	case events.KeyDelete:
		s.deleteSelected()
	case events.KeyRune:
		switch k.Rune {
		case 'q':
			s.quit = true
		case 'a':
			s.mode = ModeEditingSymbol
			s.setInput("")
			s.setMessage(LevelWarn, "Enter Symbol...")
		case 'd':
			s.deleteSelected()
		case 'k':
			s.watchlist.Prev()
		case 'j':
			s.watchlist.Next()
		}
	}
}

func (s *State) editSymbolKey(k events.KeyPress) {
	switch k.Code {
	case events.KeyEsc:
		s.mode = ModeNormal
		s.setInput("")
		s.setMessage(LevelInfo, "Ready")
	case events.KeyEnter:
		s.commitSymbol()
	case events.KeyBackspace:
		s.backspace()
		s.maybeSearch()
	case events.KeyUp:
		s.moveSearch(-1)
	case events.KeyDown:
		s.moveSearch(1)
	case events.KeyRune:
		if !unicode.IsPrint(k.Rune) {
			return
		}
		s.setInput(s.input + string(k.Rune))
		s.maybeSearch()
	}
}

func (s *State) editAPIKeyKey(k events.KeyPress) {
	switch k.Code {
	case events.KeyEsc:
		// The key is mandatory; leaving without one exits.
		s.quit = true
	case events.KeyEnter:
		s.commitAPIKey()
	case events.KeyBackspace:
		s.backspace()
	case events.KeyRune:
		if unicode.IsPrint(k.Rune) {
			s.setInput(s.input + string(k.Rune))
		}
	}
}

func (s *State) handlePaste(p events.Paste) {
	if s.mode == ModeNormal {
		return
	}
	text := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, p.Text)
	s.setInput(s.input + text)
	s.setMessage(LevelWarn, "Pasted text")
	if s.mode == ModeEditingSymbol {
		s.maybeSearch()
	}
}

// setInput replaces the buffer. Any change invalidates the search results.
func (s *State) setInput(v string) {
	s.input = v
	s.search = nil
	s.searchCursor = -1
}

func (s *State) backspace() {
	if s.input == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.input)
	s.setInput(s.input[:len(s.input)-size])
}

func (s *State) maybeSearch() {
	q := strings.TrimSpace(s.input)
	if utf8.RuneCountInString(q) < minSearchLen {
		return
	}
	s.spawner.Search(q)
}

func (s *State) moveSearch(delta int) {
	n := len(s.search)
	if n == 0 {
		return
	}
	if s.searchCursor < 0 {
		if delta > 0 {
			s.searchCursor = 0
		} else {
			s.searchCursor = n - 1
		}
		return
	}
	s.searchCursor = (s.searchCursor + delta + n) % n
}

func (s *State) commitSymbol() {
	raw := s.input
	if s.searchCursor >= 0 && s.searchCursor < len(s.search) {
		raw = s.search[s.searchCursor].Symbol
	}
	sym := config.NormalizeSymbol(raw)
	if sym == "" {
		return
	}
	if err := config.ValidateSymbol(sym); err != nil {
		// Stay in the editor so the typo can be fixed.
		s.setMessage(LevelError, err.Error())
		return
	}

	s.mode = ModeNormal
	s.setInput("")

	if err := s.watchlist.Add(sym); err != nil {
		if errors.Is(err, ErrDuplicateSymbol) {
			s.setMessage(LevelWarn, fmt.Sprintf("%s exists!", sym))
			return
		}
		s.setMessage(LevelError, err.Error())
		return
	}

	s.confirm(sym)
	s.setMessage(LevelProgress, fmt.Sprintf("Adding %s...", sym))
}

func (s *State) commitAPIKey() {
	key := strings.TrimSpace(s.input)
	if key == "" {
		return
	}
	s.apiKey = key
	s.setInput("")
	s.mode = ModeNormal

	if err := s.Persist(); err != nil {
		s.log.Error().Err(err).Msg("persisting api key")
		s.setMessage(LevelError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}
	s.setMessage(LevelSuccess, "API Key Saved! Press 'q' to quit.")
}

// confirm focuses sym and spawns its three fetches. Switching to another
// symbol drops the old panels; refetching the same symbol keeps them visible
// until fresh values land.
func (s *State) confirm(sym string) {
	if sym != s.focused {
		s.clearPanels()
		s.focused = sym
	}
	s.quote.begin()
	s.history.begin()
	s.details.begin()

	if s.apiKey == "" {
		s.setMessage(LevelError, "No API key configured")
		return
	}
	s.spawner.FetchSymbol(sym, s.apiKey)
}

func (s *State) deleteSelected() {
	removed, ok := s.watchlist.Remove()
	if !ok {
		return
	}
	if removed == s.focused {
		s.focused = ""
		s.clearPanels()
	}
	s.setMessage(LevelInfo, fmt.Sprintf("Removed %s", removed))
}

func (s *State) clearPanels() {
	s.quote.reset()
	s.history.reset()
	s.details.reset()
	s.stats = market.SeriesStats{}
}

// ---------------------------------------------------------------------------
// Fetch results
// ---------------------------------------------------------------------------

// stale reports whether a result for sym arrived after focus moved on.
func (s *State) stale(op, sym string) bool {
	if sym == s.focused {
		return false
	}
	s.log.Debug().Str("op", op).Str("symbol", sym).Str("focused", s.focused).Msg("discarding stale result")
	return true
}

func (s *State) applyQuote(e events.QuoteFetched) {
	if s.stale("quote", e.Symbol) {
		return
	}
	if e.Err != nil {
		s.quote.fail(e.Err, true)
		s.setMessage(LevelError, fmt.Sprintf("Error: %v", e.Err))
		return
	}
	s.quote.succeed(e.Quote)
	s.setMessage(LevelSuccess, fmt.Sprintf("Updated %s", e.Symbol))
}

func (s *State) applyHistory(e events.HistoryFetched) {
	if s.stale("history", e.Symbol) {
		return
	}
	if e.Err != nil {
		s.history.fail(e.Err, false)
		s.stats = market.SeriesStats{}
		return
	}
	s.history.succeed(e.Points)
	s.stats = market.Stats(e.Points)
}

func (s *State) applyDetails(e events.DetailsFetched) {
	if s.stale("details", e.Symbol) {
		return
	}
	if e.Err != nil {
		s.details.fail(e.Err, false)
		s.setMessage(LevelError, fmt.Sprintf("Details fetch failed for %s: %v", e.Symbol, e.Err))
		return
	}
	s.details.succeed(e.Details)
}

func (s *State) applySearch(e events.SearchFetched) {
	if s.mode != ModeEditingSymbol || e.Query != strings.TrimSpace(s.input) {
		return
	}
	if e.Err != nil {
		s.log.Warn().Err(e.Err).Str("query", e.Query).Msg("search failed")
		return
	}
	s.search = e.Results
	s.searchCursor = -1
	s.setMessage(LevelProgress, fmt.Sprintf("Fetched %d results", len(e.Results)))
}

func (s *State) applyMarket(e events.MarketFetched) {
	if e.Err != nil {
		s.market.fail(e.Err, true)
		return
	}
	s.market.succeed(e.Status)
}

func (s *State) applyConfig(e events.ConfigChanged) {
	if e.Err != nil {
		s.setMessage(LevelWarn, fmt.Sprintf("Config not reloaded: %v", e.Err))
		return
	}
	if s.lastSaved != nil && e.Config.Equal(*s.lastSaved) {
		return
	}
	if e.Config.Equal(s.Config()) {
		return
	}

	s.watchlist.Replace(e.Config.Stocks)
	if s.focused != "" && !s.watchlist.Contains(s.focused) {
		s.focused = ""
		s.clearPanels()
	}
	if e.Config.HasAPIKey() {
		s.apiKey = strings.TrimSpace(e.Config.APIKey)
		if s.mode == ModeEditingAPIKey {
			s.mode = ModeNormal
			s.setInput("")
		}
	}
	s.log.Info().Strs("stocks", e.Config.Stocks).Msg("applied external config change")
	s.setMessage(LevelInfo, "Config reloaded")
}

func (s *State) setMessage(level Level, text string) {
	s.message = Message{Text: text, Level: level, At: s.now()}
}

// ---------------------------------------------------------------------------
// Snapshot
// ---------------------------------------------------------------------------

// Snapshot is a read-only copy of everything the render pass draws.
type Snapshot struct {
	Mode         Mode
	Symbols      []string
	Cursor       int
	Input        string
	Focused      string
	Quote        Field[market.Quote]
	History      Field[[]market.Point]
	Stats        market.SeriesStats
	Details      Field[market.Fundamentals]
	Search       []market.SearchResult
	SearchCursor int
	Market       Field[market.Status]
	Message      Message
}

// Snapshot copies the current state for rendering.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Mode:         s.mode,
		Symbols:      s.watchlist.Symbols(),
		Cursor:       s.watchlist.Cursor(),
		Input:        s.input,
		Focused:      s.focused,
		Quote:        s.quote,
		History:      s.history,
		Stats:        s.stats,
		Details:      s.details,
		Search:       slices.Clone(s.search),
		SearchCursor: s.searchCursor,
		Market:       s.market,
		Message:      s.message,
	}
}
