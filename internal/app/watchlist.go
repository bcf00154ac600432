package app

import (
	"errors"
	"slices"
)

// ErrDuplicateSymbol is returned when adding a symbol already in the list.
var ErrDuplicateSymbol = errors.New("symbol already in watchlist")

// Watchlist is the ordered, duplicate-free list of tracked symbols plus the
// selection cursor. The cursor is -1 exactly when the list is empty.
type Watchlist struct {
	symbols []string
	cursor  int
}

// NewWatchlist builds a watchlist from symbols, dropping duplicates and
// selecting the first entry.
func NewWatchlist(symbols []string) Watchlist {
	w := Watchlist{cursor: -1}
	for _, s := range symbols {
		if !w.Contains(s) {
			w.symbols = append(w.symbols, s)
		}
	}
	if len(w.symbols) > 0 {
		w.cursor = 0
	}
	return w
}

// Symbols returns a copy of the symbols in display order.
func (w *Watchlist) Symbols() []string {
	return slices.Clone(w.symbols)
}

// Len returns the number of symbols.
func (w *Watchlist) Len() int {
	return len(w.symbols)
}

// Cursor returns the selected index, or -1 when the list is empty.
func (w *Watchlist) Cursor() int {
	return w.cursor
}

// Selected returns the symbol under the cursor.
func (w *Watchlist) Selected() (string, bool) {
	if w.cursor < 0 {
		return "", false
	}
	return w.symbols[w.cursor], true
}

// Contains reports whether sym is in the list.
func (w *Watchlist) Contains(sym string) bool {
	return slices.Contains(w.symbols, sym)
}

// Add appends sym and selects it. A duplicate leaves the list untouched.
func (w *Watchlist) Add(sym string) error {
	if w.Contains(sym) {
		return ErrDuplicateSymbol
	}
	w.symbols = append(w.symbols, sym)
	w.cursor = len(w.symbols) - 1
	return nil
}

// Next moves the cursor down one row, wrapping to the top.
func (w *Watchlist) Next() {
	if len(w.symbols) == 0 {
		return
	}
	w.cursor = (w.cursor + 1) % len(w.symbols)
}

// Prev moves the cursor up one row, wrapping to the bottom.
func (w *Watchlist) Prev() {
	if len(w.symbols) == 0 {
		return
	}
	w.cursor = (w.cursor - 1 + len(w.symbols)) % len(w.symbols)
}

// Remove deletes the selected symbol and returns it. The cursor stays on the
// same row, which now holds the following symbol, or moves up when the last
// row was removed.
func (w *Watchlist) Remove() (string, bool) {
	if w.cursor < 0 {
		return "", false
	}
	removed := w.symbols[w.cursor]
	w.symbols = slices.Delete(w.symbols, w.cursor, w.cursor+1)

	switch {
	case len(w.symbols) == 0:
		w.cursor = -1
	case w.cursor >= len(w.symbols):
		w.cursor = len(w.symbols) - 1
	}
	return removed, true
}

// Replace swaps in a new symbol list, keeping the selection on the same
// symbol when it survives and clamping the cursor otherwise.
func (w *Watchlist) Replace(symbols []string) {
	selected, had := w.Selected()
	prev := w.cursor
	*w = NewWatchlist(symbols)
	if len(w.symbols) == 0 || !had {
		return
	}
	if i := slices.Index(w.symbols, selected); i >= 0 {
		w.cursor = i
		return
	}
	w.cursor = min(prev, len(w.symbols)-1)
}
