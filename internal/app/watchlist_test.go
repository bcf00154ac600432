package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlist_AddRejectsDuplicates(t *testing.T) {
	w := NewWatchlist([]string{"SPY", "QQQ", "SPY"})
	assert.Equal(t, []string{"SPY", "QQQ"}, w.Symbols())

	require.NoError(t, w.Add("AAPL"))
	assert.Equal(t, 2, w.Cursor())

	err := w.Add("QQQ")
	assert.ErrorIs(t, err, ErrDuplicateSymbol)
	assert.Equal(t, []string{"SPY", "QQQ", "AAPL"}, w.Symbols())
	assert.Equal(t, 2, w.Cursor())
}

func TestWatchlist_NavigationWrapsModuloLength(t *testing.T) {
	symbols := []string{"A", "B", "C", "D", "E"}
	for steps := 0; steps < 23; steps++ {
		w := NewWatchlist(symbols)
		for _i := 0; _i < steps; _i++ {
			w.Next()
		}
		assert.Equal(t, steps%len(symbols), w.Cursor(), "after %d steps down", steps)

		w = NewWatchlist(symbols)
		for _i := 0; _i < steps; _i++ {
			w.Prev()
		}
		want := ((-steps)%len(symbols) + len(symbols)) % len(symbols)
		assert.Equal(t, want, w.Cursor(), "after %d steps up", steps)
	}
}

func TestWatchlist_EmptyHasNoCursor(t *testing.T) {
	w := NewWatchlist(nil)
	assert.Equal(t, -1, w.Cursor())
	w.Next()
	w.Prev()
	assert.Equal(t, -1, w.Cursor())

	_, ok := w.Selected()
	assert.False(t, ok)
	_, ok = w.Remove()
	assert.False(t, ok)
}

func TestWatchlist_Remove(t *testing.T) {
	w := NewWatchlist([]string{"A", "B", "C"})

	// Middle: cursor stays on the row, now holding the next symbol.
	w.Next()
	removed, ok := w.Remove()
	require.True(t, ok)
	assert.Equal(t, "B", removed)
	assert.Equal(t, 1, w.Cursor())
	sel, _ := w.Selected()
	assert.Equal(t, "C", sel)

	// Last row: cursor moves up.
	removed, _ = w.Remove()
	assert.Equal(t, "C", removed)
	assert.Equal(t, 0, w.Cursor())

	// Only item: cursor unset.
	removed, _ = w.Remove()
	assert.Equal(t, "A", removed)
	assert.Equal(t, -1, w.Cursor())
	assert.Zero(t, w.Len())
}

func TestWatchlist_Replace(t *testing.T) {
	w := NewWatchlist([]string{"A", "B", "C"})
	w.Next() // B

	w.Replace([]string{"X", "B"})
	sel, _ := w.Selected()
	assert.Equal(t, "B", sel)

	w.Replace([]string{"Z"})
	assert.Equal(t, 0, w.Cursor())

	w.Replace(nil)
	assert.Equal(t, -1, w.Cursor())
}
