package app

import "time"

// Mode selects how input is routed and which overlay is drawn. Exactly one
// mode is active at a time.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditingSymbol
	ModeEditingAPIKey
)

// String returns the label shown in the footer.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeEditingSymbol:
		return "ADD SYMBOL"
	case ModeEditingAPIKey:
		return "API KEY"
	}
	return "UNKNOWN"
}

// FetchStatus is the lifecycle of one fetched field.
type FetchStatus int

const (
	NotRequested FetchStatus = iota
	Loading
	Loaded
	Failed
)

// Field is a fetched value together with its lifecycle. Valid reports that
// Value holds a successful result; it stays true while a refetch of the same
// symbol is Loading so the previous value remains visible.
type Field[T any] struct {
	Status FetchStatus
	Value  T
	Valid  bool
	Err    error
}

func (f *Field[T]) begin() {
	f.Status = Loading
	f.Err = nil
}

func (f *Field[T]) succeed(v T) {
	*f = Field[T]{Status: Loaded, Value: v, Valid: true}
}

// fail records err. With keep the last good value stays visible, otherwise
// it is dropped.
func (f *Field[T]) fail(err error, keep bool) {
	f.Status = Failed
	f.Err = err
	if !keep {
		var zero T
		f.Value = zero
		f.Valid = false
	}
}

func (f *Field[T]) reset() {
	*f = Field[T]{}
}

// Level is the semantic color of a status message.
type Level int

const (
	LevelInfo Level = iota
	LevelProgress
	LevelSuccess
	LevelWarn
	LevelError
)

// MessageTTL is how long a status message stays on screen.
const MessageTTL = 8 * time.Second

// Message is the single-line status shown in the footer.
type Message struct {
	Text  string
	Level Level
	At    time.Time
}

// Visible reports whether the message should still be drawn at now.
func (m Message) Visible(now time.Time) bool {
	return m.Text != "" && now.Sub(m.At) < MessageTTL
}
