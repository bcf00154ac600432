package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/waybar-finance/internal/market"
)

func recv(t *testing.T, b *Bus) Event {
	t.Helper()
	select {
	case ev, ok := <-b.Events():
		require.True(t, ok, "bus closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return nil
}

func TestBus_PreservesPublishOrder(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	// Publish far more than any buffer would hold before reading anything.
	const n = 1000
	for i := 0; i < n; i++ {
		require.True(t, b.Publish(KeyPress{Code: KeyRune, Rune: rune('a' + i%26)}))
	}
	for i := 0; i < n; i++ {
		ev := recv(t, b)
		assert.Equal(t, KeyPress{Code: KeyRune, Rune: rune('a' + i%26)}, ev)
	}
}

func TestBus_ConcurrentProducersLoseNothing(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	const producers, each = 8, 200
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				b.Publish(QuoteFetched{Symbol: string(rune('A' + p)), Quote: market.Quote{Price: float64(i)}})
			}
		}(p)
	}
	wg.Wait()

	last := make(map[string]float64)
	for _i := 0; _i < producers * each; _i++ {
		ev := recv(t, b).(QuoteFetched)
		if prev, ok := last[ev.Symbol]; ok {
			assert.Greater(t, ev.Quote.Price, prev, "per-producer order violated")
		}
		last[ev.Symbol] = ev.Quote.Price
	}
	assert.Len(t, last, producers)
}

func TestBus_PublishAfterCloseIsDiscarded(t *testing.T) {
	b := New(zerolog.Nop())
	b.Close()
	b.Close()

	assert.False(t, b.Publish(Tick{}))
	_, ok := <-b.Events()
	assert.False(t, ok)
}

func TestBus_ProducerPanicIsRecovered(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	b.Go("boom", func(ctx context.Context) { panic("boom") })
	b.Go("ok", func(ctx context.Context) { b.Publish(Paste{Text: "still alive"}) })

	assert.Equal(t, Paste{Text: "still alive"}, recv(t, b))
}

func TestBus_CloseWaitsForProducers(t *testing.T) {
	b := New(zerolog.Nop())
	stopped := make(chan struct{})
	b.Go("blocker", func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	})

	b.Close()
	select {
	case <-stopped:
	default:
		t.Fatal("Close returned before producer exited")
	}
}

func TestBus_Ticker(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	b.StartTicker(5 * time.Millisecond)
	_, ok := recv(t, b).(Tick)
	assert.True(t, ok)
	_, ok = recv(t, b).(Tick)
	assert.True(t, ok)
}

type fakeFetcher struct {
	quoteDelay time.Duration
	marketErr  error
}

func (f *fakeFetcher) FetchQuote(ctx context.Context, symbol, apiKey string) (market.Quote, error) {
	select {
	case <-time.After(f.quoteDelay):
	case <-ctx.Done():
		return market.Quote{}, ctx.Err()
	}
	return market.Quote{Price: 150.25, Percent: 1.2}, nil
}

func (f *fakeFetcher) FetchHistory(ctx context.Context, symbol string) ([]market.Point, error) {
	return nil, &market.Error{Kind: market.KindEmpty, Op: "history", Symbol: symbol, Err: market.ErrEmptyHistory}
}

func (f *fakeFetcher) FetchDetails(ctx context.Context, symbol string) (market.Fundamentals, error) {
	return market.Fundamentals{Name: symbol + " Inc."}, nil
}

func (f *fakeFetcher) SearchTicker(ctx context.Context, query string) ([]market.SearchResult, error) {
	return []market.SearchResult{{Symbol: "AAPL", Name: "Apple Inc."}}, nil
}

func (f *fakeFetcher) FetchMarketStatus(ctx context.Context) (market.Status, error) {
	return market.Status{YieldLong: 4.3, YieldMid: 4.1, YieldShort: 5.2}, f.marketErr
}

func TestTasks_FetchSymbolFansOutWithoutJoining(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()
	tasks := NewTasks(b, &fakeFetcher{quoteDelay: 200 * time.Millisecond}, time.Second, zerolog.Nop())

	tasks.FetchSymbol("AAPL", "key")

	// The slow quote must not hold back the other two results.
	var got []Event
	for _i := 0; _i < 3; _i++ {
		got = append(got, recv(t, b))
	}
	_, lastIsQuote := got[2].(QuoteFetched)
	assert.True(t, lastIsQuote, "quote should arrive last, got %T", got[2])

	for _, ev := range got {
		switch e := ev.(type) {
		case QuoteFetched:
			assert.Equal(t, "AAPL", e.Symbol)
			require.NoError(t, e.Err)
			assert.Equal(t, 150.25, e.Quote.Price)
		case HistoryFetched:
			assert.Equal(t, "AAPL", e.Symbol)
			assert.ErrorIs(t, e.Err, market.ErrEmptyHistory)
		case DetailsFetched:
			assert.Equal(t, "AAPL Inc.", e.Details.Name)
		default:
			t.Fatalf("unexpected event %T", ev)
		}
	}
}

func TestTasks_FetchTimeoutBecomesEvent(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()
	tasks := NewTasks(b, &fakeFetcher{quoteDelay: time.Hour}, 20*time.Millisecond, zerolog.Nop())

	tasks.FetchSymbol("SPY", "key")
	for _i := 0; _i < 3; _i++ {
		if q, ok := recv(t, b).(QuoteFetched); ok {
			assert.ErrorIs(t, q.Err, context.DeadlineExceeded)
		}
	}
}

func TestTasks_Search(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()
	tasks := NewTasks(b, &fakeFetcher{}, 0, zerolog.Nop())

	tasks.Search("app")
	ev := recv(t, b).(SearchFetched)
	assert.Equal(t, "app", ev.Query)
	require.Len(t, ev.Results, 1)
}

func TestTasks_MarketPollerPublishesImmediately(t *testing.T) {
	b := New(zerolog.Nop())
	tasks := NewTasks(b, &fakeFetcher{marketErr: errors.New("down")}, 0, zerolog.Nop())

	require.NoError(t, tasks.StartMarketPoller(DefaultMarketSchedule))
	ev := recv(t, b).(MarketFetched)
	assert.EqualError(t, ev.Err, "down")

	done := make(chan struct{})
	go func() {
		b.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop")
	}
}

func TestTasks_BadScheduleIsError(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()
	tasks := NewTasks(b, &fakeFetcher{}, 0, zerolog.Nop())

	assert.Error(t, tasks.StartMarketPoller("not a schedule"))
}
