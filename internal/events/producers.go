package events

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/market"
)

const (
	// DefaultTickPeriod is how often a Tick forces a render.
	DefaultTickPeriod = 250 * time.Millisecond

	// DefaultMarketSchedule is the cron schedule of the market status poll.
	DefaultMarketSchedule = "@every 3m"

	// DefaultFetchTimeout bounds a single on-demand fetch.
	DefaultFetchTimeout = 15 * time.Second
)

// Fetcher is the subset of the market client the producers call.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol, apiKey string) (market.Quote, error)
	FetchHistory(ctx context.Context, symbol string) ([]market.Point, error)
	FetchDetails(ctx context.Context, symbol string) (market.Fundamentals, error)
	SearchTicker(ctx context.Context, query string) ([]market.SearchResult, error)
	FetchMarketStatus(ctx context.Context) (market.Status, error)
}

// StartTicker publishes a Tick every period until the bus closes.
func (b *Bus) StartTicker(period time.Duration) {
	b.Go("ticker", func(ctx context.Context) {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				b.Publish(Tick{At: now})
			}
		}
	})
}

// WatchConfig forwards config file changes as ConfigChanged events.
func (b *Bus) WatchConfig(w *config.Watcher) {
	b.Go("config-watcher", func(ctx context.Context) {
		for ch := range w.Watch(ctx) {
			b.Publish(ConfigChanged{Config: ch.Config, Err: ch.Err})
		}
	})
}

// Tasks spawns the network-backed producers. Every task publishes exactly
// one result event, success or failure, and never touches application state.
type Tasks struct {
	bus     *Bus
	fetcher Fetcher
	timeout time.Duration
	log     zerolog.Logger
}

// NewTasks creates a task spawner publishing into bus. A zero timeout uses
// DefaultFetchTimeout.
func NewTasks(bus *Bus, fetcher Fetcher, timeout time.Duration, log zerolog.Logger) *Tasks {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Tasks{
		bus:     bus,
		fetcher: fetcher,
		timeout: timeout,
		log:     log.With().Str("component", "tasks").Logger(),
	}
}

// FetchSymbol spawns the quote, history and fundamentals fetches for symbol
// concurrently. Each result is published as its own event as soon as it
// lands; they are never joined.
func (t *Tasks) FetchSymbol(symbol, apiKey string) {
	t.log.Debug().Str("symbol", symbol).Msg("fetching symbol")

	t.bus.Go("quote:"+symbol, func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()
		q, err := t.fetcher.FetchQuote(ctx, symbol, apiKey)
		t.logResult("quote", symbol, err)
		t.bus.Publish(QuoteFetched{Symbol: symbol, Quote: q, Err: err})
	})

	t.bus.Go("history:"+symbol, func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()
		points, err := t.fetcher.FetchHistory(ctx, symbol)
		t.logResult("history", symbol, err)
		t.bus.Publish(HistoryFetched{Symbol: symbol, Points: points, Err: err})
	})

	t.bus.Go("details:"+symbol, func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()
		d, err := t.fetcher.FetchDetails(ctx, symbol)
		t.logResult("details", symbol, err)
		t.bus.Publish(DetailsFetched{Symbol: symbol, Details: d, Err: err})
	})
}

// Search spawns a symbol search for query.
func (t *Tasks) Search(query string) {
	t.bus.Go("search", func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()
		results, err := t.fetcher.SearchTicker(ctx, query)
		t.logResult("search", query, err)
		t.bus.Publish(SearchFetched{Query: query, Results: results, Err: err})
	})
}

// PollMarket fetches the market status once and publishes the result.
func (t *Tasks) PollMarket(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	s, err := t.fetcher.FetchMarketStatus(ctx)
	t.logResult("market", "", err)
	t.bus.Publish(MarketFetched{Status: s, Err: err})
}

// StartMarketPoller polls the market status immediately and then on
// schedule (a cron expression such as "@every 3m") until the bus closes.
// Runs never overlap: a tick that arrives while a poll is in flight is
// skipped.
func (t *Tasks) StartMarketPoller(schedule string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		t.PollMarket(t.bus.Context())
	})
	if err != nil {
		return err
	}

	t.bus.Go("market-poller", func(ctx context.Context) {
		c.Start()
		t.log.Info().Str("schedule", schedule).Msg("market poller started")

		t.PollMarket(ctx)

		<-ctx.Done()
		<-c.Stop().Done()
		t.log.Info().Msg("market poller stopped")
	})
	return nil
}

func (t *Tasks) logResult(op, subject string, err error) {
	if err != nil {
		t.log.Warn().Err(err).Str("op", op).Str("subject", subject).Msg("fetch failed")
		return
	}
	t.log.Debug().Str("op", op).Str("subject", subject).Msg("fetch completed")
}
