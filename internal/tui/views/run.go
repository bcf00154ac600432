package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Dallionking/waybar-finance/internal/app"
	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/events"
	"github.com/Dallionking/waybar-finance/internal/market"
	"github.com/Dallionking/waybar-finance/internal/tui/models"
)

// Options configures the interactive dashboard.
type Options struct {
	ConfigPath     string
	Market         market.Options
	TickPeriod     time.Duration
	MarketSchedule string
	FetchTimeout   time.Duration
	Logger         zerolog.Logger
}

// RunDashboard launches the full-screen interactive dashboard and blocks
// until the user quits. The configuration is saved on the way out.
func RunDashboard(opts Options) error {
	log := opts.Logger.With().Str("component", "dashboard").Logger()

	cfg, _, err := config.Effective(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := market.NewClient(opts.Market, opts.Logger)
	if err != nil {
		return fmt.Errorf("creating market client: %w", err)
	}

	bus := events.New(opts.Logger)
	defer bus.Close()

	tasks := events.NewTasks(bus, client, orDuration(opts.FetchTimeout, events.DefaultFetchTimeout), opts.Logger)
	bus.StartTicker(orDuration(opts.TickPeriod, events.DefaultTickPeriod))

	schedule := opts.MarketSchedule
	if schedule == "" {
		schedule = events.DefaultMarketSchedule
	}
	if err := tasks.StartMarketPoller(schedule); err != nil {
		return fmt.Errorf("starting market poller: %w", err)
	}

	// Without a watcher the dashboard still works; external edits are just
	// not picked up.
	if w, err := config.NewWatcher(opts.ConfigPath, opts.Logger); err != nil {
		log.Warn().Err(err).Msg("config watcher unavailable")
	} else {
		defer w.Close()
		bus.WatchConfig(w)
	}

	store := config.NewStore(opts.ConfigPath)
	state := app.New(cfg, tasks, store, opts.Logger)

	model := models.NewDashboardModel(bus, state, Render)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	bus.Close()
	if err := state.Persist(); err != nil {
		log.Error().Err(err).Str("path", store.Path()).Msg("saving config on exit")
		if runErr == nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("running dashboard: %w", runErr)
	}
	return nil
}

func orDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
