package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/market"
)

// registerChecks registers every check across the three categories.
func (c *Checker) registerChecks() {
	c.add("config-file", CategoryConfig, c.checkConfigFile)
	c.add("watchlist", CategoryConfig, c.checkWatchlist)
	c.add("api-key", CategoryConfig, c.checkAPIKey)

	if c.prober != nil {
		c.add("finnhub-quote", CategoryNetwork, c.checkFinnhub)
		c.add("yahoo-crumb", CategoryNetwork, c.checkCrumb)
		c.add("market-status", CategoryNetwork, c.checkMarketStatus)
	}

	c.add("log-dir", CategoryRuntime, c.checkLogDir)
}

// effective loads the merged configuration, or the zero Config on error.
func (c *Checker) effective() (config.Config, error) {
	cfg, _, err := config.Effective(c.configPath)
	return cfg, err
}

// ---------------------------------------------------------------------------
// Config checks
// ---------------------------------------------------------------------------

func (c *Checker) checkConfigFile(_ context.Context) CheckResult {
	if !config.Exists(c.configPath) {
		return CheckResult{Status: StatusWarn, Message: "not created yet, defaults in use"}
	}
	if _, err := config.Load(c.configPath); err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	return CheckResult{Status: StatusPass, Message: c.configPath}
}

func (c *Checker) checkWatchlist(_ context.Context) CheckResult {
	cfg, err := c.effective()
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	if len(cfg.Stocks) == 0 {
		return CheckResult{Status: StatusWarn, Message: "watchlist is empty"}
	}
	for _, ve := range config.Validate(cfg) {
		if ve.Field != "api_key" {
			return CheckResult{Status: StatusWarn, Message: ve.Error()}
		}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d symbols", len(cfg.Stocks))}
}

func (c *Checker) checkAPIKey(_ context.Context) CheckResult {
	cfg, err := c.effective()
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	if !cfg.HasAPIKey() {
		return CheckResult{Status: StatusFail, Message: "no Finnhub key; run --tui to set one"}
	}
	local, err := config.Load(c.configPath)
	if err == nil && !local.HasAPIKey() {
		return CheckResult{Status: StatusPass, Message: "from shared config or environment"}
	}
	return CheckResult{Status: StatusPass, Message: "configured"}
}

// ---------------------------------------------------------------------------
// Network checks
// ---------------------------------------------------------------------------

func (c *Checker) checkFinnhub(ctx context.Context) CheckResult {
	cfg, err := c.effective()
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	if !cfg.HasAPIKey() {
		return CheckResult{Status: StatusWarn, Message: "skipped, no API key"}
	}
	symbol := "SPY"
	if len(cfg.Stocks) > 0 {
		symbol = cfg.Stocks[0]
	}
	q, err := c.prober.FetchQuote(ctx, symbol, cfg.APIKey)
	if err != nil {
		return CheckResult{Status: networkStatus(err), Message: err.Error()}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%s %.2f", symbol, q.Price)}
}

func (c *Checker) checkCrumb(ctx context.Context) CheckResult {
	if _, err := c.prober.Crumbs().Get(ctx); err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	return CheckResult{Status: StatusPass, Message: "handshake ok"}
}

func (c *Checker) checkMarketStatus(ctx context.Context) CheckResult {
	st, err := c.prober.FetchMarketStatus(ctx)
	if err != nil {
		return CheckResult{Status: networkStatus(err), Message: err.Error()}
	}
	msg := fmt.Sprintf("10Y-3M spread %+.2f", st.Spread())
	if st.Inverted() {
		msg += " (inverted)"
	}
	return CheckResult{Status: StatusPass, Message: msg}
}

// networkStatus downgrades "no data" answers to a warning: the upstream is
// reachable, it just had nothing for the request.
func networkStatus(err error) Status {
	if market.IsKind(err, market.KindEmpty) {
		return StatusWarn
	}
	return StatusFail
}

// ---------------------------------------------------------------------------
// Runtime checks
// ---------------------------------------------------------------------------

func (c *Checker) checkLogDir(_ context.Context) CheckResult {
	if c.logPath == "" {
		return CheckResult{Status: StatusWarn, Message: "no log file configured"}
	}
	dir := filepath.Dir(c.logPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return CheckResult{Status: StatusFail, Message: dir + " is not writable"}
		}
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return CheckResult{Status: StatusPass, Message: dir}
}
