package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/market"
	"github.com/Dallionking/waybar-finance/internal/waybar"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, cfg config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func TestConfigPathCommand(t *testing.T) {
	path := writeConfig(t, config.Default())
	out, _, err := run(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestConfigCommandRedactsKey(t *testing.T) {
	path := writeConfig(t, config.Config{Stocks: []string{"SPY", "QQQ"}, APIKey: "abcdefgh1234"})
	out, _, err := run(t, "config", "--config", path, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, path)
	assert.Contains(t, out, "- SPY")
	assert.Contains(t, out, "- QQQ")
	assert.Contains(t, out, "********1234")
	assert.NotContains(t, out, "abcdefgh1234")
}

func TestRedacted(t *testing.T) {
	assert.Equal(t, "", redacted(config.Config{}).APIKey)
	assert.Equal(t, "***", redacted(config.Config{APIKey: "abc"}).APIKey)
	assert.Equal(t, "**cdef", redacted(config.Config{APIKey: "abcdef"}).APIKey)
}

func TestOneShotWaybarOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") == "SPY" {
			fmt.Fprint(w, `{"c":512.3,"dp":0.42}`)
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	t.Setenv("WAYBAR_FINANCE_FINNHUB_URL", srv.URL)

	path := writeConfig(t, config.Config{Stocks: []string{"SPY", "QQQ"}, APIKey: "k"})
	logPath := filepath.Join(t.TempDir(), "test.log")

	out, _, err := run(t, "--config", path, "--log-file", logPath)
	require.NoError(t, err)

	var got waybar.Output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "finance", got.Class)
	assert.Contains(t, got.Text, "SPY 512.30")
	assert.Contains(t, got.Text, "QQQ ???")
	assert.Equal(t, "SPY: $512.30 (0.42%)", got.Tooltip)
	assert.FileExists(t, logPath)
}

func TestOneShotWithoutKeyExitsCleanly(t *testing.T) {
	t.Setenv("WAYBAR_FINANCE_API_KEY", "")
	path := writeConfig(t, config.Config{Stocks: []string{"SPY"}})
	logPath := filepath.Join(t.TempDir(), "test.log")

	out, errOut, err := run(t, "--config", path, "--log-file", logPath)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "API key not found")
}

func TestRenderQuotes(t *testing.T) {
	var buf bytes.Buffer
	renderQuotes(&buf, []waybar.Result{
		{Symbol: "SPY", Quote: market.Quote{Price: 512.3, Percent: 0.42}},
		{Symbol: "BAD", Err: &market.Error{Kind: market.KindNetwork, Op: "quote", Symbol: "BAD", Err: errors.New("503")}},
	})
	out := buf.String()

	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "512.30")
	assert.Contains(t, out, "+0.42%")
	assert.Contains(t, out, "BAD")
	assert.Contains(t, out, "???")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "VERSION")
	assert.Contains(t, out, Version)
}
