package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", FileName)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultStocks, cfg.Stocks)
	assert.False(t, cfg.HasAPIKey())
	assert.False(t, Exists(path))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", FileName)
	want := Config{Stocks: []string{"QQQ", "AAPL", "BRK.B", "^TNX"}, APIKey: "abc123"}

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSave_WritesExpectedSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Config{Stocks: []string{"SPY"}, APIKey: "k"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stocks":["SPY"],"api_key":"k"}`, string(data))
}

func TestLoad_NormalizesAndDedupes(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"stocks":[" spy","QQQ","SPY","","bad sym"],"api_key":" k "}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"SPY", "QQQ"}, cfg.Stocks)
	assert.Equal(t, "k", cfg.APIKey)
}

func TestLoad_MalformedIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"stocks":`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestStore(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, s.Save(Config{Stocks: []string{"MSFT"}, APIKey: "x"}))

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, cfg.Stocks)
}

func TestValidateSymbol(t *testing.T) {
	for _, ok := range []string{"AAPL", "BRK.B", "^TNX", "EURUSD=X", "BTC-USD"} {
		assert.NoError(t, ValidateSymbol(ok), ok)
	}
	for _, bad := range []string{"", "A B", "AAPL!", "ABCDEFGHIJKLMNOP"} {
		assert.Error(t, ValidateSymbol(bad), bad)
	}
}

func TestValidate(t *testing.T) {
	errs := Validate(Config{Stocks: []string{"SPY", "SPY", "a b"}})
	require.Len(t, errs, 3)
	assert.Equal(t, "stocks[1]", errs[0].Field)
	assert.Equal(t, "stocks[2]", errs[1].Field)
	assert.Equal(t, "api_key", errs[2].Field)
}

func TestMerge(t *testing.T) {
	shared := Config{Stocks: []string{"VTI"}, APIKey: "shared-key"}

	// No local file: both fields come from the shared source.
	got := Merge(Default(), false, shared)
	assert.Equal(t, Config{Stocks: []string{"VTI"}, APIKey: "shared-key"}, got)

	// Local file without a key: only the key is filled in.
	got = Merge(Config{Stocks: []string{"SPY"}}, true, shared)
	assert.Equal(t, Config{Stocks: []string{"SPY"}, APIKey: "shared-key"}, got)

	// Local key wins once populated.
	got = Merge(Config{Stocks: []string{"SPY"}, APIKey: "local"}, true, shared)
	assert.Equal(t, "local", got.APIKey)
}

func TestLoadShared_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.yaml"), []byte("api_key: from-file\nstocks: [spy, qqq]\n"), 0o644))

	s, err := LoadShared(dir)
	require.NoError(t, err)
	assert.Equal(t, Config{Stocks: []string{"SPY", "QQQ"}, APIKey: "from-file"}, s.Config())
	assert.Equal(t, filepath.Join(dir, "shared.yaml"), s.File())

	t.Setenv("WAYBAR_FINANCE_API_KEY", "from-env")
	t.Setenv("WAYBAR_FINANCE_STOCKS", "tsla, nvda")
	s, err = LoadShared(dir)
	require.NoError(t, err)
	assert.Equal(t, Config{Stocks: []string{"TSLA", "NVDA"}, APIKey: "from-env"}, s.Config())
}

func TestLoadShared_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WAYBAR_FINANCE_API_KEY=dotenv-key\n"), 0o644))
	t.Setenv("WAYBAR_FINANCE_API_KEY", "")
	require.NoError(t, os.Unsetenv("WAYBAR_FINANCE_API_KEY"))

	s, err := LoadShared(dir)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", s.Config().APIKey)
	assert.Empty(t, s.File())
}

func TestWatcher_ReportsExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	w, err := NewWatcher(path, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := w.Watch(ctx)

	require.NoError(t, Save(path, Config{Stocks: []string{"IBM"}, APIKey: "k"}))

	select {
	case ch := <-changes:
		require.NoError(t, ch.Err)
		assert.Equal(t, []string{"IBM"}, ch.Config.Stocks)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}
