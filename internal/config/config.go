package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// DefaultStocks is the watchlist used when no config file exists yet.
var DefaultStocks = []string{"SCHO", "SPY", "BITB", "SGOL", "QQQ"}

// Config is the persisted config.json schema.
type Config struct {
	Stocks []string `json:"stocks" mapstructure:"stocks" yaml:"stocks"`
	APIKey string   `json:"api_key,omitempty" mapstructure:"api_key" yaml:"api_key,omitempty"`
}

// Default returns the config a first run starts from: the default watchlist
// and no API key.
func Default() Config {
	return Config{Stocks: slices.Clone(DefaultStocks)}
}

// HasAPIKey reports whether a non-blank API key is configured.
func (c Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Equal reports whether two configs hold the same watchlist and key.
func (c Config) Equal(o Config) bool {
	return c.APIKey == o.APIKey && slices.Equal(c.Stocks, o.Stocks)
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	return Config{Stocks: slices.Clone(c.Stocks), APIKey: c.APIKey}
}

// Normalize upper-cases and trims every symbol, drops blanks and invalid
// symbols, and removes duplicates keeping the first occurrence.
func Normalize(cfg Config) Config {
	out := Config{
		Stocks: make([]string, 0, len(cfg.Stocks)),
		APIKey: strings.TrimSpace(cfg.APIKey),
	}
	seen := make(map[string]bool, len(cfg.Stocks))
	for _, s := range cfg.Stocks {
		sym := NormalizeSymbol(s)
		if ValidateSymbol(sym) != nil || seen[sym] {
			continue
		}
		seen[sym] = true
		out.Stocks = append(out.Stocks, sym)
	}
	return out
}

// Load reads the config file at path. A missing file yields Default() and no
// error; a file that exists but cannot be parsed is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return Normalize(cfg), nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save writes cfg to path, creating parent directories as needed. The file is
// written to a temp file in the same directory and renamed into place so a
// crash never leaves a truncated config behind.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(append(data, '\n')); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// Store binds Load and Save to one path and serializes writes. It is the
// persister handed to the dashboard.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store for the config file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the config file.
func (s *Store) Load() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Load(s.path)
}

// Save writes cfg to the config file.
func (s *Store) Save(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Save(s.path, cfg)
}
