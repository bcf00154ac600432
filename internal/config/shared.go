package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read by the shared source,
// e.g. WAYBAR_FINANCE_API_KEY and WAYBAR_FINANCE_STOCKS.
const EnvPrefix = "WAYBAR_FINANCE"

// Shared is the centrally managed fallback source: a shared.{yaml,json,toml}
// file in one of the shared dirs, and the environment.
type Shared struct {
	v *viper.Viper
}

// LoadShared reads the shared source. A .env file in any of dirs is loaded
// into the environment first without overriding variables already set. A
// missing shared file is not an error.
func LoadShared(dirs ...string) (*Shared, error) {
	for _, dir := range dirs {
		envFile := filepath.Join(dir, ".env")
		if !Exists(envFile) {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigName("shared")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api_key")
	_ = v.BindEnv("stocks")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading shared config: %w", err)
		}
	}
	return &Shared{v: v}, nil
}

// File returns the shared config file in use, or "" when only the
// environment contributed.
func (s *Shared) File() string {
	return s.v.ConfigFileUsed()
}

// Config returns what the shared source provides, normalized.
func (s *Shared) Config() Config {
	return Normalize(Config{
		APIKey: s.v.GetString("api_key"),
		Stocks: splitSymbols(s.v.Get("stocks")),
	})
}

// splitSymbols accepts a list from a config file or a comma/space separated
// string from the environment.
func splitSymbols(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return strings.FieldsFunc(t, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	}
	return nil
}

// Merge combines the local file with the shared source. The local key wins
// once populated; the shared watchlist is used only when no local file exists.
func Merge(local Config, localExists bool, shared Config) Config {
	out := local.Clone()
	if !out.HasAPIKey() {
		out.APIKey = shared.APIKey
	}
	if !localExists && len(shared.Stocks) > 0 {
		out.Stocks = shared.Stocks
	}
	return Normalize(out)
}

// Effective loads the local config at path and fills gaps from the shared
// source found in the shared dirs.
func Effective(path string) (Config, *Shared, error) {
	local, err := Load(path)
	if err != nil {
		return Config{}, nil, err
	}
	shared, err := LoadShared(SharedDirs(filepath.Dir(path))...)
	if err != nil {
		return Config{}, nil, err
	}
	return Merge(local, Exists(path), shared.Config()), shared, nil
}
