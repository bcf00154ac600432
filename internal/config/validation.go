package config

import (
	"fmt"
	"strings"
)

// MaxSymbolLen bounds the length of a ticker symbol.
const MaxSymbolLen = 15

// ValidationError describes a rejected symbol.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single validation error.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// NormalizeSymbol trims and upper-cases a user-typed symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidateSymbol checks an already normalized symbol. Letters, digits and the
// punctuation used by index, class-share and FX tickers (^ . - =) are allowed.
func ValidateSymbol(sym string) error {
	if sym == "" {
		return ValidationError{Field: "symbol", Message: "required field is empty"}
	}
	if len(sym) > MaxSymbolLen {
		return ValidationError{
			Field:   "symbol",
			Message: fmt.Sprintf("must be at most %d characters, got %d", MaxSymbolLen, len(sym)),
		}
	}
	for _, r := range sym {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '^', r == '.', r == '-', r == '=':
		default:
			return ValidationError{
				Field:   "symbol",
				Message: fmt.Sprintf("invalid character %q in %s", r, sym),
			}
		}
	}
	return nil
}

// Validate checks a whole config and returns every issue found rather than
// stopping at the first one.
func Validate(cfg Config) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool, len(cfg.Stocks))
	for i, s := range cfg.Stocks {
		if err := ValidateSymbol(s); err != nil {
			ve := err.(ValidationError)
			ve.Field = fmt.Sprintf("stocks[%d]", i)
			errs = append(errs, ve)
			continue
		}
		if seen[s] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("stocks[%d]", i),
				Message: fmt.Sprintf("duplicate symbol %s", s),
			})
		}
		seen[s] = true
	}

	if !cfg.HasAPIKey() {
		errs = append(errs, ValidationError{Field: "api_key", Message: "required field is empty"})
	}
	return errs
}
