package market

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Reference instruments for the treasury banner.
const (
	SymbolYieldLong  = "^TNX" // 10-year
	SymbolYieldMid   = "^FVX" // 5-year
	SymbolYieldShort = "^IRX" // 13-week
)

// Status is a snapshot of the three reference treasury yields, in percent.
type Status struct {
	YieldLong  float64
	YieldMid   float64
	YieldShort float64
}

// Spread is the 10Y-3M yield-curve spread. Negative means inverted.
func (s Status) Spread() float64 {
	return s.YieldLong - s.YieldShort
}

// Inverted reports whether the curve is inverted.
func (s Status) Inverted() bool {
	return s.Spread() < 0
}

type batchQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string   `json:"symbol"`
			RegularMarketPrice *float64 `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// FetchMarketStatus fetches the three reference yields in one batch request.
// Entries are matched back by their symbol field since the upstream does not
// preserve request order.
func (c *Client) FetchMarketStatus(ctx context.Context) (Status, error) {
	crumb, err := c.crumbs.Get(ctx)
	if err != nil {
		return Status{}, err
	}

	q := url.Values{}
	q.Set("symbols", strings.Join([]string{SymbolYieldLong, SymbolYieldMid, SymbolYieldShort}, ","))
	q.Set("crumb", crumb)

	var raw batchQuoteResponse
	if err := c.getJSON(ctx, "market", "", c.yahooURL+"/v7/finance/quote?"+q.Encode(), &raw); err != nil {
		return Status{}, err
	}

	prices := make(map[string]float64, len(raw.QuoteResponse.Result))
	for _, r := range raw.QuoteResponse.Result {
		if r.RegularMarketPrice != nil {
			prices[r.Symbol] = *r.RegularMarketPrice
		}
	}

	var s Status
	for _, f := range []struct {
		symbol string
		dst    *float64
	}{
		{SymbolYieldLong, &s.YieldLong},
		{SymbolYieldMid, &s.YieldMid},
		{SymbolYieldShort, &s.YieldShort},
	} {
		v, ok := prices[f.symbol]
		if !ok {
			return Status{}, newError(KindParse, "market", "", fmt.Errorf("response is missing %s", f.symbol))
		}
		*f.dst = v
	}
	return s, nil
}
