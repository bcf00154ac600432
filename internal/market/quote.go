package market

import (
	"context"
	"errors"
	"net/url"
)

// Quote is the last traded price and the day's percent change.
type Quote struct {
	Price   float64
	Percent float64
}

// finnhubQuote mirrors the upstream payload. Unknown symbols come back with a
// zero price and null change fields rather than an HTTP error.
type finnhubQuote struct {
	Price   float64  `json:"c"`
	Percent *float64 `json:"dp"`
}

// FetchQuote fetches the real-time quote for symbol. apiKey is the Finnhub
// token taken from the user's configuration.
func (c *Client) FetchQuote(ctx context.Context, symbol, apiKey string) (Quote, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", apiKey)

	var raw finnhubQuote
	if err := c.getJSON(ctx, "quote", symbol, c.finnhubURL+"/quote?"+q.Encode(), &raw); err != nil {
		return Quote{}, err
	}

	if raw.Price == 0 && raw.Percent == nil {
		return Quote{}, newError(KindEmpty, "quote", symbol, errors.New("no quote available"))
	}

	out := Quote{Price: raw.Price}
	if raw.Percent != nil {
		out.Percent = *raw.Percent
	}
	return out, nil
}
