package market

import (
	"context"
	"net/url"
)

// SearchResult is one symbol-search match.
type SearchResult struct {
	Symbol    string
	Name      string
	QuoteType string
	Exchange  string
}

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		QuoteType string `json:"quoteType"`
		ExchDisp  string `json:"exchDisp"`
	} `json:"quotes"`
}

// SearchTicker looks up instruments matching a free-text query. No matches
// is an empty slice, not an error.
func (c *Client) SearchTicker(ctx context.Context, query string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("quotesCount", "10")
	q.Set("newsCount", "0")

	var raw searchResponse
	if err := c.getJSON(ctx, "search", "", c.yahooURL+"/v1/finance/search?"+q.Encode(), &raw); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(raw.Quotes))
	for _, r := range raw.Quotes {
		if r.Symbol == "" {
			continue
		}
		name := r.ShortName
		if name == "" {
			name = r.LongName
		}
		results = append(results, SearchResult{
			Symbol:    r.Symbol,
			Name:      name,
			QuoteType: r.QuoteType,
			Exchange:  r.ExchDisp,
		})
	}
	return results, nil
}
