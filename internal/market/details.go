package market

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Fundamentals holds the extended metrics for one instrument. Equities and
// funds report different subsets, so every metric is optional.
type Fundamentals struct {
	Name           string
	QuoteType      string // "EQUITY", "ETF", "MUTUALFUND", ...
	MarketCap      *float64
	PERatio        *float64
	DividendYield  *float64 // percent
	High52W        *float64
	Low52W         *float64
	TrailingReturn *float64 // percent
}

// IsFund reports whether the instrument is a fund rather than a single stock.
func (f Fundamentals) IsFund() bool {
	switch strings.ToUpper(f.QuoteType) {
	case "ETF", "MUTUALFUND", "MONEYMARKET":
		return true
	}
	return false
}

// fieldPath is one candidate location for a metric, with the factor that
// converts the upstream value into our unit.
type fieldPath struct {
	path  string
	scale float64
}

// Candidate locations in resolution order. The first path that yields a
// number wins. Paths are relative to quoteSummary.result[0].
var (
	marketCapPaths = []fieldPath{
		{`$.summaryDetail.marketCap.raw`, 1},
		{`$.price.marketCap.raw`, 1},
		// Funds report net assets instead of a market cap.
		{`$.summaryDetail.totalAssets.raw`, 1},
		{`$.defaultKeyStatistics.totalAssets.raw`, 1},
	}
	peRatioPaths = []fieldPath{
		{`$.summaryDetail.trailingPE.raw`, 1},
		{`$.summaryDetail.forwardPE.raw`, 1},
		{`$.defaultKeyStatistics.forwardPE.raw`, 1},
	}
	dividendYieldPaths = []fieldPath{
		// Fund-specific distribution yield.
		{`$.summaryDetail.yield.raw`, 100},
		{`$.summaryDetail.dividendYield.raw`, 100},
		{`$.summaryDetail.trailingAnnualDividendYield.raw`, 100},
	}
	high52WPaths = []fieldPath{
		{`$.summaryDetail.fiftyTwoWeekHigh.raw`, 1},
	}
	low52WPaths = []fieldPath{
		{`$.summaryDetail.fiftyTwoWeekLow.raw`, 1},
	}
	trailingReturnPaths = []fieldPath{
		{`$.defaultKeyStatistics.ytdReturn.raw`, 100},
		{`$.fundPerformance.trailingReturns.ytd.raw`, 100},
		{`$.defaultKeyStatistics["52WeekChange"].raw`, 100},
	}
)

var detailModules = []string{"price", "summaryDetail", "defaultKeyStatistics", "fundPerformance"}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]any `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchDetails fetches fundamentals for symbol. It needs a crumb, which is
// obtained through the client's CrumbCache.
func (c *Client) FetchDetails(ctx context.Context, symbol string) (Fundamentals, error) {
	crumb, err := c.crumbs.Get(ctx)
	if err != nil {
		return Fundamentals{}, err
	}

	q := url.Values{}
	q.Set("modules", strings.Join(detailModules, ","))
	q.Set("crumb", crumb)

	var raw quoteSummaryResponse
	rawURL := c.yahooURL + "/v10/finance/quoteSummary/" + url.PathEscape(symbol) + "?" + q.Encode()
	if err := c.getJSON(ctx, "details", symbol, rawURL, &raw); err != nil {
		return Fundamentals{}, err
	}

	if raw.QuoteSummary.Error != nil {
		return Fundamentals{}, newError(KindParse, "details", symbol, errors.New(raw.QuoteSummary.Error.Description))
	}
	if len(raw.QuoteSummary.Result) == 0 || raw.QuoteSummary.Result[0] == nil {
		return Fundamentals{}, newError(KindEmpty, "details", symbol, errors.New("no fundamentals available"))
	}

	return resolveFundamentals(raw.QuoteSummary.Result[0]), nil
}

// resolveFundamentals applies the fallback order to one quoteSummary result.
func resolveFundamentals(doc map[string]any) Fundamentals {
	f := Fundamentals{
		MarketCap:      resolve(doc, marketCapPaths),
		PERatio:        resolve(doc, peRatioPaths),
		DividendYield:  resolve(doc, dividendYieldPaths),
		High52W:        resolve(doc, high52WPaths),
		Low52W:         resolve(doc, low52WPaths),
		TrailingReturn: resolve(doc, trailingReturnPaths),
		QuoteType:      lookupString(doc, `$.price.quoteType`),
	}
	f.Name = lookupString(doc, `$.price.shortName`)
	if f.Name == "" {
		f.Name = lookupString(doc, `$.price.longName`)
	}
	return f
}

// resolve returns the first candidate that yields a number, scaled.
func resolve(doc map[string]any, candidates []fieldPath) *float64 {
	for _, c := range candidates {
		v, err := jsonpath.Get(c.path, doc)
		if err != nil {
			continue
		}
		// jsonpath may hand back a single-element list instead of the value.
		if list, ok := v.([]any); ok {
			if len(list) == 0 {
				continue
			}
			v = list[0]
		}
		if n, ok := v.(float64); ok {
			n *= c.scale
			return &n
		}
	}
	return nil
}

func lookupString(doc map[string]any, path string) string {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
