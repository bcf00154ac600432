package market

import (
	"context"
	"errors"
	"math"
	"net/url"
	"time"

	"gonum.org/v1/gonum/stat"
)

// tradingDays annualizes daily volatility.
const tradingDays = 252

// Point is one daily close.
type Point struct {
	Timestamp int64   // unix seconds
	Close     float64 // closing price
}

// Time returns the point's timestamp as a time.Time in UTC.
func (p Point) Time() time.Time {
	return time.Unix(p.Timestamp, 0).UTC()
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory fetches one year of daily closes for symbol, oldest first.
// A response with no usable points is a KindEmpty error wrapping
// ErrEmptyHistory, never an empty success.
func (c *Client) FetchHistory(ctx context.Context, symbol string) ([]Point, error) {
	q := url.Values{}
	q.Set("range", "1y")
	q.Set("interval", "1d")

	var raw chartResponse
	if err := c.getJSON(ctx, "history", symbol, c.yahooURL+"/v8/finance/chart/"+url.PathEscape(symbol)+"?"+q.Encode(), &raw); err != nil {
		return nil, err
	}

	if raw.Chart.Error != nil {
		return nil, newError(KindParse, "history", symbol, errors.New(raw.Chart.Error.Description))
	}
	if len(raw.Chart.Result) == 0 || len(raw.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, newError(KindEmpty, "history", symbol, ErrEmptyHistory)
	}

	res := raw.Chart.Result[0]
	closes := res.Indicators.Quote[0].Close
	points := make([]Point, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		// Holidays and halted sessions show up as null closes.
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, Point{Timestamp: ts, Close: *closes[i]})
	}

	if len(points) == 0 {
		return nil, newError(KindEmpty, "history", symbol, ErrEmptyHistory)
	}
	return points, nil
}

// SeriesStats summarizes a history series.
type SeriesStats struct {
	First, Last float64
	Min, Max    float64
	Change      float64 // percent, last vs first
	Volatility  float64 // annualized stddev of daily log returns, percent
}

// Up reports whether the series closed at or above where it started.
func (s SeriesStats) Up() bool {
	return s.Last >= s.First
}

// Stats computes SeriesStats for points. It returns the zero value for an
// empty series.
func Stats(points []Point) SeriesStats {
	if len(points) == 0 {
		return SeriesStats{}
	}

	s := SeriesStats{
		First: points[0].Close,
		Last:  points[len(points)-1].Close,
		Min:   points[0].Close,
		Max:   points[0].Close,
	}
	for _, p := range points[1:] {
		s.Min = math.Min(s.Min, p.Close)
		s.Max = math.Max(s.Max, p.Close)
	}
	if s.First != 0 {
		s.Change = (s.Last - s.First) / s.First * 100
	}

	returns := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1].Close, points[i].Close
		if prev <= 0 || cur <= 0 {
			continue
		}
		returns = append(returns, math.Log(cur/prev))
	}
	if len(returns) > 1 {
		s.Volatility = stat.StdDev(returns, nil) * math.Sqrt(tradingDays) * 100
	}
	return s
}
