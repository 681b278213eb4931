// Package networth recovers net-worth history points from API responses
// captured while the dashboard page loaded. The responses are opaque JSON of
// unknown shape, so extraction walks the document looking for arrays that
// look like a dated value series.
package networth

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/starascendin/lifeos-finance/internal/parser"
)

// APICapture is one intercepted response body plus the URL it came from.
type APICapture struct {
	URL  string          `json:"url"`
	Body json.RawMessage `json:"body"`
}

// CaptureLog is the set of captures from one page session. It is passed by
// value through the pipeline; nothing retains it between runs.
type CaptureLog struct {
	Captures []APICapture `json:"apiCaptures"`
}

// Append returns a log extended with one capture.
func (l CaptureLog) Append(c APICapture) CaptureLog {
	l.Captures = append(l.Captures, c)
	return l
}

// HistoryPoint is one dated net-worth observation in minor units.
type HistoryPoint struct {
	Date          string `json:"date"`
	NetWorthMinor int64  `json:"netWorthMinorUnits"`
}

// Key names seen across aggregator history endpoints.
var (
	dateKeys  = []string{"date", "dateTime", "timestamp", "time", "period", "day"}
	valueKeys = []string{"value", "amount", "balance", "netWorth", "total", "y"}
)

// Arrays shorter than this are treated as coincidental shape matches, not a
// time series.
const minSeriesLen = 3

// ExtractHistory walks every captured response and returns the longest
// time-series-shaped array found, normalized and sorted by date. Returns an
// empty slice when no capture holds a recognizable series.
func ExtractHistory(log CaptureLog) []HistoryPoint {
	var best []HistoryPoint
	for _, capture := range log.Captures {
		var doc any
		if err := json.Unmarshal(capture.Body, &doc); err != nil {
			continue
		}
		if points := findSeries(doc); len(points) > len(best) {
			best = points
		}
	}
	if best == nil {
		best = []HistoryPoint{}
	}
	sort.Slice(best, func(i, j int) bool { return best[i].Date < best[j].Date })
	return best
}

// findSeries recursively searches a decoded JSON document for the longest
// array of objects carrying a date key and a numeric value key.
func findSeries(doc any) []HistoryPoint {
	var best []HistoryPoint
	switch v := doc.(type) {
	case []any:
		if points, ok := seriesFromArray(v); ok && len(points) > len(best) {
			best = points
		}
		for _, item := range v {
			if points := findSeries(item); len(points) > len(best) {
				best = points
			}
		}
	case map[string]any:
		for _, item := range v {
			if points := findSeries(item); len(points) > len(best) {
				best = points
			}
		}
	}
	return best
}

func seriesFromArray(arr []any) ([]HistoryPoint, bool) {
	if len(arr) < minSeriesLen {
		return nil, false
	}
	points := make([]HistoryPoint, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		point, ok := pointFromObject(obj)
		if !ok {
			return nil, false
		}
		points = append(points, point)
	}
	return points, true
}

func pointFromObject(obj map[string]any) (HistoryPoint, bool) {
	date, ok := extractDate(obj)
	if !ok {
		return HistoryPoint{}, false
	}
	minor, ok := extractValue(obj)
	if !ok {
		return HistoryPoint{}, false
	}
	return HistoryPoint{Date: date, NetWorthMinor: minor}, true
}

func extractDate(obj map[string]any) (string, bool) {
	for _, key := range dateKeys {
		raw, present := obj[key]
		if !present {
			continue
		}
		switch v := raw.(type) {
		case string:
			if iso, ok := normalizeDateString(v); ok {
				return iso, true
			}
		case float64:
			return epochToISO(v), true
		}
	}
	return "", false
}

func extractValue(obj map[string]any) (int64, bool) {
	for _, key := range valueKeys {
		raw, present := obj[key]
		if !present {
			continue
		}
		switch v := raw.(type) {
		case float64:
			minor, err := parser.ParseMoney(fmt.Sprintf("%f", v))
			if err != nil {
				return 0, false
			}
			return minor, true
		case string:
			minor, err := parser.ParseMoney(v)
			if err != nil {
				return 0, false
			}
			return minor, true
		}
	}
	return 0, false
}

func normalizeDateString(raw string) (string, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "1/2/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// Timestamps above this are taken as milliseconds rather than seconds. The
// cutover corresponds to late 2603 in seconds, far past any plausible data.
const millisCutover = 2e10

func epochToISO(v float64) string {
	secs := int64(v)
	if v > millisCutover {
		secs = int64(v / 1000)
	}
	return time.Unix(secs, 0).UTC().Format("2006-01-02")
}
