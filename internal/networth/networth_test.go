package networth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(body string) APICapture {
	return APICapture{URL: "https://example.com/api", Body: json.RawMessage(body)}
}

func TestExtractHistoryTopLevelArray(t *testing.T) {
	log := CaptureLog{}.Append(capture(`[
		{"date": "2026-01-01", "value": 100.50},
		{"date": "2026-01-02", "value": 101.00},
		{"date": "2026-01-03", "value": 99.25}
	]`))

	points := ExtractHistory(log)
	require.Len(t, points, 3)
	assert.Equal(t, "2026-01-01", points[0].Date)
	assert.Equal(t, int64(10050), points[0].NetWorthMinor)
	assert.Equal(t, int64(9925), points[2].NetWorthMinor)
}

func TestExtractHistoryNestedSeries(t *testing.T) {
	log := CaptureLog{}.Append(capture(`{
		"spData": {
			"networthHistories": [
				{"date": "1/1/2026", "total": 50000},
				{"date": "1/2/2026", "total": 50100},
				{"date": "1/3/2026", "total": 50200},
				{"date": "1/4/2026", "total": 50300}
			]
		}
	}`))

	points := ExtractHistory(log)
	require.Len(t, points, 4)
	assert.Equal(t, "2026-01-04", points[3].Date)
	assert.Equal(t, int64(5030000), points[3].NetWorthMinor)
}

func TestExtractHistoryPicksLongestSeries(t *testing.T) {
	log := CaptureLog{}.Append(capture(`{
		"short": [
			{"date": "2026-01-01", "value": 1},
			{"date": "2026-01-02", "value": 2},
			{"date": "2026-01-03", "value": 3}
		],
		"long": [
			{"date": "2026-02-01", "balance": 10},
			{"date": "2026-02-02", "balance": 20},
			{"date": "2026-02-03", "balance": 30},
			{"date": "2026-02-04", "balance": 40},
			{"date": "2026-02-05", "balance": 50}
		]
	}`))

	points := ExtractHistory(log)
	require.Len(t, points, 5)
	assert.Equal(t, int64(1000), points[0].NetWorthMinor)
}

func TestExtractHistoryEpochTimestamps(t *testing.T) {
	// 2026-01-01T00:00:00Z in seconds and in milliseconds.
	log := CaptureLog{}.Append(capture(`[
		{"timestamp": 1767225600, "value": 1},
		{"timestamp": 1767312000000, "value": 2},
		{"timestamp": 1767398400, "value": 3}
	]`))

	points := ExtractHistory(log)
	require.Len(t, points, 3)
	assert.Equal(t, "2026-01-01", points[0].Date)
	assert.Equal(t, "2026-01-02", points[1].Date)
}

func TestExtractHistoryRejectsShortAndShapelessArrays(t *testing.T) {
	log := CaptureLog{}.
		Append(capture(`[{"date": "2026-01-01", "value": 1}, {"date": "2026-01-02", "value": 2}]`)).
		Append(capture(`[1, 2, 3, 4]`)).
		Append(capture(`{"rows": [{"name": "a"}, {"name": "b"}, {"name": "c"}]}`)).
		Append(capture(`not json`))

	points := ExtractHistory(log)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestCaptureLogAppendDoesNotShareState(t *testing.T) {
	base := CaptureLog{}
	a := base.Append(capture(`[]`))

	assert.Empty(t, base.Captures)
	assert.Len(t, a.Captures, 1)
}
