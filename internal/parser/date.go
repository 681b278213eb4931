package parser

import "time"

// rowDateFormat matches the source's M/D/YYYY rendering (1-2 digit month/day).
const rowDateFormat = "1/2/2006"

// ParseDate converts "2/14/2026" into its ISO calendar date and a local-time
// epoch-milliseconds value. The two outputs degrade differently on failure:
// the ISO output keeps the original unparsed string while the epoch falls
// back to 0. That asymmetry matches the source exporter and downstream
// consumers rely on it; the fallback counter is the instrumentation for it.
func ParseDate(raw string, stats *Stats) (string, int64) {
	t, err := time.ParseInLocation(rowDateFormat, raw, time.Local)
	if err != nil {
		if stats != nil {
			stats.DateFallbacks++
		}
		return raw, 0
	}
	return t.Format("2006-01-02"), t.UnixMilli()
}
