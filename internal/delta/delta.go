// Package delta implements the incremental sync filter.
//
// Clients poll list endpoints with a last_sync watermark and receive only the
// records mutated strictly after it, tombstones included. The filter is a pure
// function applied after membership scoping, never before, so a client only
// ever receives the delta of records it is entitled to see.
package delta

import "time"

// Record is any syncable record that exposes its cursor position.
type Record interface {
	LastUpdated() time.Time
}

// watermarkLayouts are the accepted last_sync formats, tried in order.
// RFC3339 variants cover the mobile client; the date-only and space-separated
// forms match what lenient ISO 8601 parsers accept.
var watermarkLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseWatermark parses a raw last_sync query value. It returns nil when the
// value is absent or unparseable: an unreadable watermark falls back to full
// snapshot semantics rather than erroring. Deliberate leniency, kept for
// client compatibility.
func ParseWatermark(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range watermarkLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// Filter retains the records mutated strictly after the watermark.
// A nil watermark passes everything through (full snapshot). A record updated
// exactly at the watermark is excluded; re-delivering the boundary would make
// every poll echo the records the client already holds.
func Filter[R Record](records []R, watermark *time.Time) []R {
	if watermark == nil {
		return records
	}
	filtered := make([]R, 0, len(records))
	for _, r := range records {
		if r.LastUpdated().After(*watermark) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
