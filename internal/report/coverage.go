package report

import (
	"time"

	"github.com/goodtune/viewstats/internal/panopto"
)

// NumSegments is the fixed number of equal-length slices a session's
// timeline is divided into for coverage measurement.
const NumSegments = 100

// Coverage is one user's viewing record for a single session.
type Coverage struct {
	UserID     string
	Segments   [NumSegments]bool
	LastViewed time.Time
}

// SegmentsViewed returns the number of watched segments, 0-100
func (c *Coverage) SegmentsViewed() int {
	viewed := 0
	for _, watched := range c.Segments {
		if watched {
			viewed++
		}
	}
	return viewed
}

// Aggregate consolidates raw usage events into per-user coverage.
//
// Every event updates the user's last-viewed time. Only events passing the
// validity checks touch the segment bitmap: the event must start inside the
// session, have a positive span, and end strictly before the session ends.
// With an unknown duration the segment length is undefined, so no bits are
// ever set, but last-viewed tracking still runs.
//
// Events are processed in input order; the result is order-independent
// because the bitmap only accumulates and last-viewed only takes the max.
func Aggregate(events []panopto.UsageEvent, duration *float64) map[string]*Coverage {
	records := make(map[string]*Coverage)

	for _, event := range events {
		record, ok := records[event.UserID]
		if !ok {
			record = &Coverage{
				UserID:     event.UserID,
				LastViewed: event.Time,
			}
			records[event.UserID] = record
		}

		if event.Time.After(record.LastViewed) {
			record.LastViewed = event.Time
		}

		if duration == nil {
			continue
		}
		if !validEvent(event, *duration) {
			continue
		}

		segmentLength := *duration / NumSegments
		first := int(event.StartPosition / segmentLength)
		// Half-open: the segment containing the exact end boundary stays unmarked
		last := int((event.StartPosition + event.SecondsViewed) / segmentLength)
		if last > NumSegments {
			last = NumSegments
		}
		for i := first; i < last; i++ {
			record.Segments[i] = true
		}
	}

	return records
}

// validEvent reports whether the event may influence the coverage bitmap
func validEvent(event panopto.UsageEvent, duration float64) bool {
	return event.StartPosition >= 0 &&
		event.StartPosition < duration &&
		event.SecondsViewed > 0 &&
		event.SecondsViewed < duration &&
		event.StartPosition+event.SecondsViewed < duration
}
