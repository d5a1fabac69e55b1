package report

import (
	"context"
	"fmt"
	"time"

	"github.com/goodtune/viewstats/internal/panopto"
	"github.com/rs/zerolog"
)

// UsageReporter retrieves pages of event-level usage records for a session.
type UsageReporter interface {
	SessionDetailedUsage(ctx context.Context, sessionID string, page, pageSize int, begin, end time.Time) (*panopto.UsagePage, error)
}

// UsageFetcher collects every usage event for a session inside a fixed
// time window.
type UsageFetcher struct {
	reporter UsageReporter
	pageSize int
	begin    time.Time
	end      time.Time
	logger   zerolog.Logger
}

// NewUsageFetcher creates a fetcher bound to the [begin, end) window
func NewUsageFetcher(reporter UsageReporter, pageSize int, begin, end time.Time, logger zerolog.Logger) *UsageFetcher {
	return &UsageFetcher{
		reporter: reporter,
		pageSize: pageSize,
		begin:    begin,
		end:      end,
		logger:   logger.With().Str("component", "usage-fetcher").Logger(),
	}
}

// Fetch returns the flat list of usage events for the session across every
// page, in page order, plus the collection total reported by the service.
// A zero total means the session had no viewing activity in the window.
func (f *UsageFetcher) Fetch(ctx context.Context, sessionID string) ([]panopto.UsageEvent, int, error) {
	events, total, err := collectPages(ctx, f.pageSize, 0, func(ctx context.Context, page int) ([]panopto.UsageEvent, int, error) {
		result, err := f.reporter.SessionDetailedUsage(ctx, sessionID, page, f.pageSize, f.begin, f.end)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to fetch usage for session %s (page %d): %w", sessionID, page, err)
		}
		return result.Events, result.Total, nil
	})
	if err != nil {
		return nil, 0, err
	}

	f.logger.Debug().
		Str("session_id", sessionID).
		Int("events", len(events)).
		Msg("Fetched session usage")

	return events, total, nil
}
