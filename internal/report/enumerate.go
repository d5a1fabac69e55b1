package report

import (
	"context"
	"fmt"

	"github.com/goodtune/viewstats/internal/panopto"
	"github.com/rs/zerolog"
)

// SessionLister retrieves pages of the site's session list, newest first.
type SessionLister interface {
	ListSessions(ctx context.Context, page, pageSize int) (*panopto.SessionPage, error)
}

// SessionEnumerator walks the session list up to a hard cap. Any page
// failure aborts the enumeration; the caller decides what to do with the
// partial report.
type SessionEnumerator struct {
	lister   SessionLister
	pageSize int
	cap      int
	logger   zerolog.Logger
}

// NewSessionEnumerator creates a new enumerator considering at most cap sessions
func NewSessionEnumerator(lister SessionLister, pageSize, cap int, logger zerolog.Logger) *SessionEnumerator {
	return &SessionEnumerator{
		lister:   lister,
		pageSize: pageSize,
		cap:      cap,
		logger:   logger.With().Str("component", "session-enumerator").Logger(),
	}
}

// Enumerate returns the sessions to report on, newest first, capped
func (e *SessionEnumerator) Enumerate(ctx context.Context) ([]panopto.Session, error) {
	sessions, total, err := collectPages(ctx, e.pageSize, e.cap, func(ctx context.Context, page int) ([]panopto.Session, int, error) {
		result, err := e.lister.ListSessions(ctx, page, e.pageSize)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list sessions (page %d): %w", page, err)
		}
		return result.Sessions, result.Total, nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info().
		Int("sessions", len(sessions)).
		Int("site_total", total).
		Int("cap", e.cap).
		Msg("Enumerated sessions")

	return sessions, nil
}
