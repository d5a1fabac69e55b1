package panopto

import (
	"context"
	"net/url"
	"strconv"

	"github.com/goodtune/viewstats/internal/metrics"
)

// ListSessions retrieves one page of the site's sessions, newest first.
// The sort order is fixed so that repeated calls with the same page size
// walk a stable sequence.
func (c *Client) ListSessions(ctx context.Context, page, pageSize int) (*SessionPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	query.Set("sort_by", "date")
	query.Set("sort_order", "desc")

	var result SessionPage
	if err := c.get(ctx, "/api/v1/sessions", query, &result); err != nil {
		return nil, err
	}

	metrics.SessionPagesFetched.Inc()

	c.logger.Debug().
		Int("page", page).
		Int("returned", len(result.Sessions)).
		Int("total", result.Total).
		Msg("Fetched session list page")

	return &result, nil
}
