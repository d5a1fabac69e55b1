package panopto

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/goodtune/viewstats/internal/metrics"
)

// SessionDetailedUsage retrieves one page of event-level usage records for a
// session, limited to the [begin, end) window.
func (c *Client) SessionDetailedUsage(ctx context.Context, sessionID string, page, pageSize int, begin, end time.Time) (*UsagePage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	query.Set("begin", begin.UTC().Format(time.RFC3339))
	query.Set("end", end.UTC().Format(time.RFC3339))

	path := fmt.Sprintf("/api/v1/sessions/%s/usage", url.PathEscape(sessionID))

	var result UsagePage
	if err := c.get(ctx, path, query, &result); err != nil {
		return nil, err
	}

	metrics.UsagePagesFetched.Inc()

	c.logger.Debug().
		Str("session_id", sessionID).
		Int("page", page).
		Int("returned", len(result.Events)).
		Int("total", result.Total).
		Msg("Fetched detailed usage page")

	return &result, nil
}
