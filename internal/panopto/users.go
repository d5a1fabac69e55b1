package panopto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// UsersByIDs resolves user records for the given ids. Ids the service does
// not know are simply absent from the response.
func (c *Client) UsersByIDs(ctx context.Context, ids []string) ([]User, error) {
	payload, err := json.Marshal(struct {
		IDs []string `json:"ids"`
	}{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to encode user lookup request: %w", err)
	}

	var result struct {
		Users []User `json:"users"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/users/lookup", nil, bytes.NewReader(payload), &result); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("requested", len(ids)).
		Int("resolved", len(result.Users)).
		Msg("Looked up users")

	return result.Users, nil
}
