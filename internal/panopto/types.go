package panopto

import "time"

// Credentials identify the reporting user on every API request.
type Credentials struct {
	UserKey  string
	Password string
}

// Valid reports whether both identity fields are present.
func (c Credentials) Valid() bool {
	return trimNonEmpty(c.UserKey) && trimNonEmpty(c.Password)
}

// Session is one recorded session as returned by the session list service.
// Duration is nil when the platform does not know the session length.
type Session struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	FolderName string   `json:"folder_name"`
	Duration   *float64 `json:"duration_seconds"`
}

// UsageEvent is a single contiguous watch span reported for a session.
type UsageEvent struct {
	UserID        string    `json:"user_id"`
	StartPosition float64   `json:"start_position"`
	SecondsViewed float64   `json:"seconds_viewed"`
	Time          time.Time `json:"time"`
}

// User is a user record from the user lookup service.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SessionPage is one page of session list results plus the collection total.
type SessionPage struct {
	Sessions []Session `json:"results"`
	Total    int       `json:"total"`
}

// UsagePage is one page of detailed usage results plus the collection total.
type UsagePage struct {
	Events []UsageEvent `json:"results"`
	Total  int          `json:"total"`
}
