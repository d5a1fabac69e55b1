package panopto

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL: server.URL,
		Credentials: Credentials{
			UserKey:  "reporter",
			Password: "secret",
		},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	return client, server
}

func TestNewClient_RejectsBadBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{"empty", ""},
		{"no scheme", "example.com"},
		{"garbage", "http://%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(Config{BaseURL: tt.baseURL}, zerolog.Nop()); err == nil {
				t.Errorf("NewClient(%q) must fail", tt.baseURL)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sessions" {
			t.Errorf("path = %s, want /api/v1/sessions", r.URL.Path)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "reporter" || pass != "secret" {
			t.Error("request missing basic auth credentials")
		}
		gotQuery = map[string]string{
			"page":       r.URL.Query().Get("page"),
			"page_size":  r.URL.Query().Get("page_size"),
			"sort_by":    r.URL.Query().Get("sort_by"),
			"sort_order": r.URL.Query().Get("sort_order"),
		}
		duration := 3600.0
		_ = json.NewEncoder(w).Encode(SessionPage{
			Sessions: []Session{
				{ID: "sess-1", Name: "Lecture 1", FolderName: "Physics", Duration: &duration},
				{ID: "sess-2", Name: "Lecture 2", FolderName: "Physics"},
			},
			Total: 47,
		})
	}))

	page, err := client.ListSessions(context.Background(), 1, 25)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}

	want := map[string]string{"page": "1", "page_size": "25", "sort_by": "date", "sort_order": "desc"}
	for key, wantValue := range want {
		if gotQuery[key] != wantValue {
			t.Errorf("query %s = %q, want %q", key, gotQuery[key], wantValue)
		}
	}

	if page.Total != 47 {
		t.Errorf("Total = %d, want 47", page.Total)
	}
	if len(page.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(page.Sessions))
	}
	if page.Sessions[0].Duration == nil || *page.Sessions[0].Duration != 3600 {
		t.Errorf("sess-1 duration = %v, want 3600", page.Sessions[0].Duration)
	}
	if page.Sessions[1].Duration != nil {
		t.Errorf("sess-2 duration = %v, want nil for unknown", page.Sessions[1].Duration)
	}
}

func TestSessionDetailedUsage(t *testing.T) {
	begin := time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC)
	end := begin.AddDate(0, 0, 30)

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sessions/sess-1/usage" {
			t.Errorf("path = %s, want /api/v1/sessions/sess-1/usage", r.URL.Path)
		}
		if got := r.URL.Query().Get("begin"); got != begin.Format(time.RFC3339) {
			t.Errorf("begin = %q, want %q", got, begin.Format(time.RFC3339))
		}
		if got := r.URL.Query().Get("end"); got != end.Format(time.RFC3339) {
			t.Errorf("end = %q, want %q", got, end.Format(time.RFC3339))
		}
		_ = json.NewEncoder(w).Encode(UsagePage{
			Events: []UsageEvent{
				{UserID: "id-a", StartPosition: 10, SecondsViewed: 120, Time: begin.Add(time.Hour)},
			},
			Total: 1,
		})
	}))

	page, err := client.SessionDetailedUsage(context.Background(), "sess-1", 0, 25, begin, end)
	if err != nil {
		t.Fatalf("SessionDetailedUsage failed: %v", err)
	}
	if page.Total != 1 || len(page.Events) != 1 {
		t.Fatalf("got %d events (total %d), want 1", len(page.Events), page.Total)
	}
	if page.Events[0].SecondsViewed != 120 {
		t.Errorf("SecondsViewed = %v, want 120", page.Events[0].SecondsViewed)
	}
}

func TestUsersByIDs(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/users/lookup" {
			t.Errorf("%s %s, want POST /api/v1/users/lookup", r.Method, r.URL.Path)
		}
		var body struct {
			IDs []string `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if len(body.IDs) != 1 || body.IDs[0] != "id-a" {
			t.Errorf("ids = %v, want [id-a]", body.IDs)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []User{{ID: "id-a", DisplayName: "ada"}},
		})
	}))

	users, err := client.UsersByIDs(context.Background(), []string{"id-a"})
	if err != nil {
		t.Fatalf("UsersByIDs failed: %v", err)
	}
	if len(users) != 1 || users[0].DisplayName != "ada" {
		t.Errorf("users = %v, want one record for ada", users)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied", http.StatusForbidden)
	}))

	if _, err := client.ListSessions(context.Background(), 0, 25); err == nil {
		t.Error("non-200 responses must surface as errors")
	}
}

func TestCredentialsValid(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"both set", Credentials{UserKey: "u", Password: "p"}, true},
		{"empty", Credentials{}, false},
		{"blank user key", Credentials{UserKey: "   ", Password: "p"}, false},
		{"missing password", Credentials{UserKey: "u"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.creds.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
