package report

import (
	"strings"
	"testing"
	"time"
)

func TestFormatRow(t *testing.T) {
	coverage := &Coverage{UserID: "id-1"}
	for i := 0; i < 7; i++ {
		coverage.Segments[i] = true
	}
	coverage.LastViewed = time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)

	row := formatRow("sess-1", "Lecture, Part 2", "ada", coverage, "Physics, 101")

	want := "sess-1, Lecture Part 2, ada, 7, 2026-08-15T09:30:00Z, Physics 101\n"
	if row != want {
		t.Errorf("formatRow() = %q, want %q", row, want)
	}
}

func TestFormatRow_CommasStrippedNotEscaped(t *testing.T) {
	coverage := &Coverage{UserID: "id-1", LastViewed: time.Unix(0, 0).UTC()}
	row := formatRow("s", "a,b,c", "u", coverage, "x,y")

	if strings.Contains(strings.TrimPrefix(row, "s, a"), `"`) {
		t.Errorf("formatRow() must strip commas, not quote fields: %q", row)
	}
	if got := strings.Count(row, ","); got != 5 {
		t.Errorf("formatRow() produced %d commas, want exactly 5 delimiters: %q", got, row)
	}
}

func TestFormatPlaceholderRow(t *testing.T) {
	row := formatPlaceholderRow("sess-1", "Quiet, Session", "Archive")

	want := "sess-1, Quiet Session, none, , , Archive\n"
	if row != want {
		t.Errorf("formatPlaceholderRow() = %q, want %q", row, want)
	}
}

func TestHeaderColumns(t *testing.T) {
	wantColumns := []string{"Session ID", "Session Name", "Username", "% Viewed", "Last View Date", "Folder Name"}

	columns := strings.Split(strings.TrimSuffix(Header, "\n"), ", ")
	if len(columns) != len(wantColumns) {
		t.Fatalf("header has %d columns, want %d", len(columns), len(wantColumns))
	}
	for i, want := range wantColumns {
		if columns[i] != want {
			t.Errorf("header column %d = %q, want %q", i, columns[i], want)
		}
	}
}
