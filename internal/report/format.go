package report

import (
	"fmt"
	"strings"
	"time"
)

// Header is the report's first row.
const Header = "Session ID, Session Name, Username, % Viewed, Last View Date, Folder Name\n"

// timeFormat renders last-view dates in the report
const timeFormat = time.RFC3339

// formatRow renders one user's coverage record as a report row
func formatRow(sessionID, sessionName, username string, coverage *Coverage, folderName string) string {
	return fmt.Sprintf("%s, %s, %s, %d, %s, %s\n",
		sessionID,
		sanitizeField(sessionName),
		username,
		coverage.SegmentsViewed(),
		coverage.LastViewed.Format(timeFormat),
		sanitizeField(folderName))
}

// formatPlaceholderRow renders the single row emitted for a session with no
// viewing activity: "none" in the username column, coverage and date empty
func formatPlaceholderRow(sessionID, sessionName, folderName string) string {
	return fmt.Sprintf("%s, %s, none, , , %s\n",
		sessionID,
		sanitizeField(sessionName),
		sanitizeField(folderName))
}

// sanitizeField strips embedded commas so a field cannot split into extra
// columns. Other special characters are passed through unescaped.
func sanitizeField(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
