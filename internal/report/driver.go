package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/goodtune/viewstats/internal/metrics"
	"github.com/goodtune/viewstats/internal/namecache"
	"github.com/goodtune/viewstats/internal/panopto"
	"github.com/rs/zerolog"
)

// API is the subset of the platform client a report run depends on.
type API interface {
	SessionLister
	UsageReporter
	UserLookup
}

// State identifies where a report run currently is.
type State string

const (
	StateIdle        State = "idle"
	StateValidating  State = "validating"
	StateEnumerating State = "enumerating"
	StateProcessing  State = "processing"
	StateDone        State = "done"
)

// Status messages surfaced to whoever triggered the run
const (
	StatusCredentialsMissing = "Please enter username and password."
	StatusComplete           = "Stats query complete."
)

// Config holds report run parameters
type Config struct {
	PageSize           int
	SessionCap         int
	WindowDays         int
	CacheFailedLookups bool
}

// Result is the outcome of one report run. Text always starts with the
// header row and holds whatever rows accumulated before any fatal error,
// so a failed run still returns its partial report.
type Result struct {
	Text               string
	Status             string
	Err                error
	SessionsProcessed  int
	SessionsSkipped    int
	SessionsNoActivity int
}

// Driver orchestrates a full report run: enumerate sessions, fetch and
// aggregate each one's usage, resolve names, and accumulate rows.
//
// A failure enumerating sessions is fatal to the run. A failure fetching
// one session's usage only skips that session: it contributes no rows, the
// skip is counted and logged, and the run continues.
type Driver struct {
	api    API
	creds  panopto.Credentials
	cache  namecache.Cache
	cfg    Config
	state  State
	logger zerolog.Logger
}

// NewDriver creates a new report driver
func NewDriver(api API, creds panopto.Credentials, cache namecache.Cache, cfg Config, logger zerolog.Logger) *Driver {
	return &Driver{
		api:    api,
		creds:  creds,
		cache:  cache,
		cfg:    cfg,
		state:  StateIdle,
		logger: logger.With().Str("component", "report-driver").Logger(),
	}
}

// State returns the driver's current position in the run
func (d *Driver) State() State {
	return d.state
}

// Run generates the full report synchronously. Sessions are processed one
// at a time; the reporting window is fixed once at the start of the run.
func (d *Driver) Run(ctx context.Context) *Result {
	start := time.Now()
	defer func() {
		metrics.ReportDuration.Observe(time.Since(start).Seconds())
	}()

	d.setState(StateValidating)

	var text strings.Builder
	text.WriteString(Header)

	if !d.creds.Valid() {
		d.setState(StateDone)
		metrics.ReportRuns.WithLabelValues("credentials_missing").Inc()
		return &Result{Text: text.String(), Status: StatusCredentialsMissing}
	}

	// One window per run, shared by every session
	end := time.Now()
	begin := end.AddDate(0, 0, -d.cfg.WindowDays)

	enumerator := NewSessionEnumerator(d.api, d.cfg.PageSize, d.cfg.SessionCap, d.logger)
	fetcher := NewUsageFetcher(d.api, d.cfg.PageSize, begin, end, d.logger)
	resolver := NewUsernameResolver(d.api, d.cache, d.cfg.CacheFailedLookups, d.logger)

	d.setState(StateEnumerating)

	sessions, err := enumerator.Enumerate(ctx)
	if err != nil {
		d.setState(StateDone)
		metrics.ReportRuns.WithLabelValues("enumeration_failed").Inc()
		d.logger.Error().Err(err).Msg("Session enumeration failed")
		return &Result{Text: text.String(), Status: err.Error(), Err: err}
	}

	d.setState(StateProcessing)

	result := &Result{}
	for _, session := range sessions {
		rows, noActivity, err := d.processSession(ctx, fetcher, resolver, session)
		if err != nil {
			result.SessionsSkipped++
			metrics.SessionsSkipped.Inc()
			d.logger.Warn().Err(err).
				Str("session_id", session.ID).
				Str("session_name", session.Name).
				Msg("Skipping session")
			continue
		}

		if noActivity {
			result.SessionsNoActivity++
			metrics.SessionsNoActivity.Inc()
		}
		result.SessionsProcessed++
		metrics.SessionsProcessed.Inc()
		text.WriteString(rows)
	}

	d.setState(StateDone)
	metrics.ReportRuns.WithLabelValues("complete").Inc()

	result.Text = text.String()
	result.Status = StatusComplete

	d.logger.Info().
		Int("processed", result.SessionsProcessed).
		Int("skipped", result.SessionsSkipped).
		Int("no_activity", result.SessionsNoActivity).
		Dur("elapsed", time.Since(start)).
		Msg("Report run complete")

	return result
}

// processSession builds the report rows for one session
func (d *Driver) processSession(ctx context.Context, fetcher *UsageFetcher, resolver *UsernameResolver, session panopto.Session) (string, bool, error) {
	events, total, err := fetcher.Fetch(ctx, session.ID)
	if err != nil {
		return "", false, err
	}

	if total == 0 {
		return formatPlaceholderRow(session.ID, session.Name, session.FolderName), true, nil
	}

	records := Aggregate(events, session.Duration)

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var rows strings.Builder
	for _, id := range ids {
		username := resolver.Resolve(ctx, id)
		rows.WriteString(formatRow(session.ID, session.Name, username, records[id], session.FolderName))
	}

	return rows.String(), false, nil
}

func (d *Driver) setState(next State) {
	d.logger.Debug().
		Str("from", string(d.state)).
		Str("to", string(next)).
		Msg("State transition")
	d.state = next
}
