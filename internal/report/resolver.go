package report

import (
	"context"
	"errors"
	"strings"

	"github.com/goodtune/viewstats/internal/metrics"
	"github.com/goodtune/viewstats/internal/namecache"
	"github.com/goodtune/viewstats/internal/panopto"
	"github.com/rs/zerolog"
)

// UserLookup resolves user records by id.
type UserLookup interface {
	UsersByIDs(ctx context.Context, ids []string) ([]panopto.User, error)
}

// UsernameResolver resolves display names for user ids, consulting the
// cache before any remote call. When a lookup fails or yields no name, the
// raw id stands in as the display name; whether that fallback is cached
// (so later sessions never retry the lookup) is configurable.
type UsernameResolver struct {
	lookup        UserLookup
	cache         namecache.Cache
	cacheFailures bool
	logger        zerolog.Logger
}

// NewUsernameResolver creates a new resolver backed by cache
func NewUsernameResolver(lookup UserLookup, cache namecache.Cache, cacheFailures bool, logger zerolog.Logger) *UsernameResolver {
	return &UsernameResolver{
		lookup:        lookup,
		cache:         cache,
		cacheFailures: cacheFailures,
		logger:        logger.With().Str("component", "username-resolver").Logger(),
	}
}

// Resolve returns the display name for userID. It never fails: the id
// itself is the fallback name.
func (r *UsernameResolver) Resolve(ctx context.Context, userID string) string {
	name, err := r.cache.Get(ctx, userID)
	if err == nil {
		metrics.UsernameCacheHits.Inc()
		return name
	}
	if !errors.Is(err, namecache.ErrNotFound) {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("Name cache read failed")
	}

	metrics.UsernameCacheMisses.Inc()

	name = r.lookupName(ctx, userID)
	if name == "" {
		metrics.UsernameLookupFailures.Inc()
		name = userID
		if !r.cacheFailures {
			// Leave the miss uncached so a later resolution can retry
			return name
		}
	}

	if err := r.cache.Set(ctx, userID, name); err != nil {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("Name cache write failed")
	}

	return name
}

// lookupName performs the remote lookup, returning "" when no usable name
// comes back
func (r *UsernameResolver) lookupName(ctx context.Context, userID string) string {
	users, err := r.lookup.UsersByIDs(ctx, []string{userID})
	if err != nil {
		r.logger.Debug().Err(err).Str("user_id", userID).Msg("User lookup failed")
		return ""
	}

	for _, user := range users {
		if user.ID == userID && strings.TrimSpace(user.DisplayName) != "" {
			return user.DisplayName
		}
	}

	return ""
}
