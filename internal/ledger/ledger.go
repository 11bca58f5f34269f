// Package ledger records expenses and settlements and resolves balances from
// them. Every operation takes the acting user's ID explicitly; an empty actor
// fails with models.ErrUnauthenticated.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/mmynk/splitledger/internal/cache"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// UnknownUserName is shown for a referenced user that no longer resolves.
const UnknownUserName = "Unknown user"

// Ledger is the expense-sharing engine over a Store.
type Ledger struct {
	store  storage.Store
	cache  cache.Cache
	locale language.Tag
	now    func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithCache caches pair and group balances in c.
func WithCache(c cache.Cache) Option {
	return func(l *Ledger) {
		if c != nil {
			l.cache = c
		}
	}
}

// WithLocale sets the collation locale used to sort the directory.
func WithLocale(tag language.Tag) Option {
	return func(l *Ledger) { l.locale = tag }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger. Without WithCache nothing is cached.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		cache:  cache.Nop{},
		locale: language.English,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func requireActor(actorID string) error {
	if actorID == "" {
		return models.ErrUnauthenticated
	}
	return nil
}

// fail counts err against op and returns it unchanged.
func fail(op string, err error) error {
	metrics.LedgerErrors.WithLabelValues(op, metrics.ErrorKind(err)).Inc()
	return err
}

// groupForMember loads a group and checks that actorID belongs to it.
func (l *Ledger) groupForMember(ctx context.Context, groupID, actorID string) (*models.Group, error) {
	group, err := l.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(actorID) {
		return nil, models.Forbidden("you are not a member of this group")
	}
	return group, nil
}

// resolveUsers loads every ID in ids and fails with ErrNotFound for the first
// one missing.
func (l *Ledger) resolveUsers(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users, err := l.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := users[id]; !ok {
			return nil, models.NotFound("user", id)
		}
	}
	return users, nil
}

func (l *Ledger) cacheGet(ctx context.Context, scope, key string, dst any) bool {
	ok, err := l.cache.Get(ctx, key, dst)
	switch {
	case err != nil:
		metrics.BalanceCache.WithLabelValues(scope, "error").Inc()
		slog.Warn("Balance cache read failed", "key", key, "error", err)
		return false
	case ok:
		metrics.BalanceCache.WithLabelValues(scope, "hit").Inc()
	default:
		metrics.BalanceCache.WithLabelValues(scope, "miss").Inc()
	}
	return ok
}

// cacheVersion returns the generation of key to pass to cacheSet. It must be
// taken before loading the records the cached value is computed from. ok is
// false if the generation could not be read; the result is then not cached.
func (l *Ledger) cacheVersion(ctx context.Context, key string) (version int64, ok bool) {
	version, err := l.cache.Version(ctx, key)
	if err != nil {
		slog.Warn("Balance cache version read failed", "key", key, "error", err)
		return 0, false
	}
	return version, true
}

// cacheSet stores v unless key was invalidated after version was read.
func (l *Ledger) cacheSet(ctx context.Context, scope, key string, version int64, v any) {
	stored, err := l.cache.SetIfVersion(ctx, key, version, v)
	switch {
	case err != nil:
		slog.Warn("Balance cache write failed", "key", key, "error", err)
	case !stored:
		metrics.BalanceCache.WithLabelValues(scope, "stale").Inc()
	}
}

func (l *Ledger) invalidate(ctx context.Context, keys ...string) {
	if err := l.cache.Invalidate(ctx, keys...); err != nil {
		slog.Warn("Balance cache invalidation failed", "keys", keys, "error", err)
	}
}

// invalidatePairs drops the cached pair balances between payer and every
// other user, in both directions.
func (l *Ledger) invalidatePairs(ctx context.Context, payerID string, others []string) {
	var keys []string
	for _, id := range others {
		if id == payerID {
			continue
		}
		keys = append(keys, cache.PairKey(payerID, id), cache.PairKey(id, payerID))
	}
	if len(keys) > 0 {
		l.invalidate(ctx, keys...)
	}
}
