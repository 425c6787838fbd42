package inchi

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/rxnpath/pkg/cache"
	"github.com/matzehuels/rxnpath/pkg/observability"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// ContentKeyer is implemented by molecules with a position-independent key.
type ContentKeyer interface {
	ContentKey() string
}

// CachedOracle memoizes an oracle by molecule content key. Concurrent lookups
// of the same molecule share one call to the inner oracle. Molecules without
// a content key bypass the cache.
type CachedOracle struct {
	inner  Oracle
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	group  singleflight.Group

	// TTL of stored identities; zero keeps them forever.
	TTL time.Duration
}

// NewCachedOracle wraps inner. A nil keyer uses the default key scheme and a
// nil logger discards output.
func NewCachedOracle(inner Oracle, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *CachedOracle {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CachedOracle{inner: inner, cache: c, keyer: keyer, logger: logger}
}

// Identify implements [Oracle].
func (o *CachedOracle) Identify(ctx context.Context, m reaction.Molecule) (Identity, error) {
	ck, ok := m.(ContentKeyer)
	if !ok {
		return o.inner.Identify(ctx, m)
	}
	key := o.keyer.IdentityKey(ck.ContentKey())

	if data, hit, err := o.cache.Get(ctx, key); err != nil {
		o.logger.Warn("identity cache read failed", "err", err)
	} else if hit {
		var id Identity
		if err := json.Unmarshal(data, &id); err == nil && id.Key != "" {
			observability.Cache().OnCacheHit(ctx, "identity")
			return id, nil
		}
	}

	observability.Cache().OnCacheMiss(ctx, "identity")

	v, err, _ := o.group.Do(key, func() (any, error) {
		id, err := o.inner.Identify(ctx, m)
		if err != nil {
			return Identity{}, err
		}
		if data, err := json.Marshal(id); err == nil {
			if err := o.cache.Set(ctx, key, data, o.TTL); err != nil {
				o.logger.Warn("identity cache write failed", "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "identity", len(data))
			}
		}
		return id, nil
	})
	if err != nil {
		return Identity{}, err
	}
	return v.(Identity), nil
}
