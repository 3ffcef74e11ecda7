package services

import (
	"context"
	"time"

	"github.com/awcullen/opcua/ua"
	"github.com/jellydator/ttlcache/v3"

	"github.com/amine-amaach/uaWalker/internal/model"
	"github.com/amine-amaach/uaWalker/internal/nodeid"
)

// CachedBrowser decorates a Browser with a short-lived result cache.
// The progressive search passes revisit the shallow part of the address
// space on every escalation; caching those browses saves the repeated
// round trips. Only successful results are cached, so errors are always
// re-observed.
type CachedBrowser struct {
	inner Browser
	cache *ttlcache.Cache[string, []model.ChildReference]
}

func NewCachedBrowser(inner Browser, ttl time.Duration) *CachedBrowser {
	cache := ttlcache.New[string, []model.ChildReference](
		ttlcache.WithTTL[string, []model.ChildReference](ttl),
		ttlcache.WithDisableTouchOnHit[string, []model.ChildReference](),
	)
	return &CachedBrowser{inner: inner, cache: cache}
}

func (c *CachedBrowser) BrowseChildren(ctx context.Context, id ua.NodeID) ([]model.ChildReference, error) {
	key := nodeid.Format(id)
	if item := c.cache.Get(key); item != nil {
		return item.Value(), nil
	}
	refs, err := c.inner.BrowseChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, refs, ttlcache.DefaultTTL)
	return refs, nil
}

// Stop releases the cache's expiry bookkeeping.
func (c *CachedBrowser) Stop() {
	c.cache.DeleteAll()
}
