package services

import (
	"context"
	"testing"
	"time"

	"github.com/awcullen/opcua/ua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amine-amaach/uaWalker/internal/model"
)

func TestCachedBrowserServesRepeatsFromCache(t *testing.T) {
	fb := &fakeBrowser{children: map[ua.NodeID][]model.ChildReference{
		num(1): {ref(2, "a")},
	}}
	c := NewCachedBrowser(fb, time.Minute)
	defer c.Stop()

	first, err := c.BrowseChildren(context.Background(), num(1))
	require.NoError(t, err)
	second, err := c.BrowseChildren(context.Background(), num(1))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fb.browses)
}

func TestCachedBrowserDoesNotCacheErrors(t *testing.T) {
	fb := &fakeBrowser{bad: map[ua.NodeID]ua.StatusCode{num(1): ua.BadNodeIDUnknown}}
	c := NewCachedBrowser(fb, time.Minute)
	defer c.Stop()

	_, err := c.BrowseChildren(context.Background(), num(1))
	require.Error(t, err)
	_, err = c.BrowseChildren(context.Background(), num(1))
	require.Error(t, err)

	// The failing node was re-browsed, not served from cache.
	assert.Equal(t, 2, fb.browses)
}

func TestCachedBrowserCachesEmptyResults(t *testing.T) {
	fb := &fakeBrowser{}
	c := NewCachedBrowser(fb, time.Minute)
	defer c.Stop()

	refs, err := c.BrowseChildren(context.Background(), num(1))
	require.NoError(t, err)
	assert.Empty(t, refs)
	_, err = c.BrowseChildren(context.Background(), num(1))
	require.NoError(t, err)

	assert.Equal(t, 1, fb.browses, "leaf nodes are cached like any other result")
}
