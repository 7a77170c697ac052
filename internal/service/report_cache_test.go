package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportCacheFallsBackToNoop(t *testing.T) {
	assert.IsType(t, NoopReportCache{}, NewReportCache(nil, time.Minute, nil))

	cache := NoopReportCache{}
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "k", 1))

	var v int
	found, err := cache.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, cache.InvalidateAll(ctx))
}
