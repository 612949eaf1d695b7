package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCacheServiceDisabled(t *testing.T) {
	repo := &mockCacheRepo{}
	svc := NewCacheService(repo, nil, 0, nil, false)

	svc.Set(context.Background(), "list", 1, time.Minute)
	var dest int
	assert.False(t, svc.Get(context.Background(), "list", &dest))
	assert.Empty(t, repo.items)
	assert.False(t, (*CacheService)(nil).Enabled())
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := &mockCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	svc.Set(ctx, "code:202101", 1, 0)
	svc.Set(ctx, "list", 2, 0)
	require.NoError(t, svc.Invalidate(ctx, "code:*"))

	var dest int
	assert.False(t, svc.Get(ctx, "code:202101", &dest))
	assert.True(t, svc.Get(ctx, "list", &dest))
	assert.Equal(t, 2, dest)
}
