package denylist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RevokeAndLookup(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	revoked, err := s.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "tok-1", time.Now().Add(time.Hour)))

	revoked, err = s.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// other tokens are unaffected
	revoked, err = s.IsRevoked(ctx, "tok-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryStore_ExpiredEntriesAreDropped(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Revoke(ctx, "tok-1", time.Now().Add(10*time.Millisecond)))
	time.Sleep(20 * time.Millisecond)

	revoked, err := s.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked, "an expired token no longer needs tracking")
}

func TestMemoryStore_RevokingExpiredTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Revoke(ctx, "tok-1", time.Now().Add(-time.Hour)))

	revoked, err := s.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
