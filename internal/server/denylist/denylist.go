// Package denylist tracks revoked session tokens. Signing out adds the token
// here; the auth middleware rejects any token still on the list. Entries
// expire together with the token itself, so the list stays small.
package denylist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

type Store interface {
	// Revoke marks the token as unusable until it would have expired anyway.
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	// IsRevoked reports whether the token has been revoked.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// hashToken derives the storage key. Raw tokens never leave the process.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
