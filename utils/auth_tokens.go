package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrResetTokenInvalid = errors.New("reset token not found or expired")

// generateSecureToken returns a random base32 string of the given length.
func generateSecureToken(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	tok := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(tok) > length {
		tok = tok[:length]
	}
	return tok, nil
}

// IssueResetToken stores a fresh reset token for username, replacing any previous one.
func IssueResetToken(ctx context.Context, client *redis.Client, username string) (string, error) {
	tok, err := generateSecureToken(32)
	if err != nil {
		return "", err
	}
	if err := client.Set(ctx, ResetTokenPrefix+username, HashToken(tok), ResetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return tok, nil
}

// ConsumeResetToken checks token for username and deletes it on success.
func ConsumeResetToken(ctx context.Context, client *redis.Client, username, token string) error {
	key := ResetTokenPrefix + username
	stored, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrResetTokenInvalid
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve reset token: %w", err)
	}
	if stored != HashToken(token) {
		return ErrResetTokenInvalid
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		GetLogger().Sugar().Warnf("failed to delete reset token for %s: %v", username, err)
	}
	return nil
}

// CacheRevokedToken marks jti revoked until the token would have expired anyway.
func CacheRevokedToken(ctx context.Context, client *redis.Client, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, AuthCachePrefix+jti, "1", ttl).Err()
}

// IsRevokedCached reports whether jti is in the Redis blocklist.
func IsRevokedCached(ctx context.Context, client *redis.Client, jti string) (bool, error) {
	n, err := client.Exists(ctx, AuthCachePrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
