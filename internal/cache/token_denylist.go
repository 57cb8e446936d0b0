package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist remembers logged-out token ids until the token would have expired anyway
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type tokenDenylist struct {
	client *redis.Client
	now    func() time.Time
}

// NewTokenDenylist creates a Redis token denylist
func NewTokenDenylist(client *redis.Client) TokenDenylist {
	return &tokenDenylist{client: client, now: time.Now}
}

func (c *tokenDenylist) key(tokenID string) string {
	return fmt.Sprintf("qchat:token:%s:revoked", tokenID)
}

func (c *tokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(c.now())
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, c.key(tokenID), 1, ttl).Err()
}

func (c *tokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
