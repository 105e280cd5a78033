// Package session はログアウト済みトークンの失効リストをRedisで管理します。
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist はjtiをキーにトークンの失効状態を保持します。
// エントリはトークンの自然満了時刻と同じTTLで自動的に消えるため、
// 明示的な掃除は不要です。
type TokenDenylist struct {
	client *redis.Client
	prefix string
}

// NewTokenDenylist はTokenDenylistの新しいインスタンスを生成します。
func NewTokenDenylist(client *redis.Client, prefix string) *TokenDenylist {
	if prefix == "" {
		prefix = "revoked"
	}
	return &TokenDenylist{client: client, prefix: prefix}
}

func (d *TokenDenylist) key(jti string) string {
	return fmt.Sprintf("%s:%s", d.prefix, jti)
}

// Revoke はトークンIDをttlの間失効リストに登録します。
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return d.client.Set(ctx, d.key(jti), "1", ttl).Err()
}

// IsRevoked はトークンIDが失効済みかどうかを返します。
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
