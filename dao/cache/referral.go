package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReferralCache 邀请码 -> 用户ID 的只读缓存
// 邀请码一经生成不可变，缓存不做失效，只做过期兜底
type ReferralCache struct {
	redis *redis.Client
}

func NewReferralCache(rds *redis.Client) *ReferralCache {
	return &ReferralCache{redis: rds}
}

func (c *ReferralCache) key(code string) string {
	return fmt.Sprintf("referral:code:%s", code)
}

func (c *ReferralCache) GetOwner(ctx context.Context, code string) (string, bool) {
	val, err := c.redis.Get(ctx, c.key(code)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *ReferralCache) SetOwner(ctx context.Context, code, userID string) {
	c.redis.Set(ctx, c.key(code), userID, 24*time.Hour)
}
