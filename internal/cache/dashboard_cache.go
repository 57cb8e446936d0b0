package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"menteazul/internal/model"
	"time"

	"github.com/redis/go-redis/v9"
)

// DashboardCache holds computed dashboards until a new result invalidates them.
// Entries are versioned per user: Get reports the current version and Set only
// lands where Get will look if no Invalidate happened in between.
type DashboardCache interface {
	Get(ctx context.Context, userID string) (*model.Dashboard, int64, error)
	Set(ctx context.Context, dashboard *model.Dashboard, version int64) error
	Invalidate(ctx context.Context, userID string) error
}

type dashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache creates a Redis dashboard cache
func NewDashboardCache(client *redis.Client, ttl time.Duration) DashboardCache {
	return &dashboardCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *dashboardCache) versionKey(userID string) string {
	return fmt.Sprintf("qchat:user:%s:dashboard:version", userID)
}

func (c *dashboardCache) key(userID string, version int64) string {
	return fmt.Sprintf("qchat:user:%s:dashboard:%d", userID, version)
}

func (c *dashboardCache) Get(ctx context.Context, userID string) (*model.Dashboard, int64, error) {
	version, err := c.client.Get(ctx, c.versionKey(userID)).Int64()
	if err != nil && err != redis.Nil {
		return nil, 0, err
	}

	data, err := c.client.Get(ctx, c.key(userID, version)).Bytes()
	if err == redis.Nil {
		return nil, version, nil
	}
	if err != nil {
		return nil, version, err
	}
	var d model.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, version, err
	}
	return &d, version, nil
}

func (c *dashboardCache) Set(ctx context.Context, dashboard *model.Dashboard, version int64) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(dashboard.UserID, version), data, c.ttl).Err()
}

// Invalidate moves the user to a new version; older entries expire on their own
func (c *dashboardCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Incr(ctx, c.versionKey(userID)).Err()
}
