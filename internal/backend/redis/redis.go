// Package redis persists permission overrides as one redis string per role.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ChurchAdmin/ChurchAdmin/internal/config"
	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

const pingTimeout = 5 * time.Second

// Backend implements rbac.Backend on a redis server.
type Backend struct {
	client goredis.Cmdable
	prefix string
}

// NewClient creates a redis client from cfg and checks the connection.
func NewClient(ctx context.Context, cfg config.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("backend/redis: ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// New creates a backend storing keys below prefix.
func New(client goredis.Cmdable, prefix string) *Backend {
	return &Backend{client: client, prefix: prefix}
}

// Key returns the redis key of role's override.
func (b *Backend) Key(role rbac.Role) string {
	return b.prefix + string(role)
}

// ReadOverrides implements rbac.Backend.
// The role set is closed, so all keys are fetched with a single MGET instead of a SCAN.
func (b *Backend) ReadOverrides(ctx context.Context) ([]rbac.StoredOverride, error) {
	roles := rbac.Roles()

	keys := make([]string, len(roles))
	for i, r := range roles {
		keys[i] = b.Key(r)
	}

	values, err := b.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("backend/redis: mget: %w", err)
	}

	out := make([]rbac.StoredOverride, 0, len(values))

	for i, v := range values {
		var payload []byte

		switch val := v.(type) {
		case nil:
			continue
		case string:
			payload = []byte(val)
		case []byte:
			payload = val
		default:
			payload = []byte(fmt.Sprint(val))
		}

		out = append(out, rbac.StoredOverride{Role: string(roles[i]), Payload: payload})
	}

	return out, nil
}

// WriteOverride implements rbac.Backend.
func (b *Backend) WriteOverride(ctx context.Context, o rbac.StoredOverride) error {
	if err := b.client.Set(ctx, b.prefix+o.Role, o.Payload, 0).Err(); err != nil {
		return fmt.Errorf("backend/redis: set: %w", err)
	}

	return nil
}

// DeleteOverride implements rbac.Backend. DEL of a missing key is not an error.
func (b *Backend) DeleteOverride(ctx context.Context, role rbac.Role) error {
	if err := b.client.Del(ctx, b.Key(role)).Err(); err != nil {
		return fmt.Errorf("backend/redis: del: %w", err)
	}

	return nil
}
