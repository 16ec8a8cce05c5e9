package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// DefaultKeyPrefix is the prefix for all catalog keys in redis.
const DefaultKeyPrefix = "asset_catalog:package:"

// InitRedisClient initializes and returns a redis client, retrying the
// initial connection with a linear delay.
func InitRedisClient(ctx context.Context, addr, password string, maxRetries int, retryDelay time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	for i := 0; i < maxRetries; i++ {
		_, err := client.Ping(ctx).Result()
		if err == nil {
			logrus.Infof("connected to redis at %s (attempt %d/%d)", addr, i+1, maxRetries)
			return client, nil
		}

		if i < maxRetries-1 {
			delay := time.Duration(i+1) * retryDelay
			logrus.Warnf("redis connection failed (attempt %d/%d): %v, retrying in %v...",
				i+1, maxRetries, err, delay)
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("failed to connect to redis at %s after %d attempts", addr, maxRetries)
}

// RedisCatalogConfig configures a RedisCatalog.
type RedisCatalogConfig struct {
	// KeyPrefix overrides DefaultKeyPrefix when non-empty.
	KeyPrefix string
}

// RedisCatalog serves package manifests stored as JSON values in redis.
// Dedicated-server fleets use it to share one installed-package inventory
// across hosts.
type RedisCatalog struct {
	client *redis.Client
	prefix string
}

// NewRedisCatalog creates a catalog backed by the given client.
func NewRedisCatalog(client *redis.Client, cfg RedisCatalogConfig) *RedisCatalog {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisCatalog{client: client, prefix: prefix}
}

func (c *RedisCatalog) key(id string) string {
	return c.prefix + id
}

// Has implements Catalog. Redis errors are logged and reported as
// not-present; the presence check itself must stay side-effect-free and
// cannot surface an error to the resolver.
func (c *RedisCatalog) Has(ctx context.Context, id string) bool {
	if err := ValidatePackageID(id); err != nil {
		return false
	}

	n, err := c.client.Exists(ctx, c.key(id)).Result()
	if err != nil {
		logrus.Warnf("redis EXISTS failed for package %s: %v", id, err)
		return false
	}
	return n > 0
}

// Manifest implements Catalog.
func (c *RedisCatalog) Manifest(ctx context.Context, id string) (*Manifest, error) {
	if err := ValidatePackageID(id); err != nil {
		return nil, err
	}

	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest for package %s: %w", id, err)
	}

	var m Manifest
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("%w: package %s: %v", ErrInvalidManifest, id, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Install implements Installer. Manifests are stored without a TTL: package
// availability does not expire on its own.
func (c *RedisCatalog) Install(ctx context.Context, m *Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest for package %s: %w", m.ID, err)
	}

	if err := c.client.Set(ctx, c.key(m.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set manifest for package %s: %w", m.ID, err)
	}

	logrus.Infof("installed package %s (version %s) into redis catalog", m.ID, m.Version)
	return nil
}
