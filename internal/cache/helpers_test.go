//go:build unit || integration

package cache

import "parts-storefront/internal/config"

func configFor(driver string) config.CacheConfig {
	return config.CacheConfig{
		Driver:   driver,
		FilePath: "file::memory:",
		Redis:    config.RedisConfig{Addr: "localhost:6379", KeyPrefix: "storefront-test:"},
	}
}
