// Package cache provides Cache implementations for the read-through entry cache of simpleprefs stores.
package cache

import (
	"github.com/CreativeUnicorns/simpleprefs"
)

var (
	_ simpleprefs.Cache = (*MemoryCache)(nil)
	_ simpleprefs.Cache = (*RedisCache)(nil)
)
