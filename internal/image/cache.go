// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/sophia/internal/platform/constants"
	"github.com/taibuivan/sophia/internal/platform/redis"
)

// # Dimension Cache

// DimensionCache keeps recently fetched info.json dimensions keyed by IIIF file.
type DimensionCache interface {
	Get(context context.Context, file string) (Dimensions, bool, error)
	Set(context context.Context, file string, dimensions Dimensions) error
}

// RedisDimensionCache stores dimensions as JSON values with a TTL.
type RedisDimensionCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewRedisDimensionCache returns a cache using [constants.ImageDimensionsTTL].
func NewRedisDimensionCache(client goredis.Cmdable) *RedisDimensionCache {
	return &RedisDimensionCache{client: client, ttl: constants.ImageDimensionsTTL}
}

func dimensionKey(file string) string {
	return constants.RedisPrefixImageDimensions + file
}

// Get returns the cached dimensions of file; a miss is (zero, false, nil).
func (cache *RedisDimensionCache) Get(context context.Context, file string) (Dimensions, bool, error) {
	var dimensions Dimensions
	found, err := redis.GetJSON(context, cache.client, dimensionKey(file), &dimensions)
	if err != nil || !found {
		return Dimensions{}, false, err
	}
	return dimensions, true, nil
}

// Set stores the dimensions of file.
func (cache *RedisDimensionCache) Set(context context.Context, file string, dimensions Dimensions) error {
	return redis.SetJSON(context, cache.client, dimensionKey(file), dimensions, cache.ttl)
}
