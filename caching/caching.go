// Package caching provides an in-memory TTL cache with JSON serialization
// helpers, used to serve repeated gallery listings and work lookups.
package caching

import (
	"fmt"
	"time"

	"github.com/khoshimi/Pupupu/logger"

	"github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"
)

const (
	TTLGallery = 30 * time.Second
	TTLWork    = 30 * time.Second
)

// Cache keys
const (
	KeyGalleryPrefix = "works:gallery:"
	KeyWorkPrefix    = "works:id:"
)

var store = gocache.New(5*time.Minute, 10*time.Minute)

// GetJSON retrieves a value and unmarshals it into dest.
func GetJSON(key string, dest any) error {
	val, found := store.Get(key)
	if !found {
		return fmt.Errorf("key not found: %s", key)
	}
	raw, ok := val.(string)
	if !ok || raw == "" {
		return fmt.Errorf("empty value for key: %s", key)
	}
	return json.Unmarshal([]byte(raw), dest)
}

// SetJSON marshals a value as JSON and stores it with the given TTL.
func SetJSON(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	store.Set(key, string(data), expiration)
	return nil
}

// GetOrSet retrieves a value, computing and storing it via fn on a miss.
func GetOrSet(key string, dest any, expiration time.Duration, fn func() (any, error)) error {
	if err := GetJSON(key, dest); err == nil {
		logger.Debugf("Cache hit for key: %s", key)
		return nil
	}

	logger.Debugf("Cache miss for key: %s", key)
	value, err := fn()
	if err != nil {
		return err
	}

	if err := SetJSON(key, value, expiration); err != nil {
		logger.Warningf("Failed to set cache for key %s: %v", key, err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete removes a single key.
func Delete(key string) {
	store.Delete(key)
}

// Flush clears the whole cache.
func Flush() {
	store.Flush()
}
