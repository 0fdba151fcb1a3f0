// Package typecache memoizes values derived from a reflect.Type. Derived
// values must be immutable: once stored they are shared between callers
// without copying.
package typecache

import (
	"reflect"
	"sync"
)

// Cache is a concurrency-safe map from reflect.Type to a derived value.
// The zero value is ready to use.
type Cache[V any] struct {
	mu sync.RWMutex
	m  map[reflect.Type]V
}

// Load returns the cached value for t, if any.
func (c *Cache[V]) Load(t reflect.Type) (V, bool) {
	c.mu.RLock()
	v, ok := c.m[t]
	c.mu.RUnlock()
	return v, ok
}

// LoadOrCompute returns the cached value for t, computing and storing it via
// f on first use. f may run more than once under contention; all callers
// observe the same stored value.
func (c *Cache[V]) LoadOrCompute(t reflect.Type, f func() V) V {
	c.mu.RLock()
	if v, ok := c.m[t]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	v := f()

	c.mu.Lock()
	if prev, ok := c.m[t]; ok { // double-check
		c.mu.Unlock()
		return prev
	}
	if c.m == nil {
		c.m = map[reflect.Type]V{}
	}
	c.m[t] = v
	c.mu.Unlock()
	return v
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	n := len(c.m)
	c.mu.RUnlock()
	return n
}
