package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// store is the in-process storage of one cache level.
type store[V any] interface {
	Get(key Key) (V, bool)
	Add(key Key, value V)
	Len() int
	Purge()
}

func newStore[V any](capacity int) store[V] {
	if capacity > 0 {
		c, err := lru.New[Key, V](capacity)
		if err == nil {
			return lruStore[V]{c}
		}
	}
	return mapStore[V]{}
}

// mapStore never evicts.
type mapStore[V any] map[Key]V

func (m mapStore[V]) Get(key Key) (V, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapStore[V]) Add(key Key, value V) { m[key] = value }
func (m mapStore[V]) Len() int             { return len(m) }
func (m mapStore[V]) Purge()               { clear(m) }

type lruStore[V any] struct {
	c *lru.Cache[Key, V]
}

func (l lruStore[V]) Get(key Key) (V, bool) { return l.c.Get(key) }
func (l lruStore[V]) Add(key Key, value V)  { l.c.Add(key, value) }
func (l lruStore[V]) Len() int              { return l.c.Len() }
func (l lruStore[V]) Purge()                { l.c.Purge() }
