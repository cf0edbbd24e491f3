package cache

import "example.com/testmod/storage"

type LRU struct {
	backend storage.Store
	size    int
}

func (c *LRU) Get(key string) ([]byte, error) { return c.backend.Get(key) }

func (c *LRU) Put(key string, value []byte) error { return c.backend.Put(key, value) }

func (c *LRU) Evict() { c.size = 0 }
