package field

import "sync"

// Cache memoizes per-field results that are pure functions of the modulus. It is an
// explicit object passed alongside a field, safe for concurrent use.
type Cache struct {
	mu        sync.Mutex
	primitive map[uint64]Element
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{primitive: make(map[uint64]Element)}
}

// PrimitiveElement returns f.PrimitiveElement(), computing it at most once per modulus.
// A nil cache computes directly.
func (c *Cache) PrimitiveElement(f PrimeField) (Element, error) {
	if c == nil {
		return f.PrimitiveElement()
	}

	c.mu.Lock()
	alpha, ok := c.primitive[f.p]
	c.mu.Unlock()
	if ok {
		return alpha, nil
	}

	alpha, err := f.PrimitiveElement()
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.primitive[f.p] = alpha
	c.mu.Unlock()
	return alpha, nil
}

// Len returns the number of memoized moduli.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.primitive)
}
