// Package intern deduplicates strings. Decoded documents repeat node
// ids in every edge spec; routing them through a pool makes the built
// graph share one backing instance per id instead of holding a copy
// per occurrence.
package intern

import "sync"

// Pool maps every distinct string to one canonical instance. Safe for
// concurrent use. The zero value is not usable; call NewPool.
type Pool struct {
	mu    sync.RWMutex
	store map[string]string
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{store: make(map[string]string)}
}

// Intern returns the canonical instance of s, registering it on first
// sight. The empty string is its own canonical instance.
func (p *Pool) Intern(s string) string {
	if s == "" {
		return ""
	}

	p.mu.RLock()
	c, ok := p.store[s]
	p.mu.RUnlock()
	if ok {
		return c
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check, another goroutine may have won the race.
	if c, ok := p.store[s]; ok {
		return c
	}
	p.store[s] = s
	return s
}

// Len returns the number of distinct strings seen.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.store)
}
