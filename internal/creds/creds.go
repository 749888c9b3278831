// Package creds resolves the bearer token the client attaches to relay
// requests. A Source abstracts where the token comes from: a fixed
// value, a cached copy mirrored to disk, or the companion-website
// bridge. An empty token means the unauthenticated path.
package creds

import (
	"context"
	"sync"
)

// Source is the credential capability: resolve the current token,
// forget it, and observe replacements.
type Source interface {
	// Get returns the current bearer token, or "" when unauthenticated.
	Get(ctx context.Context) (string, error)
	// Invalidate forgets the cached token so the next attempt
	// re-resolves credentials.
	Invalidate()
	// OnUpdate registers a callback invoked whenever the token changes.
	OnUpdate(fn func(token string))
}

// Static is a fixed-token source (env var or flag).
type Static struct {
	mu    sync.RWMutex
	token string
}

// NewStatic creates a Source that always yields the given token until
// invalidated.
func NewStatic(token string) *Static {
	return &Static{token: token}
}

func (s *Static) Get(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *Static) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

func (s *Static) OnUpdate(fn func(string)) {}

// Cache is an in-memory token source optionally mirrored to a FileStore,
// so a token received once (via the bridge or `exply auth set-token`)
// survives restarts.
type Cache struct {
	mu    sync.RWMutex
	token string
	store *FileStore
	subs  []func(string)
}

// NewCache creates a Cache. When store is non-nil, the persisted token
// is loaded eagerly and later updates are mirrored back; mirror failures
// are non-fatal since the in-memory copy stays authoritative.
func NewCache(store *FileStore) *Cache {
	c := &Cache{store: store}
	if store != nil {
		if saved, err := store.Load(); err == nil {
			c.token = saved.BearerToken
		}
	}
	return c
}

func (c *Cache) Get(ctx context.Context) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, nil
}

// Set replaces the token, mirrors it to the store, and notifies
// subscribers.
func (c *Cache) Set(token string) {
	c.mu.Lock()
	c.token = token
	subs := make([]func(string), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	if c.store != nil {
		_ = c.store.Save(&Credentials{BearerToken: token})
	}
	for _, fn := range subs {
		fn(token)
	}
}

// Invalidate clears both the in-memory token and the mirrored copy.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if c.store != nil {
		_ = c.store.Clear()
	}
}

func (c *Cache) OnUpdate(fn func(string)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}
