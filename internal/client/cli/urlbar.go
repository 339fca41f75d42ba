package cli

import "sync"

// addressBar is the terminal's stand-in for the browser location bar: a
// single slot holding the current search query string. The controller
// replaces it on every filter change, so the value is always a shareable
// representation of the visible results.
type addressBar struct {
	mu    sync.Mutex
	query string
}

func (b *addressBar) Replace(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = query
}

func (b *addressBar) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}
