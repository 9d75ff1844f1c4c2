package server

import "sync"

// IconCatalog resolves logical icon names to image handles the client
// knows how to draw.
type IconCatalog struct {
	mu      sync.RWMutex
	handles map[string]string
}

func NewIconCatalog(handles map[string]string) *IconCatalog {
	c := &IconCatalog{}
	c.Replace(handles)
	return c
}

// Replace swaps the whole catalog.
func (c *IconCatalog) Replace(handles map[string]string) {
	cp := make(map[string]string, len(handles))
	for name, h := range handles {
		cp[name] = h
	}
	c.mu.Lock()
	c.handles = cp
	c.mu.Unlock()
}

// ResolveIcon implements hud.IconResolver.
func (c *IconCatalog) ResolveIcon(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handles[name]
	return h, ok && h != ""
}
