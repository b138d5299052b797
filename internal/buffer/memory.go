package buffer

import "sync"

// MemoryProvider is an in-process Provider backed by a map. It serves the
// HTTP host and tests; real editor hosts supply their own Provider.
type MemoryProvider struct {
	mu      sync.RWMutex
	buffers map[string]string
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		buffers: make(map[string]string),
	}
}

// GetText implements Provider.
func (p *MemoryProvider) GetText(identity string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	text, ok := p.buffers[identity]

	return text, ok
}

// SetText implements Provider.
func (p *MemoryProvider) SetText(identity string, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buffers[identity] = text

	return nil
}
