package httpserver

import (
	"sync"

	"orderfront/internal/cart"
	"orderfront/internal/customize"
)

// flowRegistry tracks in-flight customization flows by handle. A flow is
// removed once it completes or is cancelled; it holds no cart state of its
// own.
type flowRegistry struct {
	mu    sync.Mutex
	flows map[string]*flowEntry
}

type flowEntry struct {
	flow      *customize.Flow
	storeID   string
	cartStore *cart.Store
}

func newFlowRegistry() *flowRegistry {
	return &flowRegistry{flows: make(map[string]*flowEntry)}
}

func (r *flowRegistry) put(id string, entry *flowEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flows[id] = entry
}

func (r *flowRegistry) get(id, storeID string) (*flowEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.flows[id]
	if !ok || entry.storeID != storeID {
		return nil, false
	}
	return entry, true
}

func (r *flowRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, id)
}
