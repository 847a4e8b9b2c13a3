package httpserver

import (
	"log"
	"sync"

	"orderfront/internal/cart"
)

const sessionHeader = "X-Session-Id"

// sessionRegistry hands out one cart.Store per (store, session), creating
// and rehydrating it from durable storage on first touch. The registry only
// guards the map; each store itself is session-confined.
type sessionRegistry struct {
	mu         sync.Mutex
	carts      map[string]*cart.Store
	storageFor func(storeID, sessionID string) cart.Storage
	logger     *log.Logger
}

func newSessionRegistry(storageFor func(storeID, sessionID string) cart.Storage, logger *log.Logger) *sessionRegistry {
	return &sessionRegistry{
		carts:      make(map[string]*cart.Store),
		storageFor: storageFor,
		logger:     logger,
	}
}

func (r *sessionRegistry) cartFor(storeID, sessionID string) *cart.Store {
	key := storeID + "/" + sessionID
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.carts[key]; ok {
		return existing
	}
	var storage cart.Storage
	if r.storageFor != nil {
		storage = r.storageFor(storeID, sessionID)
	} else {
		storage = cart.NewMemoryStorage()
	}
	store := cart.NewStore(storage, r.logger)
	r.carts[key] = store
	return store
}
