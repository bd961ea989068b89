package v1

import (
	"sync"

	errs "github.com/Shirel25/NutriSnap-HAI/server/internal/errors"
	"github.com/Shirel25/NutriSnap-HAI/server/service/trial"
	"github.com/Shirel25/NutriSnap-HAI/store"
)

// Registry holds the live session machines, one per participant run. Sessions
// are memory-only: an abandoned session simply stays here until process end,
// which is not an error; only appended records are durable.
type Registry struct {
	mu       sync.RWMutex
	machines map[string]*trial.Machine
	store    *store.Store
}

func NewRegistry(store *store.Store) *Registry {
	return &Registry{
		machines: make(map[string]*trial.Machine),
		store:    store,
	}
}

// Create starts a new session machine and returns it.
func (r *Registry) Create() *trial.Machine {
	session := trial.NewSession()
	machine := trial.NewMachine(session, r.store)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.machines[session.ID] = machine
	return machine
}

// Get returns the machine owning the given session.
func (r *Registry) Get(sessionID string) (*trial.Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	machine, ok := r.machines[sessionID]
	if !ok {
		return nil, errs.SessionNotFound(sessionID)
	}
	return machine, nil
}
