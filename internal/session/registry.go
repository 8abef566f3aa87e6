package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry holds one Learner per session context so that hosts serving
// several learners never share mutable quiz state.
type Registry struct {
	mu       sync.RWMutex
	learners map[string]*Learner
	factory  func() *Learner
}

// NewRegistry creates a Registry. factory builds each new Learner.
func NewRegistry(factory func() *Learner) *Registry {
	if factory == nil {
		factory = func() *Learner { return NewLearner(nil, nil) }
	}
	return &Registry{learners: make(map[string]*Learner), factory: factory}
}

// Create registers a new Learner under a fresh id.
func (r *Registry) Create() (string, *Learner) {
	id := uuid.NewString()
	l := r.factory()

	r.mu.Lock()
	r.learners[id] = l
	r.mu.Unlock()
	return id, l
}

// Get returns the Learner for id.
func (r *Registry) Get(id string) (*Learner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.learners[id]
	return l, ok
}

// Drop forgets id, discarding its session and history.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	delete(r.learners, id)
	r.mu.Unlock()
}

// Len returns the number of registered learners.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.learners)
}
