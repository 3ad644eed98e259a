package state

import (
	"sort"
	"sync"
)

// Registry is the process-wide provider-state registry. All methods are safe
// for concurrent use. Mutation happens under a write lock so a concurrent
// matching read never observes a partially updated selection/scope pair.
type Registry struct {
	mu        sync.RWMutex
	active    []string // ordered; position is priority
	scopePath string   // "" means unscoped

	known          map[string]struct{}
	contractStates map[string]struct{}
	customStates   map[string]struct{}
}

// SetResult reports the outcome of a SetStates call. Unknown names never
// abort the call; each produces one warning and the valid subset is applied.
type SetResult struct {
	ValidStates []string
	Warnings    []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		known:          make(map[string]struct{}),
		contractStates: make(map[string]struct{}),
		customStates:   make(map[string]struct{}),
	}
}

// RegisterContract records a state name declared by a contract variant.
func (r *Registry) RegisterContract(name string) {
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.known[name] = struct{}{}
	r.contractStates[name] = struct{}{}
}

// RegisterCustom records a state name declared by a custom variant.
func (r *Registry) RegisterCustom(name string) {
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.known[name] = struct{}{}
	r.customStates[name] = struct{}{}
}

// SetStates replaces the active selection with the known subset of the
// requested names, preserving request order. The previous selection is fully
// replaced, never extended. The scope path is always replaced too: a
// non-empty scopePath takes effect verbatim and an empty one clears any
// previous scope. An all-invalid request still succeeds, leaving the
// selection empty with one warning per rejected name.
func (r *Registry) SetStates(names []string, scopePath string) SetResult {
	result := SetResult{
		ValidStates: make([]string, 0, len(names)),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range names {
		if _, ok := r.known[name]; ok {
			result.ValidStates = append(result.ValidStates, name)
		} else {
			result.Warnings = append(result.Warnings, name+" not found in contracts or custom routes")
		}
	}

	r.active = append([]string(nil), result.ValidStates...)
	r.scopePath = scopePath
	return result
}

// Reset unconditionally clears the active selection and scope. Resetting an
// already-clean registry is a no-op.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = nil
	r.scopePath = ""
}

// Active returns a snapshot of the current selection and scope path.
func (r *Registry) Active() (states []string, scopePath string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.active...), r.scopePath
}

// Known returns a sorted snapshot of every registered state name, used in
// diagnostic payloads and the startup banner.
func (r *Registry) Known() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.known))
	for name := range r.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownCount returns the number of registered state names.
func (r *Registry) KnownCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.known)
}

// DeclaredBy reports which origins declared the given state name.
func (r *Registry) DeclaredBy(name string) (contract, custom bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, contract = r.contractStates[name]
	_, custom = r.customStates[name]
	return contract, custom
}
