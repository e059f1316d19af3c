// project.go — the mutable, mutex-guarded project handle a session owns.
// Every mutator acquires mu for its whole call, matching spec.md §5's
// "strictly serialized by the session mutex" ordering guarantee: the
// session's mutation lock described there is this mutex.
package project

import (
	"sync"

	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

// DeletePolicy controls what happens to descendants of a deleted bone.
type DeletePolicy string

const (
	// DeletePolicyCascade deletes descendant bones and their cubes. Default.
	DeletePolicyCascade DeletePolicy = "cascade"
	// DeletePolicyReparent reattaches descendant bones to the root.
	DeletePolicyReparent DeletePolicy = "reparent"
)

// Project is the session-scoped handle over a project State.
type Project struct {
	mu           sync.Mutex
	state        *State
	revision     string
	limits       Limits
	deletePolicy DeletePolicy
}

// New creates a Project wrapping a freshly-initialized State.
func New(id, name string) *Project {
	p := &Project{
		state:        NewState(id, name),
		limits:       DefaultLimits,
		deletePolicy: DeletePolicyCascade,
	}
	p.revision = ComputeRevision(p.state)
	return p
}

// WithLimits overrides the project's resource limits.
func (p *Project) WithLimits(l Limits) *Project {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.limits = l
	return p
}

// Lock acquires the project's mutation mutex. Every mutator, ApplyPlan,
// Snapshot, CurrentRevision and Limits acquire this same non-reentrant
// mutex themselves, so a caller holding Lock must not call them
// (SnapshotLocked is the read for a lock holder).
func (p *Project) Lock()   { p.mu.Lock() }
func (p *Project) Unlock() { p.mu.Unlock() }

// CurrentRevision returns the project's current revision token. Callers
// needing a consistent read alongside other state should hold Lock/Unlock.
func (p *Project) CurrentRevision() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revision
}

// Snapshot returns a deep copy of the current state plus its revision, safe
// to read without holding the project lock afterward.
func (p *Project) Snapshot() (*State, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone(), p.revision
}

// SnapshotLocked returns a deep copy of the current state plus its
// revision. Callers must already hold the project lock.
func (p *Project) SnapshotLocked() (*State, string) {
	return p.state.Clone(), p.revision
}

// restoreSnapshot replaces the project's state and revision wholesale.
// Callers must hold the lock. ApplyPlan does not call it: a failed plan's
// working clone is discarded, leaving the live state untouched.
func (p *Project) restoreSnapshot(state *State, revision string) {
	p.state = state
	p.revision = revision
}

// mutate runs fn against the live state under the lock, then recomputes the
// revision exactly once on success. fn returns a *toolerr.Detail on
// failure, in which case the state is left untouched (invariant 2: no
// partial writes on a rejected mutation).
func (p *Project) mutate(fn func(s *State) *toolerr.Detail) (string, *toolerr.Detail) {
	p.mu.Lock()
	defer p.mu.Unlock()

	working := p.state.Clone()
	if detail := fn(working); detail != nil {
		return p.revision, detail
	}
	p.state = working
	p.revision = ComputeRevision(p.state)
	return p.revision, nil
}

// Limits returns the project's configured resource limits.
func (p *Project) Limits() Limits {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.limits
}
