package internal

import (
	"sync"

	"github.com/dmitrymomot/waypoint/pkg/stack"
)

// Handle addresses a coordinator in the arena. The zero value is never
// a valid handle.
type Handle int

// Coordinator is one node in the coordination tree: a named scope that
// owns its own route stack. Parent links are handles, not references,
// so retiring a subtree cannot leave dangling pointers.
type Coordinator struct {
	Name   string
	Stack  *stack.Stack
	parent Handle
}

// Arena owns all coordinators and their parent/child relationships.
type Arena struct {
	mu      sync.Mutex
	entries map[Handle]*Coordinator
	next    Handle
}

// NewArena creates an empty coordinator arena.
func NewArena() *Arena {
	return &Arena{entries: make(map[Handle]*Coordinator)}
}

// Add registers a coordinator under the given parent. A zero parent
// handle makes it a root. The coordinator gets a fresh route stack.
func (a *Arena) Add(name string, parent Handle, opts ...stack.Option) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.next++
	h := a.next
	a.entries[h] = &Coordinator{
		Name:   name,
		Stack:  stack.New(opts...),
		parent: parent,
	}
	return h
}

// Get returns the coordinator for a handle, ok=false when it has been
// retired or never existed.
func (a *Arena) Get(h Handle) (*Coordinator, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.entries[h]
	return c, ok
}

// Parent returns the parent handle, ok=false for roots and unknown
// handles.
func (a *Arena) Parent(h Handle) (Handle, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	c, ok := a.entries[h]
	if !ok || c.parent == 0 {
		return 0, false
	}
	return c.parent, true
}

// Retire removes the coordinator and its whole subtree from the arena.
// Retiring an unknown handle is a no-op.
func (a *Arena) Retire(h Handle) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.entries[h]; !ok {
		return
	}

	doomed := map[Handle]struct{}{h: {}}
	// Children reference parents, not the other way round, so walk the
	// arena until no new descendants are found.
	for {
		grew := false
		for handle, c := range a.entries {
			if _, dead := doomed[handle]; dead {
				continue
			}
			if _, parentDead := doomed[c.parent]; parentDead {
				doomed[handle] = struct{}{}
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	for handle := range doomed {
		delete(a.entries, handle)
	}
}

// Len returns the number of live coordinators.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}
