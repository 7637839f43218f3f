package scale

import (
	"fmt"
	"sync/atomic"
)

// Snapshot is one immutable view of the scale model. Callers must not modify
// the slices it exposes.
type Snapshot struct {
	// Definition is nil when no scale is loaded.
	Definition *Definition
	Root       int
	// Anchored holds Definition.Steps anchored on Root; nil without a
	// definition.
	Anchored []float64
}

// Active reports whether a scale is loaded.
func (s *Snapshot) Active() bool {
	return s != nil && s.Definition != nil
}

// Model owns the active Definition and root selection. Writers build a new
// Snapshot and swap it in; readers call Snapshot and never block.
type Model struct {
	snap atomic.Pointer[Snapshot]
}

// NewModel returns a Model without a scale, rooted at root.
func NewModel(root int) (*Model, error) {
	if !ValidRoot(root) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRoot, root)
	}

	m := &Model{}
	m.snap.Store(&Snapshot{Root: root})

	return m, nil
}

// Snapshot returns the current view.
func (m *Model) Snapshot() *Snapshot {
	return m.snap.Load()
}

// Root returns the selected root index.
func (m *Model) Root() int {
	return m.snap.Load().Root
}

// SetDefinition installs def, recomputing the anchored steps for the current
// root. def is copied.
func (m *Model) SetDefinition(def *Definition) error {
	if def == nil {
		return ErrNilDefinition
	}

	def = NewDefinition(def.Description, def.Steps)
	m.update(func(cur *Snapshot) *Snapshot {
		return &Snapshot{
			Definition: def,
			Root:       cur.Root,
			Anchored:   Anchor(def.Steps, cur.Root),
		}
	})

	return nil
}

// Clear drops the active Definition.
func (m *Model) Clear() {
	m.update(func(cur *Snapshot) *Snapshot {
		return &Snapshot{Root: cur.Root}
	})
}

// SetRoot selects a new root and re-anchors the active Definition.
func (m *Model) SetRoot(root int) error {
	if !ValidRoot(root) {
		return fmt.Errorf("%w: %d", ErrInvalidRoot, root)
	}

	m.update(func(cur *Snapshot) *Snapshot {
		next := &Snapshot{Definition: cur.Definition, Root: root}
		if cur.Definition != nil {
			next.Anchored = Anchor(cur.Definition.Steps, root)
		}
		return next
	})

	return nil
}

func (m *Model) update(fn func(cur *Snapshot) *Snapshot) {
	for {
		cur := m.snap.Load()
		if m.snap.CompareAndSwap(cur, fn(cur)) {
			return
		}
	}
}
