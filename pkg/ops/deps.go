package ops

import (
	"slices"

	"github.com/bodega-dev/bodega/pkg/errors"
	"github.com/bodega-dev/bodega/pkg/graph"
	"github.com/bodega-dev/bodega/pkg/storage"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// AddDependency records that ticket id is blocked by blockerID. Both IDs may
// be partial. The edge is rejected when it would point a ticket at itself or
// close a cycle in the dependency graph; an already-present edge is reported
// as a no-op via the returned bool. The check-then-write sequence runs under
// the repository lock so the cycle check cannot race another writer.
func AddDependency(store *storage.Store, id, blockerID string) (t *ticket.Ticket, changed bool, err error) {
	err = store.WithLock(func() error {
		t, changed, err = addDependency(store, id, blockerID)
		return err
	})
	return t, changed, err
}

func addDependency(store *storage.Store, id, blockerID string) (*ticket.Ticket, bool, error) {
	t, err := store.Get(id)
	if err != nil {
		return nil, false, err
	}
	blocker, err := store.Get(blockerID)
	if err != nil {
		return nil, false, err
	}

	if t.ID == blocker.ID {
		return nil, false, errors.New(errors.ErrCodeSelfDependency, "ticket %s cannot depend on itself", t.ID)
	}
	if t.HasDep(blocker.ID) {
		return t, false, nil
	}

	// Cycle check runs against the current on-disk snapshot.
	tickets, err := store.List()
	if err != nil {
		return nil, false, err
	}
	if graph.New(tickets).WouldCreateCycle(t.ID, blocker.ID) {
		return nil, false, errors.New(errors.ErrCodeDependencyCycle,
			"dependency %s -> %s would create a cycle", t.ID, blocker.ID)
	}

	t.Deps = append(t.Deps, blocker.ID)
	t.Touch()
	if err := store.Save(t); err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// RemoveDependency removes blockerID from ticket id's deps. Removing an edge
// that is not present is a no-op.
func RemoveDependency(store *storage.Store, id, blockerID string) (*ticket.Ticket, bool, error) {
	t, err := store.Get(id)
	if err != nil {
		return nil, false, err
	}
	blocker, err := store.Get(blockerID)
	if err != nil {
		return nil, false, err
	}

	if !t.HasDep(blocker.ID) {
		return t, false, nil
	}
	t.Deps = slices.DeleteFunc(t.Deps, func(d string) bool { return d == blocker.ID })
	t.Touch()
	if err := store.Save(t); err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// AddLink records a non-blocking related-ticket link on both tickets. Links
// are symmetric and carry no graph semantics. Both writes happen under the
// repository lock.
func AddLink(store *storage.Store, id, otherID string) (t *ticket.Ticket, changed bool, err error) {
	err = store.WithLock(func() error {
		t, changed, err = addLink(store, id, otherID)
		return err
	})
	return t, changed, err
}

func addLink(store *storage.Store, id, otherID string) (*ticket.Ticket, bool, error) {
	a, err := store.Get(id)
	if err != nil {
		return nil, false, err
	}
	b, err := store.Get(otherID)
	if err != nil {
		return nil, false, err
	}
	if a.ID == b.ID {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "ticket %s cannot link to itself", a.ID)
	}
	if a.HasLink(b.ID) && b.HasLink(a.ID) {
		return a, false, nil
	}

	changed := false
	if !a.HasLink(b.ID) {
		a.Links = append(a.Links, b.ID)
		a.Touch()
		if err := store.Save(a); err != nil {
			return nil, false, err
		}
		changed = true
	}
	if !b.HasLink(a.ID) {
		b.Links = append(b.Links, a.ID)
		b.Touch()
		if err := store.Save(b); err != nil {
			return nil, false, err
		}
		changed = true
	}
	return a, changed, nil
}

// RemoveLink removes the related-ticket link from both sides.
func RemoveLink(store *storage.Store, id, otherID string) (t *ticket.Ticket, changed bool, err error) {
	err = store.WithLock(func() error {
		t, changed, err = removeLink(store, id, otherID)
		return err
	})
	return t, changed, err
}

func removeLink(store *storage.Store, id, otherID string) (*ticket.Ticket, bool, error) {
	a, err := store.Get(id)
	if err != nil {
		return nil, false, err
	}
	b, err := store.Get(otherID)
	if err != nil {
		return nil, false, err
	}

	changed := false
	if a.HasLink(b.ID) {
		a.Links = slices.DeleteFunc(a.Links, func(l string) bool { return l == b.ID })
		a.Touch()
		if err := store.Save(a); err != nil {
			return nil, false, err
		}
		changed = true
	}
	if b.HasLink(a.ID) {
		b.Links = slices.DeleteFunc(b.Links, func(l string) bool { return l == a.ID })
		b.Touch()
		if err := store.Save(b); err != nil {
			return nil, false, err
		}
		changed = true
	}
	return a, changed, nil
}
