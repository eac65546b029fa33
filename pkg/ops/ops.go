// Package ops implements the ticket operations behind the CLI commands and
// the HTTP API: creation, lifecycle transitions, content edits, dependency
// management, querying, and garbage collection.
//
// Operations load tickets through a storage.Store, enforce the business
// rules (valid transitions, no self-dependencies, no dependency cycles), and
// persist the result. Dependency rules are checked against a freshly built
// graph snapshot so every decision reflects the current state on disk.
package ops

import (
	"github.com/bodega-dev/bodega/pkg/config"
	"github.com/bodega-dev/bodega/pkg/errors"
	"github.com/bodega-dev/bodega/pkg/storage"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// CreateParams are the caller-supplied fields for a new ticket. Zero values
// fall back to the configured defaults.
type CreateParams struct {
	Title              string
	Type               string
	Priority           *int // nil = config default
	Assignee           string
	Tags               []string
	Deps               []string
	Parent             string
	Description        string
	Design             string
	AcceptanceCriteria string
}

// Create builds a ticket from params and the configured defaults, validates
// it, and stores it under a freshly generated ID.
func Create(store *storage.Store, cfg config.Config, params CreateParams) (*ticket.Ticket, error) {
	t := ticket.New(cfg.IDPrefix, params.Title)

	t.Type = ticket.Type(cfg.Defaults.Type)
	if params.Type != "" {
		t.Type = ticket.Type(params.Type)
	}
	t.Priority = cfg.Defaults.Priority
	if params.Priority != nil {
		t.Priority = *params.Priority
	}
	t.Assignee = cfg.Defaults.Assignee
	if params.Assignee != "" {
		t.Assignee = params.Assignee
	}
	t.Tags = params.Tags
	t.Parent = params.Parent
	t.Description = params.Description
	t.Design = params.Design
	t.AcceptanceCriteria = params.AcceptanceCriteria

	// Deps may be given as partial IDs at creation time.
	ids, err := store.ListIDs()
	if err != nil {
		return nil, err
	}
	for _, dep := range params.Deps {
		full, err := ticket.ResolveID(dep, ids)
		if err != nil {
			return nil, err
		}
		t.Deps = append(t.Deps, full)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := store.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Start transitions a ticket to in-progress. The returned bool reports
// whether the status actually changed; starting an in-progress ticket is a
// no-op, starting a closed ticket is an error.
func Start(store *storage.Store, id string) (*ticket.Ticket, bool, error) {
	return transition(store, id, ticket.StatusInProgress, func(t *ticket.Ticket) error {
		if t.Status == ticket.StatusClosed {
			return errors.New(errors.ErrCodeInvalidStatus, "ticket %s is closed; reopen it first", t.ID)
		}
		return nil
	})
}

// Close transitions a ticket to closed. Closing a closed ticket is a no-op.
func Close(store *storage.Store, id string) (*ticket.Ticket, bool, error) {
	return transition(store, id, ticket.StatusClosed, nil)
}

// Reopen transitions a closed ticket back to open. Reopening a non-closed
// ticket is a no-op.
func Reopen(store *storage.Store, id string) (*ticket.Ticket, bool, error) {
	t, err := store.Get(id)
	if err != nil {
		return nil, false, err
	}
	if t.Status != ticket.StatusClosed {
		return t, false, nil
	}
	t.Status = ticket.StatusOpen
	t.Touch()
	if err := store.Save(t); err != nil {
		return nil, false, err
	}
	return t, true, nil
}

func transition(store *storage.Store, id string, to ticket.Status, check func(*ticket.Ticket) error) (*ticket.Ticket, bool, error) {
	t, err := store.Get(id)
	if err != nil {
		return nil, false, err
	}
	if check != nil {
		if err := check(t); err != nil {
			return nil, false, err
		}
	}
	if t.Status == to {
		return t, false, nil
	}
	t.Status = to
	t.Touch()
	if err := store.Save(t); err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// AddNote appends a note to the ticket's Notes section.
func AddNote(store *storage.Store, id, text string) (*ticket.Ticket, error) {
	if text == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "note text must not be empty")
	}
	t, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	t.Notes = append(t.Notes, text)
	t.Touch()
	if err := store.Save(t); err != nil {
		return nil, err
	}
	return t, nil
}

// EditParams holds optional field updates for Edit. Nil pointers leave the
// field unchanged.
type EditParams struct {
	Title    *string
	Type     *string
	Priority *int
	Assignee *string
	Tags     *[]string
}

// Edit applies the given field updates and revalidates the ticket.
func Edit(store *storage.Store, id string, params EditParams) (*ticket.Ticket, error) {
	t, err := store.Get(id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		t.Title = *params.Title
	}
	if params.Type != nil {
		t.Type = ticket.Type(*params.Type)
	}
	if params.Priority != nil {
		t.Priority = *params.Priority
	}
	if params.Assignee != nil {
		t.Assignee = *params.Assignee
	}
	if params.Tags != nil {
		t.Tags = *params.Tags
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.Touch()
	if err := store.Save(t); err != nil {
		return nil, err
	}
	return t, nil
}
