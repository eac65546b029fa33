package ops

import (
	"slices"

	"github.com/bodega-dev/bodega/pkg/storage"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// Filter narrows Query results. Zero-valued fields match everything; closed
// tickets are excluded unless IncludeClosed or an explicit closed Status is
// set.
type Filter struct {
	Status        string
	Type          string
	Tag           string
	Assignee      string
	Priority      *int
	IncludeClosed bool
}

func (f Filter) matches(t *ticket.Ticket) bool {
	if f.Status != "" {
		if string(t.Status) != f.Status {
			return false
		}
	} else if t.Status == ticket.StatusClosed && !f.IncludeClosed {
		return false
	}
	if f.Type != "" && string(t.Type) != f.Type {
		return false
	}
	if f.Tag != "" && !slices.Contains(t.Tags, f.Tag) {
		return false
	}
	if f.Assignee != "" && t.Assignee != f.Assignee {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	return true
}

// Query loads all tickets and returns those matching the filter, sorted by
// ID (the store's natural order).
func Query(store *storage.Store, filter Filter) ([]*ticket.Ticket, error) {
	tickets, err := store.List()
	if err != nil {
		return nil, err
	}

	out := make([]*ticket.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if filter.matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}
