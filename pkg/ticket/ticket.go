// Package ticket defines the ticket model and its markdown representation.
//
// A ticket is a single unit of work with structured metadata (status, type,
// priority, blocking dependencies) and free-form content sections. On disk a
// ticket is a markdown file with YAML frontmatter; see codec.go for the
// encoding rules.
package ticket

import (
	"time"

	"github.com/bodega-dev/bodega/pkg/errors"
)

// Status is the lifecycle state of a ticket.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusClosed     Status = "closed"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Type categorizes the kind of work a ticket represents.
type Type string

const (
	TypeBug     Type = "bug"
	TypeFeature Type = "feature"
	TypeTask    Type = "task"
	TypeEpic    Type = "epic"
	TypeChore   Type = "chore"
)

// IsValid reports whether the type is one of the known ticket types.
func (t Type) IsValid() bool {
	switch t {
	case TypeBug, TypeFeature, TypeTask, TypeEpic, TypeChore:
		return true
	}
	return false
}

// Priority bounds. 0 is most urgent, 4 is least.
const (
	MinPriority = 0
	MaxPriority = 4
)

// Ticket is a single tracked unit of work.
//
// Deps lists the IDs of tickets that block this one: every ID in Deps must
// reach StatusClosed before this ticket is considered unblocked. Links holds
// non-blocking relationships. Deps entries may reference tickets that no
// longer exist (dangling references); consumers must tolerate them.
type Ticket struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Type        Type      `yaml:"type"`
	Status      Status    `yaml:"status"`
	Priority    int       `yaml:"priority"`
	Assignee    string    `yaml:"assignee,omitempty"`
	Tags        []string  `yaml:"tags,omitempty"`
	Deps        []string  `yaml:"deps,omitempty"`
	Links       []string  `yaml:"links,omitempty"`
	Parent      string    `yaml:"parent,omitempty"`
	ExternalRef string    `yaml:"external_ref,omitempty"`
	Created     time.Time `yaml:"created"`
	Updated     time.Time `yaml:"updated"`

	// Content sections, stored in the markdown body rather than frontmatter.
	Description        string   `yaml:"-"`
	Design             string   `yaml:"-"`
	AcceptanceCriteria string   `yaml:"-"`
	Notes              []string `yaml:"-"`
}

// New creates a ticket with a freshly generated ID and sensible defaults.
// The caller should adjust fields and call Validate before persisting.
func New(prefix, title string) *Ticket {
	now := time.Now().UTC()
	return &Ticket{
		ID:       NewID(prefix),
		Title:    title,
		Type:     TypeTask,
		Status:   StatusOpen,
		Priority: 2,
		Created:  now,
		Updated:  now,
	}
}

// Validate checks the ticket's structural invariants.
func (t *Ticket) Validate() error {
	if t.Title == "" {
		return errors.New(errors.ErrCodeInvalidInput, "title must not be empty")
	}
	if t.Priority < MinPriority || t.Priority > MaxPriority {
		return errors.New(errors.ErrCodeInvalidPriority, "priority must be %d-%d, got %d", MinPriority, MaxPriority, t.Priority)
	}
	if t.ID != "" && !IsValidID(t.ID) {
		return errors.New(errors.ErrCodeInvalidID, "ID must match pattern %q, got %q", idPatternSource, t.ID)
	}
	if !t.Status.IsValid() {
		return errors.New(errors.ErrCodeInvalidStatus, "unknown status %q", string(t.Status))
	}
	if !t.Type.IsValid() {
		return errors.New(errors.ErrCodeInvalidType, "unknown type %q", string(t.Type))
	}
	return nil
}

// HasDep reports whether id is listed as a direct blocker of the ticket.
func (t *Ticket) HasDep(id string) bool {
	for _, d := range t.Deps {
		if d == id {
			return true
		}
	}
	return false
}

// HasLink reports whether id is listed as a related (non-blocking) ticket.
func (t *Ticket) HasLink(id string) bool {
	for _, l := range t.Links {
		if l == id {
			return true
		}
	}
	return false
}

// Touch bumps the Updated timestamp to the current time.
func (t *Ticket) Touch() {
	t.Updated = time.Now().UTC()
}
