// Package storage persists tickets as markdown files in a .bodega directory.
//
// Each ticket lives in its own file named {id}.md. The store performs atomic
// writes (temp file + rename) and offers a best-effort advisory lock for
// read-modify-write sequences. Storage never interprets dependency
// relationships; that is the graph package's job.
package storage

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bodega-dev/bodega/pkg/config"
	"github.com/bodega-dev/bodega/pkg/errors"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// DirName is the repository directory created by Init.
const DirName = ".bodega"

// Init creates a new bodega repository under base. It writes the .bodega
// directory and a commented default config.toml. Returns the path to the
// created directory. Fails with ErrCodeRepositoryExists when a repository is
// already present, unless force is set.
func Init(base string, force bool) (string, error) {
	dir := filepath.Join(base, DirName)

	if _, err := os.Stat(dir); err == nil && !force {
		return "", errors.New(errors.ErrCodeRepositoryExists, "bodega repository already exists at %s", dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "create %s", dir)
	}
	cfgPath := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(cfgPath, []byte(config.DefaultTemplate), 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "write %s", cfgPath)
	}

	return dir, nil
}

// Discover walks up from start looking for a .bodega directory. Returns
// ErrCodeNotARepository when none is found up to the filesystem root.
func Discover(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "resolve %s", start)
	}

	for {
		candidate := filepath.Join(dir, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.ErrCodeNotARepository, "not in a bodega repository (run 'bodega init' first)")
		}
		dir = parent
	}
}

// Store reads and writes tickets inside one .bodega directory.
type Store struct {
	dir string
}

// Open returns a store rooted at the given .bodega directory.
func Open(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's .bodega directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) ticketPath(id string) string {
	return filepath.Join(s.dir, id+".md")
}

// ListIDs returns the IDs of all stored tickets in ascending order.
func (s *Store) ListIDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read %s", s.dir)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		id := strings.TrimSuffix(name, ".md")
		if ticket.IsValidID(id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// List loads every ticket in the repository, sorted by ID. Files that fail
// to parse are skipped rather than failing the whole listing; a broken file
// should not take down every query.
func (s *Store) List() ([]*ticket.Ticket, error) {
	ids, err := s.ListIDs()
	if err != nil {
		return nil, err
	}

	tickets := make([]*ticket.Ticket, 0, len(ids))
	for _, id := range ids {
		t, err := s.load(id)
		if err != nil {
			continue
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// Get loads a ticket by full or partial ID.
func (s *Store) Get(partialID string) (*ticket.Ticket, error) {
	ids, err := s.ListIDs()
	if err != nil {
		return nil, err
	}
	id, err := ticket.ResolveID(partialID, ids)
	if err != nil {
		return nil, err
	}
	return s.load(id)
}

func (s *Store) load(id string) (*ticket.Ticket, error) {
	data, err := os.ReadFile(s.ticketPath(id))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeTicketNotFound, "no ticket found matching %q", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read ticket %s", id)
	}
	t, err := ticket.UnmarshalMarkdown(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse ticket %s", id)
	}
	return t, nil
}

// Save writes the ticket to disk atomically, creating or replacing its file.
func (s *Store) Save(t *ticket.Ticket) error {
	data, err := t.MarshalMarkdown()
	if err != nil {
		return err
	}

	path := s.ticketPath(t.ID)
	tmp, err := os.CreateTemp(s.dir, t.ID+".tmp-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write ticket %s", t.ID)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStorage, err, "write ticket %s", t.ID)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStorage, err, "write ticket %s", t.ID)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStorage, err, "write ticket %s", t.ID)
	}
	return nil
}

// Create saves a new ticket, failing with ErrCodeTicketExists when a ticket
// with the same ID is already stored.
func (s *Store) Create(t *ticket.Ticket) error {
	if _, err := os.Stat(s.ticketPath(t.ID)); err == nil {
		return errors.New(errors.ErrCodeTicketExists, "ticket %s already exists", t.ID)
	}
	return s.Save(t)
}

// Delete removes a ticket's file. Deleting an unknown ID is an error.
func (s *Store) Delete(id string) error {
	err := os.Remove(s.ticketPath(id))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeTicketNotFound, "no ticket found matching %q", id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete ticket %s", id)
	}
	return nil
}
