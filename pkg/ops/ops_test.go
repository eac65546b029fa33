package ops

import (
	"testing"
	"time"

	"github.com/bodega-dev/bodega/pkg/config"
	"github.com/bodega-dev/bodega/pkg/errors"
	"github.com/bodega-dev/bodega/pkg/storage"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	dir, err := storage.Init(t.TempDir(), false)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return storage.Open(dir)
}

func mustCreate(t *testing.T, s *storage.Store, params CreateParams) *ticket.Ticket {
	t.Helper()
	tk, err := Create(s, config.Default(), params)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", params.Title, err)
	}
	return tk
}

func TestCreateAppliesConfigDefaults(t *testing.T) {
	s := newStore(t)
	cfg := config.Default()
	cfg.Defaults.Type = "bug"
	cfg.Defaults.Priority = 1
	cfg.Defaults.Assignee = "sam"

	tk, err := Create(s, cfg, CreateParams{Title: "Crash on empty input"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tk.Type != ticket.TypeBug || tk.Priority != 1 || tk.Assignee != "sam" {
		t.Errorf("defaults not applied: %+v", tk)
	}

	// Explicit params win over defaults.
	p := 4
	tk2, err := Create(s, cfg, CreateParams{Title: "Other", Type: "feature", Priority: &p, Assignee: "kit"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tk2.Type != ticket.TypeFeature || tk2.Priority != 4 || tk2.Assignee != "kit" {
		t.Errorf("params not applied: %+v", tk2)
	}
}

func TestCreateResolvesPartialDeps(t *testing.T) {
	s := newStore(t)
	dep := mustCreate(t, s, CreateParams{Title: "Base"})

	tk, err := Create(s, config.Default(), CreateParams{Title: "On top", Deps: []string{dep.ID[:5]}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(tk.Deps) != 1 || tk.Deps[0] != dep.ID {
		t.Errorf("Deps = %v, want [%s]", tk.Deps, dep.ID)
	}

	if _, err := Create(s, config.Default(), CreateParams{Title: "Broken", Deps: []string{"bg-zzzzzz"}}); !errors.Is(err, errors.ErrCodeTicketNotFound) {
		t.Errorf("Create() error = %v, want TICKET_NOT_FOUND", err)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	s := newStore(t)

	if _, err := Create(s, config.Default(), CreateParams{Title: ""}); err == nil {
		t.Error("Create() with empty title should fail")
	}
	p := 9
	if _, err := Create(s, config.Default(), CreateParams{Title: "T", Priority: &p}); err == nil {
		t.Error("Create() with priority 9 should fail")
	}
}

func TestLifecycle(t *testing.T) {
	s := newStore(t)
	tk := mustCreate(t, s, CreateParams{Title: "Work item"})

	got, changed, err := Start(s, tk.ID)
	if err != nil || !changed {
		t.Fatalf("Start() = changed %v, error %v", changed, err)
	}
	if got.Status != ticket.StatusInProgress {
		t.Errorf("Status = %q", got.Status)
	}

	// Starting again is a no-op.
	if _, changed, err := Start(s, tk.ID); err != nil || changed {
		t.Errorf("second Start() = changed %v, error %v", changed, err)
	}

	if _, changed, err := Close(s, tk.ID); err != nil || !changed {
		t.Fatalf("Close() = changed %v, error %v", changed, err)
	}
	if _, changed, err := Close(s, tk.ID); err != nil || changed {
		t.Errorf("second Close() = changed %v, error %v", changed, err)
	}

	// Starting a closed ticket is rejected.
	if _, _, err := Start(s, tk.ID); !errors.Is(err, errors.ErrCodeInvalidStatus) {
		t.Errorf("Start() on closed = %v, want INVALID_STATUS", err)
	}

	got, changed, err = Reopen(s, tk.ID)
	if err != nil || !changed {
		t.Fatalf("Reopen() = changed %v, error %v", changed, err)
	}
	if got.Status != ticket.StatusOpen {
		t.Errorf("Status = %q", got.Status)
	}
	if _, changed, err := Reopen(s, tk.ID); err != nil || changed {
		t.Errorf("Reopen() on open = changed %v, error %v", changed, err)
	}
}

func TestAddNote(t *testing.T) {
	s := newStore(t)
	tk := mustCreate(t, s, CreateParams{Title: "Noted"})

	if _, err := AddNote(s, tk.ID, "first finding"); err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}
	got, err := AddNote(s, tk.ID, "second finding")
	if err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}
	if len(got.Notes) != 2 || got.Notes[1] != "second finding" {
		t.Errorf("Notes = %v", got.Notes)
	}

	if _, err := AddNote(s, tk.ID, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddNote(empty) error = %v, want INVALID_INPUT", err)
	}
}

func TestEdit(t *testing.T) {
	s := newStore(t)
	tk := mustCreate(t, s, CreateParams{Title: "Before"})

	title := "After"
	p := 0
	got, err := Edit(s, tk.ID, EditParams{Title: &title, Priority: &p})
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if got.Title != "After" || got.Priority != 0 {
		t.Errorf("Edit() = %+v", got)
	}
	// Untouched fields survive.
	if got.Type != tk.Type {
		t.Errorf("Type changed to %q", got.Type)
	}

	bad := ""
	if _, err := Edit(s, tk.ID, EditParams{Title: &bad}); err == nil {
		t.Error("Edit() with empty title should fail")
	}
}

func TestAddDependency(t *testing.T) {
	s := newStore(t)
	a := mustCreate(t, s, CreateParams{Title: "A"})
	b := mustCreate(t, s, CreateParams{Title: "B"})

	_, changed, err := AddDependency(s, a.ID, b.ID)
	if err != nil || !changed {
		t.Fatalf("AddDependency() = changed %v, error %v", changed, err)
	}

	got, err := s.Get(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Deps) != 1 || got.Deps[0] != b.ID {
		t.Errorf("Deps = %v", got.Deps)
	}

	// Duplicate edge is a no-op.
	if _, changed, err := AddDependency(s, a.ID, b.ID); err != nil || changed {
		t.Errorf("duplicate AddDependency() = changed %v, error %v", changed, err)
	}
}

func TestAddDependencyRejectsSelf(t *testing.T) {
	s := newStore(t)
	a := mustCreate(t, s, CreateParams{Title: "A"})

	if _, _, err := AddDependency(s, a.ID, a.ID); !errors.Is(err, errors.ErrCodeSelfDependency) {
		t.Errorf("AddDependency() error = %v, want SELF_DEPENDENCY", err)
	}
}

func TestAddDependencyRejectsCycle(t *testing.T) {
	s := newStore(t)
	a := mustCreate(t, s, CreateParams{Title: "A"})
	b := mustCreate(t, s, CreateParams{Title: "B"})
	c := mustCreate(t, s, CreateParams{Title: "C"})

	// a <- b <- c, then c -> a would close the loop a -> b -> c -> a.
	if _, _, err := AddDependency(s, a.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := AddDependency(s, b.ID, c.ID); err != nil {
		t.Fatal(err)
	}

	if _, _, err := AddDependency(s, c.ID, a.ID); !errors.Is(err, errors.ErrCodeDependencyCycle) {
		t.Errorf("AddDependency() error = %v, want DEPENDENCY_CYCLE", err)
	}
}

func TestRemoveDependency(t *testing.T) {
	s := newStore(t)
	a := mustCreate(t, s, CreateParams{Title: "A"})
	b := mustCreate(t, s, CreateParams{Title: "B"})

	if _, _, err := AddDependency(s, a.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	_, changed, err := RemoveDependency(s, a.ID, b.ID)
	if err != nil || !changed {
		t.Fatalf("RemoveDependency() = changed %v, error %v", changed, err)
	}
	got, err := s.Get(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Deps) != 0 {
		t.Errorf("Deps = %v, want empty", got.Deps)
	}

	// Absent edge is a no-op.
	if _, changed, err := RemoveDependency(s, a.ID, b.ID); err != nil || changed {
		t.Errorf("RemoveDependency() = changed %v, error %v", changed, err)
	}
}

func TestLinksAreSymmetric(t *testing.T) {
	s := newStore(t)
	a := mustCreate(t, s, CreateParams{Title: "A"})
	b := mustCreate(t, s, CreateParams{Title: "B"})

	if _, changed, err := AddLink(s, a.ID, b.ID); err != nil || !changed {
		t.Fatalf("AddLink() = changed %v, error %v", changed, err)
	}

	gotA, _ := s.Get(a.ID)
	gotB, _ := s.Get(b.ID)
	if !gotA.HasLink(b.ID) || !gotB.HasLink(a.ID) {
		t.Errorf("links not symmetric: a=%v b=%v", gotA.Links, gotB.Links)
	}

	if _, changed, err := AddLink(s, a.ID, b.ID); err != nil || changed {
		t.Errorf("duplicate AddLink() = changed %v, error %v", changed, err)
	}
	if _, _, err := AddLink(s, a.ID, a.ID); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("self AddLink() error = %v, want INVALID_INPUT", err)
	}

	if _, changed, err := RemoveLink(s, a.ID, b.ID); err != nil || !changed {
		t.Fatalf("RemoveLink() = changed %v, error %v", changed, err)
	}
	gotA, _ = s.Get(a.ID)
	gotB, _ = s.Get(b.ID)
	if gotA.HasLink(b.ID) || gotB.HasLink(a.ID) {
		t.Errorf("links not removed: a=%v b=%v", gotA.Links, gotB.Links)
	}
}

func TestQueryFilters(t *testing.T) {
	s := newStore(t)

	bug := mustCreate(t, s, CreateParams{Title: "Bug", Type: "bug", Tags: []string{"ui"}, Assignee: "sam"})
	mustCreate(t, s, CreateParams{Title: "Task", Type: "task"})
	closed := mustCreate(t, s, CreateParams{Title: "Done", Type: "task"})
	if _, _, err := Close(s, closed.ID); err != nil {
		t.Fatal(err)
	}

	// Default: closed excluded.
	got, err := Query(s, Filter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Query() = %d tickets, want 2", len(got))
	}

	got, _ = Query(s, Filter{IncludeClosed: true})
	if len(got) != 3 {
		t.Errorf("Query(IncludeClosed) = %d tickets, want 3", len(got))
	}

	got, _ = Query(s, Filter{Status: "closed"})
	if len(got) != 1 || got[0].ID != closed.ID {
		t.Errorf("Query(status=closed) = %v", got)
	}

	got, _ = Query(s, Filter{Type: "bug"})
	if len(got) != 1 || got[0].ID != bug.ID {
		t.Errorf("Query(type=bug) = %v", got)
	}

	got, _ = Query(s, Filter{Tag: "ui"})
	if len(got) != 1 || got[0].ID != bug.ID {
		t.Errorf("Query(tag=ui) = %v", got)
	}

	got, _ = Query(s, Filter{Assignee: "sam"})
	if len(got) != 1 || got[0].ID != bug.ID {
		t.Errorf("Query(assignee=sam) = %v", got)
	}

	p := 2
	got, _ = Query(s, Filter{Priority: &p})
	if len(got) != 2 {
		t.Errorf("Query(priority=2) = %d tickets, want 2", len(got))
	}
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30d", 30 * 24 * time.Hour, false},
		{"12h", 12 * time.Hour, false},
		{"45m", 45 * time.Minute, false},
		{"0d", 0, false},
		{"", 0, true},
		{"d", 0, true},
		{"30", 0, true},
		{"30w", 0, true},
		{"-5d", 0, true},
		{"x2h", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAge(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeInvalidDuration) {
				t.Errorf("ParseAge(%q) error = %v, want INVALID_DURATION", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseAge(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestGC(t *testing.T) {
	s := newStore(t)

	old := mustCreate(t, s, CreateParams{Title: "Old closed"})
	if _, _, err := Close(s, old.ID); err != nil {
		t.Fatal(err)
	}
	// Backdate past the cutoff.
	backdate(t, s, old.ID, -48*time.Hour)

	recent := mustCreate(t, s, CreateParams{Title: "Recently closed"})
	if _, _, err := Close(s, recent.ID); err != nil {
		t.Fatal(err)
	}

	open := mustCreate(t, s, CreateParams{Title: "Still open"})

	// Dry run reports without deleting.
	res, err := GC(s, "24h", true)
	if err != nil {
		t.Fatalf("GC() error = %v", err)
	}
	if len(res.Removed) != 1 || res.Removed[0] != old.ID {
		t.Errorf("dry run Removed = %v, want [%s]", res.Removed, old.ID)
	}
	if _, err := s.Get(old.ID); err != nil {
		t.Errorf("dry run deleted ticket: %v", err)
	}

	res, err = GC(s, "24h", false)
	if err != nil {
		t.Fatalf("GC() error = %v", err)
	}
	if len(res.Removed) != 1 || res.Removed[0] != old.ID {
		t.Errorf("Removed = %v, want [%s]", res.Removed, old.ID)
	}
	if _, err := s.Get(old.ID); !errors.Is(err, errors.ErrCodeTicketNotFound) {
		t.Errorf("expired ticket still present: %v", err)
	}
	for _, id := range []string{recent.ID, open.ID} {
		if _, err := s.Get(id); err != nil {
			t.Errorf("GC removed live ticket %s: %v", id, err)
		}
	}
}

func TestGCKeepsReferencedTickets(t *testing.T) {
	s := newStore(t)

	dep := mustCreate(t, s, CreateParams{Title: "Closed but referenced"})
	if _, _, err := Close(s, dep.ID); err != nil {
		t.Fatal(err)
	}
	holder := mustCreate(t, s, CreateParams{Title: "Holder"})
	if _, _, err := AddDependency(s, holder.ID, dep.ID); err != nil {
		t.Fatal(err)
	}
	backdate(t, s, dep.ID, -48*time.Hour)

	res, err := GC(s, "24h", false)
	if err != nil {
		t.Fatalf("GC() error = %v", err)
	}
	if len(res.Removed) != 0 {
		t.Errorf("Removed = %v, want empty", res.Removed)
	}
	if len(res.Kept) != 1 || res.Kept[0] != dep.ID {
		t.Errorf("Kept = %v, want [%s]", res.Kept, dep.ID)
	}
	if _, err := s.Get(dep.ID); err != nil {
		t.Errorf("referenced ticket deleted: %v", err)
	}
}

// backdate shifts a ticket's Updated timestamp, bypassing Touch.
func backdate(t *testing.T, s *storage.Store, id string, by time.Duration) {
	t.Helper()
	tk, err := s.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	tk.Updated = tk.Updated.Add(by)
	if err := s.Save(tk); err != nil {
		t.Fatal(err)
	}
}
