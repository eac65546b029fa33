package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bodega-dev/bodega/pkg/errors"
	"github.com/bodega-dev/bodega/pkg/graph"
	"github.com/bodega-dev/bodega/pkg/ops"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// ticketJSON is the API representation of a ticket.
type ticketJSON struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`
	Priority    int      `json:"priority"`
	Assignee    string   `json:"assignee,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deps        []string `json:"deps,omitempty"`
	Links       []string `json:"links,omitempty"`
	Parent      string   `json:"parent,omitempty"`
	Blocked     bool     `json:"blocked"`
	Description string   `json:"description,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	Created     string   `json:"created"`
	Updated     string   `json:"updated"`
}

func toJSON(t *ticket.Ticket, g *graph.Graph) ticketJSON {
	return ticketJSON{
		ID:          t.ID,
		Title:       t.Title,
		Type:        string(t.Type),
		Status:      string(t.Status),
		Priority:    t.Priority,
		Assignee:    t.Assignee,
		Tags:        t.Tags,
		Deps:        t.Deps,
		Links:       t.Links,
		Parent:      t.Parent,
		Blocked:     g.IsBlocked(t.ID),
		Description: t.Description,
		Notes:       t.Notes,
		Created:     t.Created.Format("2006-01-02T15:04:05Z07:00"),
		Updated:     t.Updated.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toJSONList(tickets []*ticket.Ticket, g *graph.Graph) []ticketJSON {
	out := make([]ticketJSON, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toJSON(t, g))
	}
	return out
}

// GET /api/tickets?status=&type=&tag=&assignee=&include_closed=1
func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ops.Filter{
		Status:        q.Get("status"),
		Type:          q.Get("type"),
		Tag:           q.Get("tag"),
		Assignee:      q.Get("assignee"),
		IncludeClosed: q.Get("include_closed") == "1",
	}

	tickets, err := ops.Query(s.store, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := s.snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSONList(tickets, g))
}

// GET /api/tickets/{id}
func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := s.snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSON(t, g))
}

type blockersResponse struct {
	ID       string   `json:"id"`
	Blockers []string `json:"blockers"`
	All      bool     `json:"all"`
}

// GET /api/tickets/{id}/blockers?all=1
func (s *Server) handleBlockers(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := s.snapshot()
	if err != nil {
		writeError(w, err)
		return
	}

	all := r.URL.Query().Get("all") == "1"
	var blockers []string
	if all {
		blockers = g.AllBlockers(t.ID)
	} else {
		blockers = g.Blockers(t.ID)
	}
	if blockers == nil {
		blockers = []string{}
	}
	writeJSON(w, http.StatusOK, blockersResponse{ID: t.ID, Blockers: blockers, All: all})
}

// GET /api/ready
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	g, err := s.snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSONList(g.Ready(), g))
}

// GET /api/blocked
func (s *Server) handleBlocked(w http.ResponseWriter, r *http.Request) {
	g, err := s.snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSONList(g.Blocked(), g))
}

type graphStats struct {
	TotalOpen       int `json:"total_open"`
	TotalInProgress int `json:"total_in_progress"`
	TotalClosed     int `json:"total_closed"`
	TotalBlocked    int `json:"total_blocked"`
}

type graphResponse struct {
	Nodes []ticketJSON `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
	Stats graphStats   `json:"stats"`
}

// GET /api/graph
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.snapshot()
	if err != nil {
		writeError(w, err)
		return
	}

	var stats graphStats
	for _, t := range g.Tickets() {
		switch t.Status {
		case ticket.StatusOpen:
			stats.TotalOpen++
		case ticket.StatusInProgress:
			stats.TotalInProgress++
		case ticket.StatusClosed:
			stats.TotalClosed++
		}
	}
	stats.TotalBlocked = len(g.Blocked())

	edges := g.Edges()
	if edges == nil {
		edges = []graph.Edge{}
	}
	writeJSON(w, http.StatusOK, graphResponse{
		Nodes: toJSONList(g.Tickets(), g),
		Edges: edges,
		Stats: stats,
	})
}

type cyclesResponse struct {
	Cycles [][]string `json:"cycles"`
}

// GET /api/cycles
func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	g, err := s.snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	cycles := g.FindCycles()
	if cycles == nil {
		cycles = [][]string{}
	}
	writeJSON(w, http.StatusOK, cyclesResponse{Cycles: cycles})
}

type treeResponse struct {
	Root string `json:"root,omitempty"`
	Tree string `json:"tree"`
}

// GET /api/tree?root=
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	g, err := s.snapshot()
	if err != nil {
		writeError(w, err)
		return
	}

	root := r.URL.Query().Get("root")
	if root != "" {
		if _, ok := g.Ticket(root); !ok {
			writeError(w, errors.New(errors.ErrCodeTicketNotFound, "no ticket found matching %q", root))
			return
		}
	}
	writeJSON(w, http.StatusOK, treeResponse{Root: root, Tree: g.FormatTree(root)})
}
