// Package render formats tickets for terminal and machine consumption.
//
// Four list formats are supported: an aligned table, a one-line-per-ticket
// compact form, bare IDs, and JSON. Styling is applied with lipgloss and is
// disabled automatically when the output is not a terminal or NO_COLOR is
// set.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bodega-dev/bodega/pkg/errors"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// Format selects a list output format.
type Format string

const (
	FormatTable   Format = "table"
	FormatCompact Format = "compact"
	FormatIDs     Format = "ids"
	FormatJSON    Format = "json"
)

// ParseFormat validates a format name from a flag or config value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatCompact, FormatIDs, FormatJSON:
		return Format(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q (use table, compact, ids, or json)", s)
}

// List renders tickets in the given format.
func List(tickets []*ticket.Ticket, format Format) (string, error) {
	switch format {
	case FormatTable:
		return table(tickets), nil
	case FormatCompact:
		return compact(tickets), nil
	case FormatIDs:
		return ids(tickets), nil
	case FormatJSON:
		return asJSON(tickets)
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q", string(format))
}

func table(tickets []*ticket.Ticket) string {
	if len(tickets) == 0 {
		return ""
	}

	idW, typeW := len("ID"), len("TYPE")
	for _, t := range tickets {
		idW = max(idW, len(t.ID))
		typeW = max(typeW, len(string(t.Type)))
	}
	// STATUS column fits "in-progress", the longest status.
	const statusW = 11

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s  %-*s  %3s  %-*s  %s\n", idW, "ID", statusW, "STATUS", "PRI", typeW, "TYPE", "TITLE")
	for _, t := range tickets {
		id := fmt.Sprintf("%-*s", idW, t.ID)
		status := fmt.Sprintf("%-*s", statusW, string(t.Status))
		fmt.Fprintf(&b, "%s  %s  %3d  %-*s  %s\n",
			styleID.Render(id), statusStyle(t.Status).Render(status),
			t.Priority, typeW, string(t.Type), t.Title)
	}
	return b.String()
}

func compact(tickets []*ticket.Ticket) string {
	var b strings.Builder
	for _, t := range tickets {
		fmt.Fprintf(&b, "%s %s p%d %s\n",
			styleID.Render(t.ID), statusStyle(t.Status).Render(string(t.Status)),
			t.Priority, t.Title)
	}
	return b.String()
}

func ids(tickets []*ticket.Ticket) string {
	var b strings.Builder
	for _, t := range tickets {
		b.WriteString(t.ID)
		b.WriteByte('\n')
	}
	return b.String()
}

// jsonTicket is the stable JSON shape for list output. Content sections are
// omitted; use Detail or the show command for the full ticket.
type jsonTicket struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Status   string   `json:"status"`
	Priority int      `json:"priority"`
	Assignee string   `json:"assignee,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Deps     []string `json:"deps,omitempty"`
	Created  string   `json:"created"`
	Updated  string   `json:"updated"`
}

func asJSON(tickets []*ticket.Ticket) (string, error) {
	out := make([]jsonTicket, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, jsonTicket{
			ID:       t.ID,
			Title:    t.Title,
			Type:     string(t.Type),
			Status:   string(t.Status),
			Priority: t.Priority,
			Assignee: t.Assignee,
			Tags:     t.Tags,
			Deps:     t.Deps,
			Created:  t.Created.Format("2006-01-02T15:04:05Z07:00"),
			Updated:  t.Updated.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode tickets")
	}
	return string(data) + "\n", nil
}
