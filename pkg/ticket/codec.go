package ticket

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bodega-dev/bodega/pkg/errors"
)

// Markdown encoding for tickets: a YAML frontmatter block between "---"
// fences, followed by the free-form content sections as level-2 headings.
//
//	---
//	id: bg-a1b2c3
//	title: Implement auth
//	type: task
//	status: open
//	priority: 2
//	deps:
//	    - bg-d4e5f6
//	created: 2024-01-02T15:04:05Z
//	updated: 2024-01-02T15:04:05Z
//	---
//
//	## Description
//
//	Why this work exists.
//
//	## Notes
//
//	- observed failure on arm64

const frontmatterFence = "---"

// Section headings recognized in the markdown body.
const (
	headingDescription = "## Description"
	headingDesign      = "## Design"
	headingAcceptance  = "## Acceptance Criteria"
	headingNotes       = "## Notes"
)

// MarshalMarkdown encodes the ticket as frontmatter markdown.
func (t *Ticket) MarshalMarkdown() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(frontmatterFence + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode frontmatter for %s", t.ID)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode frontmatter for %s", t.ID)
	}
	buf.WriteString(frontmatterFence + "\n")

	body := t.renderBody()
	if body != "" {
		buf.WriteString("\n" + body + "\n")
	}

	return buf.Bytes(), nil
}

func (t *Ticket) renderBody() string {
	var parts []string
	if t.Description != "" {
		parts = append(parts, headingDescription+"\n\n"+strings.TrimSpace(t.Description))
	}
	if t.Design != "" {
		parts = append(parts, headingDesign+"\n\n"+strings.TrimSpace(t.Design))
	}
	if t.AcceptanceCriteria != "" {
		parts = append(parts, headingAcceptance+"\n\n"+strings.TrimSpace(t.AcceptanceCriteria))
	}
	if len(t.Notes) > 0 {
		var b strings.Builder
		b.WriteString(headingNotes + "\n")
		for _, note := range t.Notes {
			fmt.Fprintf(&b, "\n- %s", note)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}

// UnmarshalMarkdown decodes a frontmatter markdown document into a Ticket.
// Unknown frontmatter keys are ignored; missing content sections stay empty.
func UnmarshalMarkdown(data []byte) (*Ticket, error) {
	front, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	var t Ticket
	if err := yaml.Unmarshal(front, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse frontmatter")
	}

	parseBody(&t, body)
	return &t, nil
}

// splitFrontmatter separates the YAML block from the markdown body.
func splitFrontmatter(data []byte) (front, body []byte, err error) {
	text := string(data)
	if !strings.HasPrefix(text, frontmatterFence+"\n") {
		return nil, nil, errors.New(errors.ErrCodeStorage, "missing frontmatter fence")
	}
	rest := text[len(frontmatterFence)+1:]

	idx := strings.Index(rest, "\n"+frontmatterFence)
	if idx < 0 {
		return nil, nil, errors.New(errors.ErrCodeStorage, "unterminated frontmatter")
	}

	front = []byte(rest[:idx+1])
	after := rest[idx+1+len(frontmatterFence):]
	after = strings.TrimPrefix(after, "\n")
	return front, []byte(after), nil
}

// parseBody fills the ticket's content sections from the markdown body.
// Text under an unrecognized heading is dropped.
func parseBody(t *Ticket, body []byte) {
	var (
		section string
		buf     []string
	)

	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = buf[:0]
		switch section {
		case headingDescription:
			t.Description = text
		case headingDesign:
			t.Design = text
		case headingAcceptance:
			t.AcceptanceCriteria = text
		case headingNotes:
			for _, line := range strings.Split(text, "\n") {
				line = strings.TrimSpace(line)
				if note, ok := strings.CutPrefix(line, "- "); ok {
					t.Notes = append(t.Notes, note)
				}
			}
		}
	}

	for _, line := range strings.Split(string(body), "\n") {
		switch strings.TrimSpace(line) {
		case headingDescription, headingDesign, headingAcceptance, headingNotes:
			flush()
			section = strings.TrimSpace(line)
		default:
			buf = append(buf, line)
		}
	}
	flush()
}
