package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/pkg/graph"
	"github.com/bodega-dev/bodega/pkg/render"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the "browse" command, an interactive ticket browser.
func (c *CLI) browseCommand() *cobra.Command {
	var includeClosed bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse tickets interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}
			g, err := buildGraph(store)
			if err != nil {
				return err
			}

			var tickets []*ticket.Ticket
			for _, t := range g.Tickets() {
				if t.Status == ticket.StatusClosed && !includeClosed {
					continue
				}
				tickets = append(tickets, t)
			}
			if len(tickets) == 0 {
				printInfo("No tickets")
				return nil
			}

			model := newTicketListModel(tickets, g)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}

			// Print the selected ticket after the TUI exits.
			if m, ok := final.(ticketListModel); ok && m.selected != nil {
				fmt.Print(render.Detail(m.selected, g))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeClosed, "all", false, "include closed tickets")
	return cmd
}

// ticketListModel is the bubbletea model for interactive ticket browsing.
type ticketListModel struct {
	tickets  []*ticket.Ticket
	graph    *graph.Graph
	cursor   int
	offset   int
	height   int
	selected *ticket.Ticket
}

func newTicketListModel(tickets []*ticket.Ticket, g *graph.Graph) ticketListModel {
	return ticketListModel{
		tickets: tickets,
		graph:   g,
		height:  15,
	}
}

func (m ticketListModel) Init() tea.Cmd {
	return nil
}

func (m ticketListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.tickets)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = m.tickets[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m ticketListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tickets"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.tickets) {
		end = len(m.tickets)
	}

	for i := m.offset; i < end; i++ {
		t := m.tickets[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := " "
		if m.graph.IsBlocked(t.ID) {
			marker = StyleWarning.Render("⊘")
		}

		line := fmt.Sprintf("%s%s %-11s p%d  %s  %s", cursor, marker, t.Status, t.Priority, t.ID, t.Title)
		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case t.Status == ticket.StatusClosed:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.tickets))))

	return b.String()
}
