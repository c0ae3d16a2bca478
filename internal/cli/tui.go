package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/pipeline"
	"github.com/isplab/citegraph/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the interactive community browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		input inputFlags
		rank  rankFlags
	)

	cmd := &cobra.Command{
		Use:   "browse <facts.json>",
		Short: "Explore communities and their most central papers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg()

			in, err := input.options(cfg)
			if err != nil {
				return err
			}
			opts, err := rank.options(cfg)
			if err != nil {
				return err
			}

			g, err := pipeline.ParseFile(args[0], in)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			if _, err := runner.Analyze(ctx, g, opts); err != nil {
				return err
			}

			_, err = tea.NewProgram(NewBrowseModel(g, opts.Palette), tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	input.register(cmd.Flags())
	rank.register(cmd.Flags())
	return cmd
}

// =============================================================================
// BrowseModel - Interactive community browser
// =============================================================================

// CommunityEntry is one community with its members, most central first.
type CommunityEntry struct {
	ID      int
	Color   string
	Members []MemberEntry
}

// MemberEntry is one paper of a community.
type MemberEntry struct {
	Label          string
	Centrality     float64
	Degree         int
	Representative bool
}

// BrowseModel is the bubbletea model for browsing communities.
// It shows the community list, or the members of one community when Open >= 0.
type BrowseModel struct {
	Communities []CommunityEntry
	Open        int
	Cursor      int
	Offset      int
	Height      int

	listCursor int
	listOffset int
}

// NewBrowseModel creates a browser over an annotated graph.
func NewBrowseModel(g *graph.Graph, palette render.Palette) BrowseModel {
	byID := make(map[int]*CommunityEntry)
	for i, n := range g.Nodes() {
		e, ok := byID[n.Community]
		if !ok {
			e = &CommunityEntry{ID: n.Community, Color: palette.Color(n.Community)}
			byID[n.Community] = e
		}
		e.Members = append(e.Members, MemberEntry{
			Label:          n.Label,
			Centrality:     n.Centrality,
			Degree:         g.Degree(i),
			Representative: n.Representative,
		})
	}

	entries := make([]CommunityEntry, 0, len(byID))
	for _, e := range byID {
		slices.SortStableFunc(e.Members, func(a, b MemberEntry) int {
			if c := cmp.Compare(b.Centrality, a.Centrality); c != 0 {
				return c
			}
			return strings.Compare(a.Label, b.Label)
		})
		entries = append(entries, *e)
	}
	slices.SortFunc(entries, func(a, b CommunityEntry) int { return cmp.Compare(a.ID, b.ID) })

	return BrowseModel{
		Communities: entries,
		Open:        -1,
		Height:      15,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace", "left", "h":
			if m.Open < 0 {
				if msg.String() == "esc" {
					return m, tea.Quit
				}
				return m, nil
			}
			m.Open = -1
			m.Cursor, m.Offset = m.listCursor, m.listOffset
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rowCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if m.Open < 0 && len(m.Communities) > 0 {
				m.listCursor, m.listOffset = m.Cursor, m.Offset
				m.Open = m.Cursor
				m.Cursor, m.Offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

// rowCount is the number of rows in the current view.
func (m BrowseModel) rowCount() int {
	if m.Open >= 0 {
		return len(m.Communities[m.Open].Members)
	}
	return len(m.Communities)
}

func (m BrowseModel) View() string {
	if m.Open >= 0 {
		return m.membersView()
	}
	return m.listView()
}

func (m BrowseModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Communities"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	if len(m.Communities) == 0 {
		b.WriteString(listDimStyle.Render("  empty graph"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Communities))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Communities[i]
		rep := ""
		for _, mem := range e.Members {
			if mem.Representative {
				rep = mem.Label
				break
			}
		}
		rows = append(rows, []string{cursorMark(i == m.Cursor), strconv.Itoa(e.ID), colorSwatch(e.Color) + " " + e.Color, strconv.Itoa(len(e.Members)), rep})
	}

	b.WriteString(m.table([]string{"", "Id", "Color", "Size", "Representative"}, rows).Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Communities))))
	return b.String()
}

func (m BrowseModel) membersView() string {
	var b strings.Builder
	e := m.Communities[m.Open]

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Community %d", e.ID)))
	b.WriteString(" " + colorSwatch(e.Color) + " " + listDimStyle.Render(plural(len(e.Members), "paper")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ← back  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(e.Members))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		mem := e.Members[i]
		star := ""
		if mem.Representative {
			star = iconStar
		}
		rows = append(rows, []string{cursorMark(i == m.Cursor), star, mem.Label, fmt.Sprintf("%.3f", mem.Centrality), strconv.Itoa(mem.Degree)})
	}

	b.WriteString(m.table([]string{"", "", "Paper", "Centrality", "Degree"}, rows).Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(e.Members))))
	return b.String()
}

// table builds a bordered table whose current row is highlighted.
func (m BrowseModel) table(headers []string, rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})
}

func cursorMark(current bool) string {
	if current {
		return "▸"
	}
	return " "
}
