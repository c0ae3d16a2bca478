package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/pipeline"
	"github.com/isplab/citegraph/pkg/render"
)

// statsCommand creates the stats command that summarizes communities.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		input  inputFlags
		rank   rankFlags
		asJSON bool
		facts  bool
	)

	cmd := &cobra.Command{
		Use:   "stats <facts.json|->",
		Short: "Print node, edge and community counts",
		Long: `Stats detects communities and ranks papers without laying out the graph,
then prints the size and representative of every community.

With --facts it prints the facts that pass --titles, --exclude and
--sanitize instead, which is what render would lay out.`,
		Args: cobra.ExactArgs(1),
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

			if facts {
				return c.writeAdmittedFacts(os.Stdout, args[0], in)
			}

			report, err := c.analyze(ctx, args[0], in, opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeReportJSON(os.Stdout, report)
			}

			printKeyValue("Nodes", strconv.Itoa(report.NodeCount))
			printKeyValue("Edges", strconv.Itoa(report.EdgeCount))
			printKeyValue("Modularity", fmt.Sprintf("%.4f", report.Modularity))
			printNewline()
			fmt.Println(communityTable(report, opts.Palette))
			return nil
		},
	}

	input.register(cmd.Flags())
	rank.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&facts, "facts", false, "print the admitted facts instead of the report")

	return cmd
}

// analyze parses path and runs detection and ranking.
func (c *CLI) analyze(ctx context.Context, path string, in pipeline.InputOptions, opts pipeline.Options) (*pipeline.Report, error) {
	g, err := c.parseInput(path, in)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(nil, nil, fileLogger(ctx, path))
	return runner.Analyze(ctx, g, opts)
}

// writeAdmittedFacts writes the facts of path that survive the input filter.
func (c *CLI) writeAdmittedFacts(w io.Writer, path string, in pipeline.InputOptions) error {
	g, err := c.parseInput(path, in)
	if err != nil {
		return err
	}
	return graph.WriteFacts(graph.ToFacts(g), w)
}

func writeReportJSON(w io.Writer, report *pipeline.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// communityTable renders one row per community, ordered by id.
func communityTable(report *pipeline.Report, palette render.Palette) string {
	ids := make([]int, 0, len(report.CommunitySizes))
	for id := range report.CommunitySizes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		color := palette.Color(id)
		rows = append(rows, []string{
			strconv.Itoa(id),
			colorSwatch(color) + " " + color,
			strconv.Itoa(report.CommunitySizes[id]),
			report.Representatives[id],
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Community", "Color", "Size", "Representative").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
