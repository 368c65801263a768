package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hexwalk/pkg/archive"
)

type historyOpts struct {
	limit  int
	asJSON bool
}

// historyCommand lists archived exports.
func (c *CLI) historyCommand() *cobra.Command {
	var opts historyOpts

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List exported drawings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistory(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "number of exports to list (0 lists all)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the records as JSON")

	return cmd
}

func (c *CLI) runHistory(ctx context.Context, flags historyOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(ctx, flags.limit)
	if err != nil {
		return err
	}

	if flags.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if len(records) == 0 {
		printInfo("No exports yet")
		printNextStep("Create one", "hexwalk generate")
		return nil
	}
	fmt.Println(historyTable(records, time.Now()))
	return nil
}

// historyTable renders records as a table.
func historyTable(records []archive.Record, now time.Time) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			fmt.Sprintf("%03d", r.Number),
			orDash(r.Signature),
			fmt.Sprint(r.Seed),
			fmt.Sprint(r.Instructions),
			fmt.Sprintf("%.0f", r.DrawLength),
			formatRelativeTime(r.CreatedAt, now),
			orDash(strings.Join(r.Files, ", ")),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Signature", "Seed", "Instr", "Length", "Created", "Files").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 6:
				return lipgloss.NewStyle().Foreground(colorDim)
			default:
				return lipgloss.NewStyle()
			}
		})
	return t.Render()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}
