package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/comicdto/pkg/data"
	"github.com/kerbaras/comicdto/pkg/hydrate"
	"github.com/spf13/cobra"
)

var shapesCmd = &cobra.Command{
	Use:   "shapes [name]",
	Short: "List the record shapes",
	Long:  "Display every record shape, or a single one, with its fields in a formatted table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shapes := data.Registry.Shapes()
		if len(args) == 1 {
			s, ok := data.Registry.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown shape %q", args[0])
			}
			shapes = []*hydrate.Shape{s}
		}

		columns := []table.Column{
			{Title: "Shape", Width: 18},
			{Title: "Field", Width: 14},
			{Title: "Kind", Width: 10},
			{Title: "Type", Width: 24},
		}

		rows := []table.Row{}
		for _, s := range shapes {
			for i, f := range s.Fields {
				name := ""
				if i == 0 {
					name = s.Name
				}
				rows = append(rows, table.Row{name, f.Name, f.Kind.String(), f.String()})
			}
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)+1),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Fprintf(cmd.OutOrStdout(), "\nRecord shapes (%d)\n\n", len(shapes))
		fmt.Fprintln(cmd.OutOrStdout(), t.View())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shapesCmd)
}
