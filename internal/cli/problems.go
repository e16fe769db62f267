package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/chartwalk/chartwalk/pkg/problem"
)

// problemsCommand creates the problems listing command.
func (c *CLI) problemsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "problems",
		Short: "List the built-in planning problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(StyleDim).
				Headers("NAME", "DIM", "CODIM", "DESCRIPTION")

			for _, p := range problem.All() {
				t.Row(
					StyleHighlight.Render(p.Name),
					fmt.Sprintf("%d", p.Constraint.AmbientDim()),
					fmt.Sprintf("%d", p.Constraint.CoDim()),
					p.Description,
				)
			}

			fmt.Println(t)
			printNextStep("Solve one", "chartwalk solve sphere rrtconnect 5 -a")
			return nil
		},
	}
}
