package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chartwalk/chartwalk/pkg/planner"
)

// plannerNotes gives a one-line description per registered planner.
var plannerNotes = map[string]string{
	"rrt":        "goal-biased rapidly-exploring random tree",
	"rrtconnect": "bidirectional RRT growing from both endpoints",
	"rrtstar":    "asymptotically optimal RRT with rewiring",
	"prm":        "probabilistic roadmap with Dijkstra queries",
}

// plannersCommand creates the planners listing command.
func (c *CLI) plannersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "planners",
		Short: "List the registered planners",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range planner.Names() {
				note := plannerNotes[name]
				fmt.Println(StyleHighlight.Render(name))
				if note != "" {
					printDetail("%s", note)
				}
			}
			return nil
		},
	}
}
