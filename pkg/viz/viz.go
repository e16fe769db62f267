// Package viz renders planner exploration graphs as Graphviz diagrams.
//
// The PLY dumps in pkg/dump are for mesh viewers; this package targets quick
// inspection: node labels carry vertex indices, and layout is delegated to
// Graphviz. Use ToDOT for the textual form or RenderSVG/RenderPNG for
// images.
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/chartwalk/chartwalk/pkg/planner"
)

// ToDOT converts an exploration graph to Graphviz DOT. Vertices are labeled
// with their index; the first vertex (the start state) and, when present,
// the second (the goal) are highlighted.
func ToDOT(data *planner.Data) string {
	var buf bytes.Buffer
	buf.WriteString("graph exploration {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  node [shape=point, width=0.05];\n")
	buf.WriteString("\n")

	for i := range data.Vertices {
		switch i {
		case 0:
			fmt.Fprintf(&buf, "  %d [shape=circle, width=0.2, label=\"S\", color=green];\n", i)
		case 1:
			fmt.Fprintf(&buf, "  %d [shape=circle, width=0.2, label=\"G\", color=red];\n", i)
		default:
			fmt.Fprintf(&buf, "  %d;\n", i)
		}
	}

	buf.WriteString("\n")
	for _, e := range data.Edges {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out and renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG lays out and renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
