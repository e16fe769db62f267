// Package dump serializes planning artifacts: solution paths and exploration
// graphs as ASCII PLY, atlas chart meshes as PLY faces, and dense paths as
// whitespace-separated animation frames.
//
// PLY output is only meaningful for three-dimensional ambient spaces; the
// animation format works for any dimension.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/planner"
)

// WritePath writes a waypoint sequence as a PLY polyline: one vertex per
// state, one edge per consecutive pair.
func WritePath(path []linalg.Vector, w io.Writer) error {
	bw := bufio.NewWriter(w)

	edges := 0
	if len(path) > 1 {
		edges = len(path) - 1
	}
	writePLYHeader(bw, len(path), edges, "edge")

	for _, x := range path {
		writeVertex(bw, x)
	}
	for i := 0; i < edges; i++ {
		fmt.Fprintf(bw, "%d %d\n", i, i+1)
	}
	return bw.Flush()
}

// WritePathFile writes a PLY polyline to the given path.
func WritePathFile(path []linalg.Vector, filename string) error {
	return writeFile(filename, func(w io.Writer) error { return WritePath(path, w) })
}

// WriteGraph writes a planner exploration graph as PLY vertices and edges.
func WriteGraph(data *planner.Data, w io.Writer) error {
	bw := bufio.NewWriter(w)
	writePLYHeader(bw, len(data.Vertices), len(data.Edges), "edge")

	for _, x := range data.Vertices {
		writeVertex(bw, x)
	}
	for _, e := range data.Edges {
		fmt.Fprintf(bw, "%d %d\n", e[0], e[1])
	}
	return bw.Flush()
}

// WriteGraphFile writes a PLY exploration graph to the given path.
func WriteGraphFile(data *planner.Data, filename string) error {
	return writeFile(filename, func(w io.Writer) error { return WriteGraph(data, w) })
}

// WriteMesh writes chart polygons as a PLY face mesh. Every polygon becomes
// one face; vertices are not deduplicated across polygons.
func WriteMesh(polys [][]linalg.Vector, w io.Writer) error {
	bw := bufio.NewWriter(w)

	vertices := 0
	for _, poly := range polys {
		vertices += len(poly)
	}
	writePLYHeader(bw, vertices, len(polys), "face")

	for _, poly := range polys {
		for _, x := range poly {
			writeVertex(bw, x)
		}
	}

	offset := 0
	for _, poly := range polys {
		fmt.Fprintf(bw, "%d", len(poly))
		for i := range poly {
			fmt.Fprintf(bw, " %d", offset+i)
		}
		fmt.Fprintln(bw)
		offset += len(poly)
	}
	return bw.Flush()
}

// WriteMeshFile writes a PLY face mesh to the given path.
func WriteMeshFile(polys [][]linalg.Vector, filename string) error {
	return writeFile(filename, func(w io.Writer) error { return WriteMesh(polys, w) })
}

// WriteAnim writes states one per line, components space-separated with %g.
// This is the dimension-agnostic animation trace the original driver always
// emits.
func WriteAnim(states []linalg.Vector, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, x := range states {
		if _, err := fmt.Fprintln(bw, x.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteAnimFile writes an animation trace to the given path.
func WriteAnimFile(states []linalg.Vector, filename string) error {
	return writeFile(filename, func(w io.Writer) error { return WriteAnim(states, w) })
}

// writePLYHeader emits the ASCII PLY preamble. second is "edge" or "face".
func writePLYHeader(w io.Writer, vertices, count int, second string) {
	fmt.Fprintln(w, "ply")
	fmt.Fprintln(w, "format ascii 1.0")
	fmt.Fprintf(w, "element vertex %d\n", vertices)
	fmt.Fprintln(w, "property float x")
	fmt.Fprintln(w, "property float y")
	fmt.Fprintln(w, "property float z")
	fmt.Fprintf(w, "element %s %d\n", second, count)
	if second == "face" {
		fmt.Fprintln(w, "property list uchar int vertex_index")
	} else {
		fmt.Fprintln(w, "property int vertex1")
		fmt.Fprintln(w, "property int vertex2")
	}
	fmt.Fprintln(w, "end_header")
}

func writeVertex(w io.Writer, x linalg.Vector) {
	fmt.Fprintf(w, "%g %g %g\n", x[0], x[1], x[2])
}

func writeFile(filename string, write func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	defer f.Close()
	return write(f)
}
