package problem

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/manifold"
)

// problemFile is the TOML schema for parameterized problem instances. Only
// the fields relevant to the chosen family are read.
type problemFile struct {
	Family      string    `toml:"family"`
	Name        string    `toml:"name"`
	Description string    `toml:"description"`
	Radius      float64   `toml:"radius"`       // sphere, circle
	MajorRadius float64   `toml:"major_radius"` // torus
	MinorRadius float64   `toml:"minor_radius"` // torus
	Links       int       `toml:"links"`        // chain
	LinkLength  float64   `toml:"link_length"`  // chain
	Start       []float64 `toml:"start"`
	Goal        []float64 `toml:"goal"`

	Obstacles []obstacleSpec `toml:"obstacles"`
}

// obstacleSpec describes one invalid region.
type obstacleSpec struct {
	// Kind is "ball" (states within Radius of Center are invalid) or "slab"
	// (states whose Axis component lies in [Min, Max] are invalid).
	Kind   string    `toml:"kind"`
	Center []float64 `toml:"center"`
	Radius float64   `toml:"radius"`
	Axis   int       `toml:"axis"`
	Min    float64   `toml:"min"`
	Max    float64   `toml:"max"`
}

// Load reads a TOML problem file and instantiates the named family with its
// parameters. Obstacles in the file replace the family's default validity
// checker.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse instantiates a problem from raw TOML. Callers that need to
// fingerprint the problem definition (the pipeline's solution cache does)
// read the bytes themselves and hand them here.
func Parse(data []byte, path string) (*Problem, error) {
	var spec problemFile
	if err := toml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return fromSpec(&spec, path)
}

func fromSpec(spec *problemFile, path string) (*Problem, error) {
	var p *Problem
	switch spec.Family {
	case "sphere":
		p, _ = Lookup("sphere")
		if spec.Radius > 0 {
			p.Constraint = sphereConstraint{radius: spec.Radius}
			p.Start = linalg.Vector{0, 0, spec.Radius}
			p.Goal = linalg.Vector{0, 0, -spec.Radius}
		}
	case "circle":
		p, _ = Lookup("circle")
		if spec.Radius > 0 {
			p.Constraint = circleConstraint{radius: spec.Radius, normal: linalg.Vector{0, 0, 1}}
			p.Start = linalg.Vector{spec.Radius, 0, 0}
			p.Goal = linalg.Vector{-spec.Radius, 0, 0}
		}
	case "torus":
		p, _ = Lookup("torus")
		if spec.MajorRadius > 0 && spec.MinorRadius > 0 {
			p.Constraint = torusConstraint{major: spec.MajorRadius, minor: spec.MinorRadius}
			r := spec.MajorRadius + spec.MinorRadius
			p.Start = linalg.Vector{r, 0, 0}
			p.Goal = linalg.Vector{-r, 0, 0}
		}
	case "klein":
		p, _ = Lookup("klein")
	case "chain":
		links, length := 4, 1.0
		if spec.Links > 0 {
			links = spec.Links
		}
		if spec.LinkLength > 0 {
			length = spec.LinkLength
		}
		p = newChainSized(links, length)
	default:
		return nil, fmt.Errorf("%s: unknown problem family %q", path, spec.Family)
	}

	if spec.Name != "" {
		p.Name = spec.Name
	}
	if spec.Description != "" {
		p.Description = spec.Description
	}

	n := p.Constraint.AmbientDim()
	if len(spec.Start) > 0 {
		if len(spec.Start) != n {
			return nil, fmt.Errorf("%s: start has %d components, ambient dimension is %d", path, len(spec.Start), n)
		}
		p.Start = linalg.Vector(spec.Start)
	}
	if len(spec.Goal) > 0 {
		if len(spec.Goal) != n {
			return nil, fmt.Errorf("%s: goal has %d components, ambient dimension is %d", path, len(spec.Goal), n)
		}
		p.Goal = linalg.Vector(spec.Goal)
	}

	if len(spec.Obstacles) > 0 {
		checker, err := buildChecker(spec.Obstacles, n, path)
		if err != nil {
			return nil, err
		}
		p.Valid = checker
	}
	return p, nil
}

// buildChecker compiles the obstacle list into a single validity checker.
func buildChecker(specs []obstacleSpec, dim int, path string) (manifold.ValidityChecker, error) {
	type checker = manifold.ValidityChecker
	checks := make([]checker, 0, len(specs))

	for i, o := range specs {
		switch o.Kind {
		case "ball":
			if len(o.Center) != dim {
				return nil, fmt.Errorf("%s: obstacle %d center has %d components, want %d", path, i, len(o.Center), dim)
			}
			center := linalg.Vector(o.Center)
			radius := o.Radius
			checks = append(checks, func(x linalg.Vector) bool {
				return x.Dist(center) >= radius
			})
		case "slab":
			if o.Axis < 0 || o.Axis >= dim {
				return nil, fmt.Errorf("%s: obstacle %d axis %d out of range", path, i, o.Axis)
			}
			axis, lo, hi := o.Axis, o.Min, o.Max
			checks = append(checks, func(x linalg.Vector) bool {
				return x[axis] < lo || x[axis] > hi
			})
		default:
			return nil, fmt.Errorf("%s: obstacle %d has unknown kind %q", path, i, o.Kind)
		}
	}

	return func(x linalg.Vector) bool {
		for _, c := range checks {
			if !c(x) {
				return false
			}
		}
		return true
	}, nil
}
