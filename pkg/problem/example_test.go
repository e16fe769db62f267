package problem_test

import (
	"fmt"
	"strings"

	"github.com/chartwalk/chartwalk/pkg/problem"
)

func ExampleNames() {
	fmt.Println(strings.Join(problem.Names(), " "))
	// Output: chain circle klein sphere torus
}

func ExampleLookup() {
	p, ok := problem.Lookup("sphere")
	if !ok {
		return
	}
	fmt.Println(p.Constraint.AmbientDim(), p.Constraint.CoDim())
	// Output: 3 1
}
