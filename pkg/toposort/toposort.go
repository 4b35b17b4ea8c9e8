// Package toposort orders declarations so that dependencies come first.
package toposort

import (
	"slices"

	"github.com/blimu-dev/schema-ir/pkg/ir"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Sort returns decls ordered so that every declaration appears after the
// declarations it references, except where references form a cycle. The
// output is a permutation of the input and depends only on the input order.
// References to undeclared names are ignored.
func Sort(decls []ir.ReferenceType) []ir.ReferenceType {
	index := indexByName(decls)

	const (
		unvisited = iota
		inProgress
		done
	)
	state := make([]int, len(decls))
	out := make([]ir.ReferenceType, 0, len(decls))

	var visit func(i int)
	visit = func(i int) {
		state[i] = inProgress
		for _, n := range ir.CollectNamed(decls[i].Type) {
			j, ok := index[n.Name]
			if !ok || state[j] != unvisited {
				// in progress means a cycle: the edge is dropped
				continue
			}
			visit(j)
		}
		state[i] = done
		out = append(out, decls[i])
	}

	for i := range decls {
		if state[i] == unvisited {
			visit(i)
		}
	}
	return out
}

// Cycles reports the groups of mutually referencing declarations: strongly
// connected components with more than one member, or a single declaration
// that references itself. Names within a group and the groups themselves
// follow declaration order.
func Cycles(decls []ir.ReferenceType) [][]string {
	index := indexByName(decls)

	g := simple.NewDirectedGraph()
	for i := range decls {
		g.AddNode(simple.Node(i))
	}
	selfRef := make([]bool, len(decls))
	for i, d := range decls {
		for _, n := range ir.CollectNamed(d.Type) {
			j, ok := index[n.Name]
			if !ok {
				continue
			}
			if i == j {
				// simple graphs reject self edges
				selfRef[i] = true
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
		}
	}

	var groups [][]int
	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) == 1 && !selfRef[scc[0].ID()] {
			continue
		}
		ids := make([]int, 0, len(scc))
		for _, n := range scc {
			ids = append(ids, int(n.ID()))
		}
		slices.Sort(ids)
		groups = append(groups, ids)
	}
	slices.SortFunc(groups, func(a, b []int) int { return a[0] - b[0] })

	out := make([][]string, 0, len(groups))
	for _, ids := range groups {
		names := make([]string, 0, len(ids))
		for _, i := range ids {
			names = append(names, decls[i].Name)
		}
		out = append(out, names)
	}
	return out
}

// indexByName maps names to their first declaration index
func indexByName(decls []ir.ReferenceType) map[string]int {
	index := make(map[string]int, len(decls))
	for i, d := range decls {
		if _, dup := index[d.Name]; !dup {
			index[d.Name] = i
		}
	}
	return index
}
