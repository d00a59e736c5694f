// Package graph builds the cross-file dependency graph used to compute
// blast radius and impact counts: nodes are entities, edges point from
// an entity to each outgoing reference that Build could resolve.
package graph

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/entitytriage/triage/internal/extract"
	"github.com/entitytriage/triage/internal/model"
	"github.com/entitytriage/triage/internal/parser"
	"github.com/entitytriage/triage/internal/source"
)

// DefaultImpactCap bounds how many transitive dependents ImpactCount
// will walk before giving up on an exact count.
const DefaultImpactCap = 10_000

// FileReader loads the content of a source file, relative to whatever
// root the caller resolved paths against.
type FileReader func(path string) ([]byte, error)

// Graph is an in-memory dependency graph over extracted entities.
type Graph struct {
	Nodes map[string]model.Entity
	// Edges: entity -> entities it depends on.
	Edges map[string][]string
	// ReverseEdges: entity -> entities that depend on it.
	ReverseEdges map[string][]string
}

// Build parses every path in parallel, collects all entities into a
// single global map, then resolves each entity's outgoing references
// by exact name match: a candidate in the same file wins over one in a
// different file, and ties break on the lexicographically smaller
// entity_id. Unresolvable references are dropped rather than failing
// the whole build.
func Build(ctx context.Context, paths []string, read FileReader) (*Graph, error) {
	type parsed struct {
		entities []model.Entity
	}
	results := make([]parsed, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			lang, ok := source.LanguageFor(p)
			if !ok {
				return nil
			}
			content, err := read(p)
			if err != nil {
				return nil // unreadable file contributes no entities
			}
			entities, err := extract.FromSource(p, parser.Language(lang), content)
			if err != nil {
				return nil // parse failure degrades to zero entities
			}
			results[i] = parsed{entities: entities}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := &Graph{
		Nodes:        make(map[string]model.Entity),
		Edges:        make(map[string][]string),
		ReverseEdges: make(map[string][]string),
	}
	byName := make(map[string][]string) // entity name -> entity ids

	for _, r := range results {
		for _, e := range r.entities {
			graph.Nodes[e.ID] = e
			if _, ok := graph.Edges[e.ID]; !ok {
				graph.Edges[e.ID] = []string{}
			}
			if _, ok := graph.ReverseEdges[e.ID]; !ok {
				graph.ReverseEdges[e.ID] = []string{}
			}
			byName[e.Name] = append(byName[e.Name], e.ID)
		}
	}

	for id, e := range graph.Nodes {
		for _, ref := range e.OutgoingRefs {
			target := resolve(ref, id, e.FilePath, byName, graph.Nodes)
			if target == "" {
				continue
			}
			graph.addEdge(id, target)
		}
	}

	return graph, nil
}

// resolve picks the best candidate entity for an unresolved name
// reference: prefer a same-file candidate, then the lexicographically
// smallest entity_id among the rest.
func resolve(name, fromID, fromFile string, byName map[string][]string, nodes map[string]model.Entity) string {
	candidates := byName[name]
	if len(candidates) == 0 {
		return ""
	}

	var sameFile []string
	for _, c := range candidates {
		if c == fromID {
			continue
		}
		if nodes[c].FilePath == fromFile {
			sameFile = append(sameFile, c)
		}
	}

	pool := sameFile
	if len(pool) == 0 {
		for _, c := range candidates {
			if c != fromID {
				pool = append(pool, c)
			}
		}
	}
	if len(pool) == 0 {
		return ""
	}

	sort.Strings(pool)
	return pool[0]
}

func (g *Graph) addEdge(from, to string) {
	g.Edges[from] = append(g.Edges[from], to)
	g.ReverseEdges[to] = append(g.ReverseEdges[to], from)
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Edges)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, targets := range g.Edges {
		count += len(targets)
	}
	return count
}

// NodeIDs returns all node IDs in the graph.
func (g *Graph) NodeIDs() []string {
	nodes := make([]string, 0, len(g.Edges))
	for node := range g.Edges {
		nodes = append(nodes, node)
	}
	return nodes
}

// Entity looks up an entity by id.
func (g *Graph) Entity(id string) (model.Entity, bool) {
	e, ok := g.Nodes[id]
	return e, ok
}

// OutDegree returns the number of outgoing edges from a node.
func (g *Graph) OutDegree(node string) int {
	return len(g.Edges[node])
}

// InDegree returns the number of incoming edges to a node.
func (g *Graph) InDegree(node string) int {
	return len(g.ReverseEdges[node])
}

// Successors returns nodes that this node depends on.
func (g *Graph) Successors(node string) []string {
	return g.Edges[node]
}

// Predecessors returns nodes that depend on this node.
func (g *Graph) Predecessors(node string) []string {
	return g.ReverseEdges[node]
}

// Dependencies returns the entities a given entity directly depends on.
func (g *Graph) Dependencies(id string) []string {
	return g.Successors(id)
}

// Dependents returns the entities that directly depend on a given entity.
func (g *Graph) Dependents(id string) []string {
	return g.Predecessors(id)
}

// ImpactCount returns the number of transitive dependents of id,
// capped at maxCount. A cap of zero or less falls back to
// DefaultImpactCap. The walk stops as soon as the cap is reached, so
// the result for a hub entity is an exact count only when the true
// count is below the cap.
func (g *Graph) ImpactCount(id string, maxCount int) int {
	if maxCount <= 0 {
		maxCount = DefaultImpactCap
	}

	visited := map[string]struct{}{id: {}}
	queue := []string{id}
	count := 0

	for len(queue) > 0 && count < maxCount {
		current := queue[0]
		queue = queue[1:]

		for _, dependent := range g.ReverseEdges[current] {
			if _, seen := visited[dependent]; seen {
				continue
			}
			visited[dependent] = struct{}{}
			count++
			if count >= maxCount {
				break
			}
			queue = append(queue, dependent)
		}
	}

	return count
}

// Subgraph creates a new graph containing only the specified nodes.
func (g *Graph) Subgraph(nodes []string) *Graph {
	nodeSet := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		nodeSet[n] = struct{}{}
	}

	sub := &Graph{
		Nodes:        make(map[string]model.Entity),
		Edges:        make(map[string][]string),
		ReverseEdges: make(map[string][]string),
	}

	for _, node := range nodes {
		sub.Edges[node] = []string{}
		sub.ReverseEdges[node] = []string{}
		if e, ok := g.Nodes[node]; ok {
			sub.Nodes[node] = e
		}

		for _, target := range g.Edges[node] {
			if _, ok := nodeSet[target]; ok {
				sub.Edges[node] = append(sub.Edges[node], target)
			}
		}
		for _, src := range g.ReverseEdges[node] {
			if _, ok := nodeSet[src]; ok {
				sub.ReverseEdges[node] = append(sub.ReverseEdges[node], src)
			}
		}
	}

	return sub
}
