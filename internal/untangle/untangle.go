// Package untangle clusters changed entities that reference each other
// into logical ChangeGroups, using a union-find over the set of reviews.
package untangle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/entitytriage/triage/internal/model"
)

// Edge is a dependency edge between two changed entities, restricted by
// the caller to pairs where both endpoints were changed.
type Edge struct {
	From string
	To   string
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

// Group clusters reviews by their connectivity under edges, producing
// ChangeGroups sorted by size descending with ids renumbered from 0.
func Group(reviews []model.EntityReview, edges []Edge) []model.ChangeGroup {
	n := len(reviews)
	if n == 0 {
		return []model.ChangeGroup{}
	}

	index := make(map[string]int, n)
	for i, r := range reviews {
		index[r.EntityID] = i
	}

	uf := newUnionFind(n)
	for _, e := range edges {
		fi, fok := index[e.From]
		ti, tok := index[e.To]
		if fok && tok {
			uf.union(fi, ti)
		}
	}

	componentOf := make(map[int][]int)
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		root := uf.find(i)
		if _, seen := componentOf[root]; !seen {
			order = append(order, root)
		}
		componentOf[root] = append(componentOf[root], i)
	}

	groups := make([]model.ChangeGroup, 0, len(order))
	for _, root := range order {
		members := componentOf[root]
		entityIDs := make([]string, len(members))
		files := make([]string, len(members))
		for i, mi := range members {
			entityIDs[i] = reviews[mi].EntityID
			files[i] = reviews[mi].FilePath
		}
		groups = append(groups, model.ChangeGroup{
			Label:     label(reviews, members, files, entityIDs),
			EntityIDs: entityIDs,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].EntityIDs) > len(groups[j].EntityIDs)
	})

	for i := range groups {
		groups[i].ID = i
	}

	return groups
}

func label(reviews []model.EntityReview, members []int, files, entityIDs []string) string {
	if len(members) == 1 {
		return reviews[members[0]].EntityName
	}

	if prefix := commonPathPrefix(files); prefix != "" {
		return prefix
	}

	return fmt.Sprintf("%d entities", len(entityIDs))
}

// commonPathPrefix returns the longest common byte prefix of paths,
// truncated at the last '/' it contains (inclusive). Returns "" if the
// shared prefix contains no '/'.
func commonPathPrefix(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	prefix := paths[0]
	for _, p := range paths[1:] {
		prefix = sharedPrefix(prefix, p)
	}

	idx := strings.LastIndexByte(prefix, '/')
	if idx < 0 {
		return ""
	}
	return prefix[:idx+1]
}

func sharedPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
