package graph

import "sort"

// UnionFind implements DSU with union by rank and path compression.
// Analysis runs on an immutable graph snapshot, so no locking is needed.
type UnionFind struct {
	parent []int
	rank   []int
}

// NewUnionFind initializes DSU over n elements.
func NewUnionFind(n int) *UnionFind {
	parent := make([]int, n)
	for i := 0; i < n; i++ {
		parent[i] = i
	}
	return &UnionFind{parent: parent, rank: make([]int, n)}
}

// Find returns the set representative.
func (uf *UnionFind) Find(i int) int {
	if i < 0 || i >= len(uf.parent) {
		return -1
	}
	if uf.parent[i] != i {
		uf.parent[i] = uf.Find(uf.parent[i])
	}
	return uf.parent[i]
}

// Union merges the sets containing i and j.
func (uf *UnionFind) Union(i, j int) {
	rootI := uf.Find(i)
	rootJ := uf.Find(j)
	if rootI == -1 || rootJ == -1 || rootI == rootJ {
		return
	}
	// Union by rank
	if uf.rank[rootI] < uf.rank[rootJ] {
		uf.parent[rootI] = rootJ
	} else if uf.rank[rootI] > uf.rank[rootJ] {
		uf.parent[rootJ] = rootI
	} else {
		uf.parent[rootJ] = rootI
		uf.rank[rootI]++
	}
}

// Connected checks whether i and j share a set.
func (uf *UnionFind) Connected(i, j int) bool {
	return uf.Find(i) == uf.Find(j)
}

// Components partitions the nodes into connected components, ignoring
// edge direction. Each component is sorted by node id and components
// are ordered by their smallest member, so output is deterministic.
func (g *Graph) Components() [][]string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	uf := NewUnionFind(len(ids))
	for _, e := range g.edges {
		uf.Union(index[e.Source], index[e.Target])
	}

	groups := make(map[int][]string)
	for i, id := range ids {
		root := uf.Find(i)
		groups[root] = append(groups[root], id)
	}

	out := make([][]string, 0, len(groups))
	for _, members := range groups {
		sort.Strings(members)
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Reachable returns the set of node ids reachable from source by
// following edges, honoring directedness. The source itself is included
// when it exists; a missing source yields nil.
func (g *Graph) Reachable(source string) map[string]bool {
	if _, ok := g.nodes[source]; !ok {
		return nil
	}

	// BFS traversal.
	visited := map[string]bool{source: true}
	queue := []string{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, nb := range g.Neighbors(current) {
			if visited[nb.NodeID] {
				continue
			}
			visited[nb.NodeID] = true
			queue = append(queue, nb.NodeID)
		}
	}
	return visited
}

// CanReach reports whether target is reachable from source. Used as a
// cheap pre-check before running a full pathfinding trace.
func (g *Graph) CanReach(source, target string) bool {
	reach := g.Reachable(source)
	return reach != nil && reach[target]
}
