package engine

// Pseudocode line targets referenced by step frames. The two listings
// are written line-parallel, so the same constants serve both.
const (
	lineInit    = 1
	lineLoop    = 3
	lineSelect  = 4
	lineTarget  = 5
	lineVisit   = 6
	lineExamine = 7
	lineRelax   = 9
	lineSkip    = 10
	lineDone    = 11
)

var dijkstraListing = []string{
	"dist[source] ← 0, all other dist ← ∞",
	"push (source, 0)",
	"while the queue is not empty",
	"    u ← pop minimum; discard if already visited",
	"    if u is the target → reconstruct path, stop",
	"    mark u visited",
	"    for each edge u→v with weight w",
	"        if dist[u] + w < dist[v]",
	"            dist[v] ← dist[u]+w, prev[v] ← u, push (v, dist[v])",
	"        else keep dist[v]",
	"queue empty → done",
}

var astarListing = []string{
	"g[source] ← 0, all other g ← ∞",
	"push (source, h(source, target))",
	"while the queue is not empty",
	"    u ← pop minimum f; discard if already visited",
	"    if u is the target → reconstruct path, stop",
	"    mark u visited",
	"    for each edge u→v with weight w",
	"        if g[u] + w < g[v]",
	"            g[v] ← g[u]+w, prev[v] ← u, push (v, g[v]+h(v, target))",
	"        else keep g[v]",
	"queue empty → no path",
}

// Pseudocode returns the numbered listing a run's step frames point
// into, one line per entry, 1-based. The caller owns the slice.
func Pseudocode(alg Algorithm) []string {
	src := dijkstraListing
	if alg == AlgorithmAStar {
		src = astarListing
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
