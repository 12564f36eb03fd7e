package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
	"github.com/Aryan-jain07/path-weaver/pkg/pqueue"
	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

// runState holds one run's mutable algorithm state. Every emitted step
// copies out of it, so nothing recorded in a step is ever touched by
// later processing, and nothing here is shared between runs.
type runState struct {
	g      *graph.Graph
	source string
	target string

	dist     map[string]float64
	pred     map[string]string
	predEdge map[string]string
	visited  map[string]bool
	queue    *pqueue.Queue

	// relaxed accumulates edges relaxed within the current expansion;
	// cleared when the expansion closes with its update-queue step.
	relaxed map[string]bool

	steps []trace.Step
}

func newRunState(g *graph.Graph, source, target string) *runState {
	s := &runState{
		g:        g,
		source:   source,
		target:   target,
		dist:     make(map[string]float64, g.NodeCount()),
		pred:     make(map[string]string),
		predEdge: make(map[string]string),
		visited:  make(map[string]bool),
		queue:    pqueue.New(),
		relaxed:  make(map[string]bool),
	}
	for _, n := range g.Nodes() {
		s.dist[n.ID] = math.Inf(1)
	}
	s.dist[source] = 0
	return s
}

func (s *runState) emit(step trace.Step) {
	s.steps = append(s.steps, step)
}

// frameOpts carries the per-step inputs of a snapshot: the display
// strings, the pseudocode line, and which edges/nodes get the
// step-specific classifications.
type frameOpts struct {
	current     string
	line        int
	terse       string
	plain       string
	considering string
	rejected    string
	pathNodes   map[string]bool
	pathEdges   map[string]bool
}

// frame captures the full state snapshot for one step. Maps and slices
// are fresh copies; the returned frame never aliases run state.
func (s *runState) frame(o frameOpts) trace.Frame {
	distances := make(map[string]float64, len(s.dist))
	for id, d := range s.dist {
		distances[id] = d
	}
	preds := make(map[string]string, len(s.pred))
	for id, p := range s.pred {
		preds[id] = p
	}
	visited := make([]string, 0, len(s.visited))
	for id := range s.visited {
		visited = append(visited, id)
	}
	sort.Strings(visited)

	snap := s.queue.Snapshot()
	queue := make([]trace.QueueEntry, len(snap))
	inQueue := make(map[string]bool, len(snap))
	for i, it := range snap {
		queue[i] = trace.QueueEntry{ID: it.ID, Priority: it.Priority}
		inQueue[it.ID] = true
	}

	return trace.Frame{
		Current:      o.current,
		Distances:    distances,
		Predecessors: preds,
		Visited:      visited,
		Queue:        queue,
		NodeClasses:  s.classifyNodes(o, inQueue),
		EdgeClasses:  s.classifyEdges(o),
		Line:         o.line,
		Terse:        o.terse,
		Plain:        o.plain,
	}
}

// classifyNodes assigns every node its display class. Endpoint classes
// are sticky: the source stays "start" and the target "end" even while
// current or on the final path.
func (s *runState) classifyNodes(o frameOpts, inQueue map[string]bool) map[string]trace.NodeClass {
	classes := make(map[string]trace.NodeClass, len(s.dist))
	for id := range s.dist {
		switch {
		case id == s.source:
			classes[id] = trace.NodeClassStart
		case s.target != "" && id == s.target:
			classes[id] = trace.NodeClassEnd
		case o.pathNodes[id]:
			classes[id] = trace.NodeClassPath
		case id == o.current:
			classes[id] = trace.NodeClassCurrent
		case s.visited[id]:
			classes[id] = trace.NodeClassVisited
		case inQueue[id]:
			classes[id] = trace.NodeClassInQueue
		default:
			classes[id] = trace.NodeClassDefault
		}
	}
	return classes
}

// classifyEdges assigns every edge its display class. "considering" and
// "rejected" mark only the edge of the current step; "relaxed" marks
// survive until the expansion's update-queue step resets them.
func (s *runState) classifyEdges(o frameOpts) map[string]trace.EdgeClass {
	classes := make(map[string]trace.EdgeClass, s.g.EdgeCount())
	for _, e := range s.g.Edges() {
		switch {
		case o.pathEdges[e.ID]:
			classes[e.ID] = trace.EdgeClassPath
		case o.rejected != "" && e.ID == o.rejected:
			classes[e.ID] = trace.EdgeClassRejected
		case o.considering != "" && e.ID == o.considering:
			classes[e.ID] = trace.EdgeClassConsidering
		case s.relaxed[e.ID]:
			classes[e.ID] = trace.EdgeClassRelaxed
		default:
			classes[e.ID] = trace.EdgeClassDefault
		}
	}
	return classes
}

// pathSets expands an ordered path into node and edge lookup sets for
// terminal classification. Path edges are the exact edges relaxation
// recorded, not recomputed lookups, so parallel edges stay faithful.
func (s *runState) pathSets(path []string) (map[string]bool, map[string]bool) {
	nodes := make(map[string]bool, len(path))
	for _, id := range path {
		nodes[id] = true
	}
	edges := make(map[string]bool, len(path))
	for i := 1; i < len(path); i++ {
		if eid, ok := s.predEdge[path[i]]; ok {
			edges[eid] = true
		}
	}
	return nodes, edges
}

// emitPathFound closes a targeted run: it reconstructs the path,
// classes its nodes and edges, and records the terminal step. The
// target is deliberately not added to the visited set first: the pop
// itself proves its distance final.
func (s *runState) emitPathFound() {
	path := ReconstructPath(s.pred, s.target)
	cost := s.dist[s.target]
	pathNodes, pathEdges := s.pathSets(path)
	s.emit(trace.PathFound{
		Frame: s.frame(frameOpts{
			current:   s.target,
			line:      lineTarget,
			terse:     fmt.Sprintf("path %s, cost %s", strings.Join(path, "→"), fmtDist(cost)),
			plain:     fmt.Sprintf("Reached %s: the shortest route costs %s.", s.target, fmtDist(cost)),
			pathNodes: pathNodes,
			pathEdges: pathEdges,
		}),
		Path: path,
		Cost: cost,
	})
}

// fmtDist renders a distance for explanation strings, "∞" when
// unreached.
func fmtDist(d float64) string {
	if math.IsInf(d, 1) {
		return "∞"
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}
