package engine

import (
	"fmt"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
	"github.com/Aryan-jain07/path-weaver/pkg/heuristic"
	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

// astar materializes the heuristic-guided step sequence. The queue is
// ordered by f = g + h(node, target) rather than raw distance, which
// steers expansion toward the target; relaxation itself compares g
// exactly like the single-source engine, so the step vocabulary and
// queue discipline are identical. Point-to-point only; the caller has
// already guaranteed a target.
//
// With an admissible, consistent heuristic the first pop of the target
// is optimal. An overestimating heuristic does not break the run, only
// the optimality of its answer.
func astar(g *graph.Graph, source, target string, h heuristic.Func) []trace.Step {
	s := newRunState(g, source, target)

	tgtNode, _ := g.Node(target)
	estimate := func(id string) float64 {
		n, _ := g.Node(id)
		return h(n, tgtNode)
	}

	f0 := estimate(source)
	s.queue.Push(source, f0)
	s.emit(trace.Init{Frame: s.frame(frameOpts{
		line:  lineInit,
		terse: fmt.Sprintf("g[%s]=0, f=%s, push (%s, %s)", source, fmtDist(f0), source, fmtDist(f0)),
		plain: fmt.Sprintf("Start at %s: path cost 0 so far, estimated %s to reach %s.", source, fmtDist(f0), target),
	})})

	for {
		item, ok := s.queue.Pop()
		if !ok {
			break
		}
		if s.visited[item.ID] {
			continue // stale entry
		}
		u := item.ID

		s.emit(trace.SelectNode{Frame: s.frame(frameOpts{
			current: u,
			line:    lineSelect,
			terse:   fmt.Sprintf("pop %s (f=%s)", u, fmtDist(item.Priority)),
			plain:   fmt.Sprintf("Take %s out of the queue: it has the most promising total estimate.", u),
		})})

		if u == target {
			s.emitPathFound()
			return s.steps
		}

		s.visited[u] = true
		s.emit(trace.MarkVisited{Frame: s.frame(frameOpts{
			current: u,
			line:    lineVisit,
			terse:   fmt.Sprintf("finalize %s (g=%s)", u, fmtDist(s.dist[u])),
			plain:   fmt.Sprintf("%s is done: no shorter route to it can exist.", u),
		})})

		examined := 0
		for _, nb := range g.Neighbors(u) {
			if s.visited[nb.NodeID] {
				continue
			}
			examined++
			old := s.dist[nb.NodeID]
			tentative := s.dist[u] + nb.Weight
			info := trace.EdgeInfo{
				EdgeID:      nb.EdgeID,
				From:        u,
				To:          nb.NodeID,
				Weight:      nb.Weight,
				OldDistance: old,
				NewDistance: tentative,
			}

			s.emit(trace.ExamineEdge{
				Frame: s.frame(frameOpts{
					current:     u,
					line:        lineExamine,
					terse:       fmt.Sprintf("examine %s→%s (w=%s): g %s vs %s", u, nb.NodeID, fmtDist(nb.Weight), fmtDist(tentative), fmtDist(old)),
					plain:       fmt.Sprintf("Try the edge from %s to %s: this way costs %s, best known is %s.", u, nb.NodeID, fmtDist(tentative), fmtDist(old)),
					considering: nb.EdgeID,
				}),
				Edge: info,
			})

			if tentative < old {
				s.dist[nb.NodeID] = tentative
				s.pred[nb.NodeID] = u
				s.predEdge[nb.NodeID] = nb.EdgeID
				f := tentative + estimate(nb.NodeID)
				s.queue.Push(nb.NodeID, f)
				s.relaxed[nb.EdgeID] = true
				info.Relaxed = true
				s.emit(trace.RelaxEdge{
					Frame: s.frame(frameOpts{
						current: u,
						line:    lineRelax,
						terse:   fmt.Sprintf("relax %s: g=%s, f=%s, prev=%s", nb.NodeID, fmtDist(tentative), fmtDist(f), u),
						plain:   fmt.Sprintf("Shorter! %s is now reachable in %s through %s; estimated total %s.", nb.NodeID, fmtDist(tentative), u, fmtDist(f)),
					}),
					Edge: info,
				})
			} else {
				s.emit(trace.SkipEdge{
					Frame: s.frame(frameOpts{
						current:  u,
						line:     lineSkip,
						terse:    fmt.Sprintf("skip %s: %s ≥ %s", nb.NodeID, fmtDist(tentative), fmtDist(old)),
						plain:    fmt.Sprintf("No gain: reaching %s this way costs %s, but %s is already known.", nb.NodeID, fmtDist(tentative), fmtDist(old)),
						rejected: nb.EdgeID,
					}),
					Edge: info,
				})
			}
		}

		if examined > 0 {
			s.relaxed = make(map[string]bool)
			s.emit(trace.UpdateQueue{Frame: s.frame(frameOpts{
				current: u,
				line:    lineLoop,
				terse:   fmt.Sprintf("queue updated, %d pending", s.queue.Len()),
				plain:   "The queue holds the refreshed candidates; continue with the most promising.",
			})})
		}
	}

	s.emit(trace.NoPath{Frame: s.frame(frameOpts{
		line:  lineDone,
		terse: fmt.Sprintf("queue empty, %s unreached", target),
		plain: fmt.Sprintf("Every reachable node was finalized and %s was never found: no route exists.", target),
	})})
	return s.steps
}
