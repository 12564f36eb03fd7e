package engine

import (
	"fmt"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

// dijkstra materializes the single-source step sequence. With a target
// the run stops the moment the target is popped; without one it keeps
// going until every reachable node is finalized (broadcast mode).
//
// The queue holds raw distances and may hold several entries per node:
// an entry popped for an already-visited node is stale and discarded
// without emitting a step.
func dijkstra(g *graph.Graph, source, target string) []trace.Step {
	s := newRunState(g, source, target)

	s.queue.Push(source, 0)
	s.emit(trace.Init{Frame: s.frame(frameOpts{
		line:  lineInit,
		terse: fmt.Sprintf("dist[%s]=0, push (%s, 0)", source, source),
		plain: fmt.Sprintf("Start at %s: its distance is 0 and it waits in the queue; every other node is unreached.", source),
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
			terse:   fmt.Sprintf("pop %s (dist %s)", u, fmtDist(item.Priority)),
			plain:   fmt.Sprintf("Take %s out of the queue: no unvisited node is closer.", u),
		})})

		if target != "" && u == target {
			s.emitPathFound()
			return s.steps
		}

		s.visited[u] = true
		s.emit(trace.MarkVisited{Frame: s.frame(frameOpts{
			current: u,
			line:    lineVisit,
			terse:   fmt.Sprintf("finalize %s (dist %s)", u, fmtDist(s.dist[u])),
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
					terse:       fmt.Sprintf("examine %s→%s (w=%s): %s vs %s", u, nb.NodeID, fmtDist(nb.Weight), fmtDist(tentative), fmtDist(old)),
					plain:       fmt.Sprintf("Try the edge from %s to %s: this way costs %s, best known is %s.", u, nb.NodeID, fmtDist(tentative), fmtDist(old)),
					considering: nb.EdgeID,
				}),
				Edge: info,
			})

			if tentative < old {
				s.dist[nb.NodeID] = tentative
				s.pred[nb.NodeID] = u
				s.predEdge[nb.NodeID] = nb.EdgeID
				s.queue.Push(nb.NodeID, tentative)
				s.relaxed[nb.EdgeID] = true
				info.Relaxed = true
				s.emit(trace.RelaxEdge{
					Frame: s.frame(frameOpts{
						current: u,
						line:    lineRelax,
						terse:   fmt.Sprintf("relax %s: dist=%s, prev=%s", nb.NodeID, fmtDist(tentative), u),
						plain:   fmt.Sprintf("Shorter! %s is now reachable in %s through %s.", nb.NodeID, fmtDist(tentative), u),
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
				plain:   "The queue holds the refreshed candidates; continue with the closest.",
			})})
		}
	}

	if target != "" {
		s.emit(trace.NoPath{Frame: s.frame(frameOpts{
			line:  lineDone,
			terse: fmt.Sprintf("queue empty, %s unreached", target),
			plain: fmt.Sprintf("Every reachable node was finalized and %s was never found: no route exists.", target),
		})})
	} else {
		s.emit(trace.Complete{Frame: s.frame(frameOpts{
			line:  lineDone,
			terse: fmt.Sprintf("queue empty, %d nodes finalized", len(s.visited)),
			plain: "Shortest distances are final for every reachable node.",
		})})
	}
	return s.steps
}
