package trace

import (
	"encoding/json"
	"fmt"
	"math"
)

// Wire form: a flat kind-tagged object per step. It exists for export
// and rendering, not for round-tripping: unreached (+Inf) distances
// are omitted rather than encoded, since JSON has no infinity.
type wireStep struct {
	Kind         Kind                 `json:"kind"`
	Current      string               `json:"current,omitempty"`
	Distances    map[string]float64   `json:"distances"`
	Predecessors map[string]string    `json:"predecessors"`
	Visited      []string             `json:"visited"`
	Queue        []QueueEntry         `json:"queue"`
	NodeClasses  map[string]NodeClass `json:"nodeClasses"`
	EdgeClasses  map[string]EdgeClass `json:"edgeClasses"`
	Line         int                  `json:"line"`
	Terse        string               `json:"terse"`
	Plain        string               `json:"plain"`
	Edge         *wireEdge            `json:"edge,omitempty"`
	Path         []string             `json:"path,omitempty"`
	Cost         *float64             `json:"cost,omitempty"`
}

type wireEdge struct {
	EdgeID      string   `json:"edgeId"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Weight      float64  `json:"weight"`
	OldDistance *float64 `json:"oldDistance,omitempty"` // omitted when infinite
	NewDistance float64  `json:"newDistance"`
	Relaxed     bool     `json:"relaxed"`
}

func encodeFrame(kind Kind, f Frame) wireStep {
	finite := make(map[string]float64, len(f.Distances))
	for id, d := range f.Distances {
		if !math.IsInf(d, 1) {
			finite[id] = d
		}
	}
	ws := wireStep{
		Kind:         kind,
		Current:      f.Current,
		Distances:    finite,
		Predecessors: f.Predecessors,
		Visited:      f.Visited,
		Queue:        f.Queue,
		NodeClasses:  f.NodeClasses,
		EdgeClasses:  f.EdgeClasses,
		Line:         f.Line,
		Terse:        f.Terse,
		Plain:        f.Plain,
	}
	if ws.Visited == nil {
		ws.Visited = []string{}
	}
	if ws.Queue == nil {
		ws.Queue = []QueueEntry{}
	}
	if ws.Predecessors == nil {
		ws.Predecessors = map[string]string{}
	}
	return ws
}

func encodeEdge(e EdgeInfo) *wireEdge {
	we := &wireEdge{
		EdgeID:      e.EdgeID,
		From:        e.From,
		To:          e.To,
		Weight:      e.Weight,
		NewDistance: e.NewDistance,
		Relaxed:     e.Relaxed,
	}
	if !math.IsInf(e.OldDistance, 1) {
		old := e.OldDistance
		we.OldDistance = &old
	}
	return we
}

// MarshalStep encodes any step into its wire form.
func MarshalStep(s Step) ([]byte, error) {
	ws := encodeFrame(s.Kind(), s.StepFrame())
	switch v := s.(type) {
	case ExamineEdge:
		ws.Edge = encodeEdge(v.Edge)
	case RelaxEdge:
		ws.Edge = encodeEdge(v.Edge)
	case SkipEdge:
		ws.Edge = encodeEdge(v.Edge)
	case PathFound:
		ws.Path = v.Path
		cost := v.Cost
		ws.Cost = &cost
	}
	return json.Marshal(ws)
}

func (s Init) MarshalJSON() ([]byte, error)        { return MarshalStep(s) }
func (s SelectNode) MarshalJSON() ([]byte, error)  { return MarshalStep(s) }
func (s ExamineEdge) MarshalJSON() ([]byte, error) { return MarshalStep(s) }
func (s RelaxEdge) MarshalJSON() ([]byte, error)   { return MarshalStep(s) }
func (s SkipEdge) MarshalJSON() ([]byte, error)    { return MarshalStep(s) }
func (s MarkVisited) MarshalJSON() ([]byte, error) { return MarshalStep(s) }
func (s UpdateQueue) MarshalJSON() ([]byte, error) { return MarshalStep(s) }
func (s PathFound) MarshalJSON() ([]byte, error)   { return MarshalStep(s) }
func (s NoPath) MarshalJSON() ([]byte, error)      { return MarshalStep(s) }
func (s Complete) MarshalJSON() ([]byte, error)    { return MarshalStep(s) }

type wireTrace struct {
	Algorithm string            `json:"algorithm"`
	Source    string            `json:"source"`
	Target    string            `json:"target,omitempty"`
	Summary   Summary           `json:"summary"`
	Steps     []json.RawMessage `json:"steps"`
}

// MarshalJSON encodes the whole trace with a leading summary block.
func (t *Trace) MarshalJSON() ([]byte, error) {
	wt := wireTrace{
		Algorithm: t.Algorithm,
		Source:    t.Source,
		Target:    t.Target,
		Summary:   t.Summarize(),
		Steps:     make([]json.RawMessage, 0, len(t.Steps)),
	}
	for i, s := range t.Steps {
		raw, err := MarshalStep(s)
		if err != nil {
			return nil, fmt.Errorf("trace: step %d: %w", i, err)
		}
		wt.Steps = append(wt.Steps, raw)
	}
	return json.Marshal(wt)
}
