// Package trace defines the replayable record of one pathfinding run:
// an ordered sequence of immutable steps, each carrying a full snapshot
// of algorithm state at the instant it was produced. A consumer can
// index into the sequence freely; scrubbing backward never requires
// re-running the algorithm.
package trace

// Kind discriminates the step variants.
type Kind string

const (
	KindInit        Kind = "init"
	KindSelectNode  Kind = "select-node"
	KindExamineEdge Kind = "examine-edge"
	KindRelaxEdge   Kind = "relax-edge"
	KindSkipEdge    Kind = "skip-edge"
	KindMarkVisited Kind = "mark-visited"
	KindUpdateQueue Kind = "update-queue"
	KindPathFound   Kind = "path-found"
	KindNoPath      Kind = "no-path"
	KindComplete    Kind = "complete"
)

// NodeClass is the display classification of a node at one step.
type NodeClass string

const (
	NodeClassDefault NodeClass = "default"
	NodeClassCurrent NodeClass = "current"
	NodeClassVisited NodeClass = "visited"
	NodeClassInQueue NodeClass = "in-queue"
	NodeClassPath    NodeClass = "path"
	NodeClassStart   NodeClass = "start"
	NodeClassEnd     NodeClass = "end"
)

// EdgeClass is the display classification of an edge at one step.
type EdgeClass string

const (
	EdgeClassDefault     EdgeClass = "default"
	EdgeClassConsidering EdgeClass = "considering"
	EdgeClassRelaxed     EdgeClass = "relaxed"
	EdgeClassRejected    EdgeClass = "rejected"
	EdgeClassPath        EdgeClass = "path"
)

// QueueEntry is one priority-queue entry as captured in a snapshot.
type QueueEntry struct {
	ID       string  `json:"id"`
	Priority float64 `json:"priority"`
}

// Frame is the state snapshot common to every step kind. All maps and
// slices are captured by value when the step is produced and never
// touched again by the engine; consumers must treat them as read-only.
//
// Distances may hold +Inf for nodes not yet reached. Predecessors omits
// nodes that have none. Visited is sorted by node id; Queue preserves
// heap array order.
type Frame struct {
	Current      string
	Distances    map[string]float64
	Predecessors map[string]string
	Visited      []string
	Queue        []QueueEntry
	NodeClasses  map[string]NodeClass
	EdgeClasses  map[string]EdgeClass

	// Line references the matching line of the algorithm's pseudocode
	// listing, for synchronized display.
	Line int

	// Terse is the one-line technical explanation; Plain says the same
	// thing without jargon.
	Terse string
	Plain string
}

// StepFrame returns the embedded frame.
func (f Frame) StepFrame() Frame { return f }

func (Frame) isStep() {}

// EdgeInfo describes the edge under examination in edge-related steps.
type EdgeInfo struct {
	EdgeID string
	From   string
	To     string
	Weight float64

	// OldDistance is the target's distance before this examination,
	// +Inf when it had not been reached. NewDistance is the tentative
	// distance through this edge. Relaxed reports whether the tentative
	// value won.
	OldDistance float64
	NewDistance float64
	Relaxed     bool
}

// Step is the closed set of step variants. Only types in this package
// implement it.
type Step interface {
	Kind() Kind
	StepFrame() Frame
	isStep()
}

// Init is the first step of every run: source seeded at distance zero,
// everything else unreached.
type Init struct{ Frame }

// SelectNode records the queue yielding its minimum entry; Current is
// the selected node. Stale pops are discarded silently and produce no
// step.
type SelectNode struct{ Frame }

// ExamineEdge records the engine looking at one edge out of the current
// node, before deciding anything.
type ExamineEdge struct {
	Frame
	Edge EdgeInfo
}

// RelaxEdge records a successful relaxation: the edge's tentative
// distance beat the target's known distance, and state was updated.
type RelaxEdge struct {
	Frame
	Edge EdgeInfo
}

// SkipEdge records a rejected relaxation; state is unchanged.
type SkipEdge struct {
	Frame
	Edge EdgeInfo
}

// MarkVisited records the current node being finalized: its distance is
// now provably minimal and it will never be re-expanded.
type MarkVisited struct{ Frame }

// UpdateQueue closes a node expansion, carrying the post-expansion
// queue snapshot. Transient relaxed edge marks reset here.
type UpdateQueue struct{ Frame }

// PathFound is the terminal step of a successful targeted run.
type PathFound struct {
	Frame
	Path []string
	Cost float64
}

// NoPath is the terminal step of a targeted run that exhausted the
// queue without reaching the target. It is an ordinary outcome, not an
// error.
type NoPath struct{ Frame }

// Complete is the terminal step of a broadcast run: every reachable
// node has been finalized.
type Complete struct{ Frame }

func (Init) Kind() Kind        { return KindInit }
func (SelectNode) Kind() Kind  { return KindSelectNode }
func (ExamineEdge) Kind() Kind { return KindExamineEdge }
func (RelaxEdge) Kind() Kind   { return KindRelaxEdge }
func (SkipEdge) Kind() Kind    { return KindSkipEdge }
func (MarkVisited) Kind() Kind { return KindMarkVisited }
func (UpdateQueue) Kind() Kind { return KindUpdateQueue }
func (PathFound) Kind() Kind   { return KindPathFound }
func (NoPath) Kind() Kind      { return KindNoPath }
func (Complete) Kind() Kind    { return KindComplete }

// Trace is the materialized output of one engine run. Steps is empty
// only for a zero-node graph.
type Trace struct {
	Algorithm string
	Source    string
	Target    string // empty in broadcast mode
	Steps     []Step
}

// Len returns the number of steps.
func (t *Trace) Len() int { return len(t.Steps) }

// At returns the step at index i, or false when out of range.
func (t *Trace) At(i int) (Step, bool) {
	if i < 0 || i >= len(t.Steps) {
		return nil, false
	}
	return t.Steps[i], true
}

// Final returns the terminal step, or nil for an empty trace.
func (t *Trace) Final() Step {
	if len(t.Steps) == 0 {
		return nil
	}
	return t.Steps[len(t.Steps)-1]
}

// Summary condenses a trace for logs, HUDs and API responses.
type Summary struct {
	Algorithm string   `json:"algorithm"`
	Source    string   `json:"source"`
	Target    string   `json:"target,omitempty"`
	Outcome   Kind     `json:"outcome"`
	Path      []string `json:"path,omitempty"`
	Cost      float64  `json:"cost"`
	Steps     int      `json:"steps"`
	Visited   int      `json:"visited"`
}

// Summarize derives the run summary from the terminal step.
func (t *Trace) Summarize() Summary {
	s := Summary{
		Algorithm: t.Algorithm,
		Source:    t.Source,
		Target:    t.Target,
		Steps:     len(t.Steps),
	}
	final := t.Final()
	if final == nil {
		return s
	}
	s.Outcome = final.Kind()
	s.Visited = len(final.StepFrame().Visited)
	if pf, ok := final.(PathFound); ok {
		s.Path = pf.Path
		s.Cost = pf.Cost
	}
	return s
}
