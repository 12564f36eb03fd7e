// Package policy gates run requests before they reach an engine. A
// gate combines fixed size limits with operator-defined CEL rules
// evaluated against the request and simple graph statistics, so
// deployments can refuse work they consider too large or malformed
// without code changes.
package policy

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
)

// ErrDenied indicates a request rejected by limits or rules.
var ErrDenied = errors.New("policy: request denied")

// Rule is one named admission condition. Condition is a CEL expression
// over the request variables; a rule that evaluates to true denies the
// request.
//
// Available variables: algorithm, source, target (string), directed
// (bool), nodes, edges (int), minWeight, maxWeight, totalWeight
// (double).
type Rule struct {
	ID        string `json:"id" yaml:"id"`
	Condition string `json:"condition" yaml:"condition"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Limits bounds the size of admissible graphs. Zero values disable the
// corresponding check.
type Limits struct {
	MaxNodes int `json:"maxNodes" yaml:"maxNodes"`
	MaxEdges int `json:"maxEdges" yaml:"maxEdges"`
}

// DefaultLimits returns a baseline sized for interactive visualization.
func DefaultLimits() Limits {
	return Limits{MaxNodes: 500, MaxEdges: 5000}
}

// Input is one request as the gate sees it.
type Input struct {
	Algorithm string
	Source    string
	Target    string
	Graph     *graph.Graph
}

// Violation is one reason a request was denied.
type Violation struct {
	RuleID  string `json:"ruleId"`
	Message string `json:"message"`
}

// Gate evaluates limits and compiled rules against incoming requests.
type Gate struct {
	limits   Limits
	rules    []Rule
	programs map[string]cel.Program
	logger   *slog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGate compiles the rule set. A rule that fails to compile rejects
// the whole gate so configuration mistakes surface at startup, not per
// request.
func NewGate(limits Limits, rules []Rule, opts ...Option) (*Gate, error) {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("algorithm", decls.String),
			decls.NewVar("source", decls.String),
			decls.NewVar("target", decls.String),
			decls.NewVar("directed", decls.Bool),
			decls.NewVar("nodes", decls.Int),
			decls.NewVar("edges", decls.Int),
			decls.NewVar("minWeight", decls.Double),
			decls.NewVar("maxWeight", decls.Double),
			decls.NewVar("totalWeight", decls.Double),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("policy: create env: %w", err)
	}

	g := &Gate{
		limits:   limits,
		rules:    rules,
		programs: make(map[string]cel.Program, len(rules)),
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(g)
	}

	for _, r := range rules {
		ast, issues := env.Compile(r.Condition)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("policy: rule %q: %w", r.ID, issues.Err())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("policy: rule %q: %w", r.ID, err)
		}
		g.programs[r.ID] = prg
	}
	return g, nil
}

// Check returns every violation the input triggers, limits first, then
// rules in declaration order. An empty result admits the request.
func (g *Gate) Check(in Input) []Violation {
	var out []Violation
	if in.Graph != nil {
		if g.limits.MaxNodes > 0 && in.Graph.NodeCount() > g.limits.MaxNodes {
			out = append(out, Violation{
				RuleID:  "limits.nodes",
				Message: fmt.Sprintf("graph has %d nodes, limit is %d", in.Graph.NodeCount(), g.limits.MaxNodes),
			})
		}
		if g.limits.MaxEdges > 0 && in.Graph.EdgeCount() > g.limits.MaxEdges {
			out = append(out, Violation{
				RuleID:  "limits.edges",
				Message: fmt.Sprintf("graph has %d edges, limit is %d", in.Graph.EdgeCount(), g.limits.MaxEdges),
			})
		}
	}
	if len(g.programs) == 0 {
		return out
	}

	vars := g.vars(in)
	for _, r := range g.rules {
		prg, ok := g.programs[r.ID]
		if !ok {
			continue
		}
		val, _, err := prg.Eval(vars)
		if err != nil {
			g.logger.Error("rule evaluation failed", "rule", r.ID, "error", err)
			continue
		}
		if matched, ok := val.Value().(bool); ok && matched {
			msg := r.Message
			if msg == "" {
				msg = r.Condition
			}
			out = append(out, Violation{RuleID: r.ID, Message: msg})
		}
	}
	return out
}

// Admit runs Check and folds the first violation into ErrDenied.
func (g *Gate) Admit(in Input) error {
	vs := g.Check(in)
	if len(vs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrDenied, vs[0].RuleID, vs[0].Message)
}

func (g *Gate) vars(in Input) map[string]any {
	v := map[string]any{
		"algorithm":   in.Algorithm,
		"source":      in.Source,
		"target":      in.Target,
		"directed":    false,
		"nodes":       int64(0),
		"edges":       int64(0),
		"minWeight":   0.0,
		"maxWeight":   0.0,
		"totalWeight": 0.0,
	}
	if in.Graph == nil {
		return v
	}
	v["directed"] = in.Graph.Directed()
	v["nodes"] = int64(in.Graph.NodeCount())
	v["edges"] = int64(in.Graph.EdgeCount())

	minW, maxW, total := 0.0, 0.0, 0.0
	for i, e := range in.Graph.Edges() {
		if i == 0 || e.Weight < minW {
			minW = e.Weight
		}
		if e.Weight > maxW {
			maxW = e.Weight
		}
		total += e.Weight
	}
	v["minWeight"] = minW
	v["maxWeight"] = maxW
	v["totalWeight"] = total
	return v
}
