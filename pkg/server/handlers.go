package server

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Aryan-jain07/path-weaver/pkg/engine"
	"github.com/Aryan-jain07/path-weaver/pkg/graph"
	"github.com/Aryan-jain07/path-weaver/pkg/graphio"
	"github.com/Aryan-jain07/path-weaver/pkg/heuristic"
	"github.com/Aryan-jain07/path-weaver/pkg/policy"
	"github.com/Aryan-jain07/path-weaver/pkg/trace"
	"github.com/Aryan-jain07/path-weaver/pkg/version"
)

// createGraphRequest is the upload body: a name plus the shared
// document schema of the file codecs.
type createGraphRequest struct {
	Name string `json:"name"`
	graphio.Document
}

type graphResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name,omitempty"`
	Directed bool             `json:"directed"`
	Nodes    int              `json:"nodes"`
	Edges    int              `json:"edges"`
	Created  string           `json:"created"`
	Document *graphio.Document `json:"document,omitempty"`
}

func (s *Server) graphResponse(sg *StoredGraph, withDoc bool) graphResponse {
	resp := graphResponse{
		ID:       sg.ID,
		Name:     sg.Name,
		Directed: sg.Graph.Directed(),
		Nodes:    sg.Graph.NodeCount(),
		Edges:    sg.Graph.EdgeCount(),
		Created:  sg.Created.Format("2006-01-02T15:04:05Z"),
	}
	if withDoc {
		doc := graphio.FromGraph(sg.Graph)
		resp.Document = &doc
	}
	return resp
}

func (s *Server) createGraph(c fiber.Ctx) error {
	var req createGraphRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	g, err := req.Document.ToGraph()
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	sg := s.storeGraph(req.Name, g)
	s.logger.Info("graph stored", "id", sg.ID, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return c.Status(fiber.StatusCreated).JSON(s.graphResponse(sg, false))
}

func (s *Server) listGraphs(c fiber.Ctx) error {
	s.mu.RLock()
	out := make([]graphResponse, 0, len(s.graphs))
	for _, sg := range s.graphs {
		out = append(out, s.graphResponse(sg, false))
	}
	s.mu.RUnlock()
	return c.JSON(out)
}

func (s *Server) getGraph(c fiber.Ctx) error {
	sg, ok := s.graphByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph not found"})
	}
	return c.JSON(s.graphResponse(sg, true))
}

func (s *Server) deleteGraph(c fiber.Ctx) error {
	id := c.Params("id")
	s.mu.Lock()
	_, ok := s.graphs[id]
	delete(s.graphs, id)
	s.mu.Unlock()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) graphStats(c fiber.Ctx) error {
	sg, ok := s.graphByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph not found"})
	}
	comps := sg.Graph.Components()
	sizes := make([]int, len(comps))
	for i, comp := range comps {
		sizes[i] = len(comp)
	}
	return c.JSON(fiber.Map{
		"directed":       sg.Graph.Directed(),
		"nodes":          sg.Graph.NodeCount(),
		"edges":          sg.Graph.EdgeCount(),
		"components":     len(comps),
		"componentSizes": sizes,
	})
}

func (s *Server) exportGraph(c fiber.Ctx) error {
	sg, ok := s.graphByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph not found"})
	}
	format := graphio.Format(c.Query("format", string(graphio.FormatJSON)))
	data, err := graphio.Encode(sg.Graph, format)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	switch format {
	case graphio.FormatJSON:
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	default:
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	}
	return c.Send(data)
}

// createRunRequest selects the algorithm and endpoints for one run.
type createRunRequest struct {
	Algorithm string  `json:"algorithm"`
	Source    string  `json:"source"`
	Target    string  `json:"target,omitempty"`
	Heuristic string  `json:"heuristic,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

type runResponse struct {
	ID      string        `json:"id"`
	GraphID string        `json:"graphId"`
	Created string        `json:"created"`
	Summary trace.Summary `json:"summary"`
}

func (s *Server) runResponse(sr *StoredRun) runResponse {
	return runResponse{
		ID:      sr.ID,
		GraphID: sr.GraphID,
		Created: sr.Created.Format("2006-01-02T15:04:05Z"),
		Summary: sr.Trace.Summarize(),
	}
}

func (s *Server) createRun(c fiber.Ctx) error {
	sg, ok := s.graphByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph not found"})
	}
	var req createRunRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Algorithm == "" {
		req.Algorithm = string(engine.AlgorithmDijkstra)
	}

	if s.gate != nil {
		if err := s.gate.Admit(policy.Input{
			Algorithm: req.Algorithm,
			Source:    req.Source,
			Target:    req.Target,
			Graph:     sg.Graph,
		}); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
	}

	var h heuristic.Func
	if req.Heuristic != "" {
		scale := req.Scale
		if scale == 0 {
			scale = s.cfg.Heuristic.Scale
		}
		var err error
		h, err = heuristic.ByName(req.Heuristic, scale)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
	}

	tr, err := s.runner.Run(c.Context(), engine.Request{
		Graph:     sg.Graph,
		Source:    req.Source,
		Target:    req.Target,
		Algorithm: engine.Algorithm(req.Algorithm),
		Heuristic: h,
	})
	switch {
	case errors.Is(err, graph.ErrNodeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrTargetRequired),
		errors.Is(err, engine.ErrUnknownAlgorithm),
		errors.Is(err, graph.ErrInvalidWeight):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	sr := s.storeRun(sg.ID, tr)
	return c.Status(fiber.StatusCreated).JSON(s.runResponse(sr))
}

func (s *Server) listRuns(c fiber.Ctx) error {
	s.mu.RLock()
	out := make([]runResponse, 0, len(s.runOrder))
	for _, id := range s.runOrder {
		if sr, ok := s.runs[id]; ok {
			out = append(out, s.runResponse(sr))
		}
	}
	s.mu.RUnlock()
	return c.JSON(out)
}

func (s *Server) getRun(c fiber.Ctx) error {
	sr, ok := s.runByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}
	return c.JSON(fiber.Map{
		"id":      sr.ID,
		"graphId": sr.GraphID,
		"trace":   sr.Trace,
	})
}

func (s *Server) deleteRun(c fiber.Ctx) error {
	id := c.Params("id")
	s.mu.Lock()
	_, ok := s.runs[id]
	delete(s.runs, id)
	for i, rid := range s.runOrder {
		if rid == id {
			s.runOrder = append(s.runOrder[:i], s.runOrder[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) getStep(c fiber.Ctx) error {
	sr, ok := s.runByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}
	idx, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "index must be an integer"})
	}
	step, ok := sr.Trace.At(idx)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "step index out of range",
			"steps": sr.Trace.Len(),
		})
	}
	raw, err := trace.MarshalStep(step)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// runDOT renders one step of a run as a classified Graphviz frame.
// Without ?step it renders the terminal step.
func (s *Server) runDOT(c fiber.Ctx) error {
	sr, ok := s.runByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}
	sg, ok := s.graphByID(sr.GraphID)
	if !ok {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "graph deleted since the run"})
	}

	idx := sr.Trace.Len() - 1
	if q := c.Query("step"); q != "" {
		var err error
		idx, err = strconv.Atoi(q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "step must be an integer"})
		}
	}
	var nodeClasses map[string]trace.NodeClass
	var edgeClasses map[string]trace.EdgeClass
	if step, ok := sr.Trace.At(idx); ok {
		f := step.StepFrame()
		nodeClasses, edgeClasses = f.NodeClasses, f.EdgeClasses
	} else if sr.Trace.Len() > 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "step index out of range",
			"steps": sr.Trace.Len(),
		})
	}

	data, err := graphio.EncodeDOT(sg.Graph, nodeClasses, edgeClasses)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(data)
}

func (s *Server) pseudocode(c fiber.Ctx) error {
	alg := engine.Algorithm(c.Params("algorithm"))
	if alg != engine.AlgorithmDijkstra && alg != engine.AlgorithmAStar {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown algorithm"})
	}
	return c.JSON(fiber.Map{
		"algorithm": alg,
		"lines":     engine.Pseudocode(alg),
	})
}

func (s *Server) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": version.Current})
}
