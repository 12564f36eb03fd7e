package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"github.com/Aryan-jain07/path-weaver/pkg/config"
	"github.com/Aryan-jain07/path-weaver/pkg/policy"
)

const classroomGraph = `{
	"name": "classroom",
	"nodes": [
		{"id": "A"}, {"id": "B"}, {"id": "C"},
		{"id": "D"}, {"id": "E"}, {"id": "F"}
	],
	"edges": [
		{"id": "AB", "from": "A", "to": "B", "weight": 4},
		{"id": "AC", "from": "A", "to": "C", "weight": 2},
		{"id": "BD", "from": "B", "to": "D", "weight": 5},
		{"id": "CD", "from": "C", "to": "D", "weight": 8},
		{"id": "CE", "from": "C", "to": "E", "weight": 3},
		{"id": "DE", "from": "D", "to": "E", "weight": 2},
		{"id": "DF", "from": "D", "to": "F", "weight": 6},
		{"id": "EF", "from": "E", "to": "F", "weight": 3}
	]
}`

func newTestApp(t *testing.T, opts ...Option) *fiber.App {
	t.Helper()
	return New(config.Default(), opts...).App()
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body string) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &parsed))
	}
	return resp, parsed
}

func uploadGraph(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/graphs", classroomGraph)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestGraphLifecycle(t *testing.T) {
	app := newTestApp(t)
	id := uploadGraph(t, app)

	resp, body := doJSON(t, app, http.MethodGet, "/api/graphs/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(6), body["nodes"])
	require.Equal(t, float64(8), body["edges"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/graphs/"+id+"/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(1), body["components"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/graphs/"+id, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/graphs/"+id, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGraphDocumentOnlyOnGet(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/graphs", classroomGraph)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_, present := body["document"]
	require.False(t, present, "create response should not embed the document")

	id, _ := body["id"].(string)
	resp, body = doJSON(t, app, http.MethodGet, "/api/graphs/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc, ok := body["document"].(map[string]any)
	require.True(t, ok, "get response should embed the document")
	require.Len(t, doc["nodes"], 6)
}

func TestCreateGraphRejectsBadWeight(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodPost, "/api/graphs", `{
		"nodes": [{"id": "a"}, {"id": "b"}],
		"edges": [{"from": "a", "to": "b", "weight": -1}]
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Contains(t, body["error"], "weight")
}

func TestRunLifecycle(t *testing.T) {
	app := newTestApp(t)
	id := uploadGraph(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/graphs/"+id+"/runs",
		`{"algorithm": "dijkstra", "source": "A", "target": "F"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	runID, _ := body["id"].(string)
	require.NotEmpty(t, runID)

	summary, ok := body["summary"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "path-found", summary["outcome"])
	require.Equal(t, float64(8), summary["cost"])
	require.Equal(t, []any{"A", "C", "E", "F"}, summary["path"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/runs/"+runID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tr, ok := body["trace"].(map[string]any)
	require.True(t, ok)
	steps, ok := tr["steps"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, steps)

	resp, body = doJSON(t, app, http.MethodGet, "/api/runs/"+runID+"/steps/0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "init", body["kind"])

	resp, body = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/runs/%s/steps/%d", runID, len(steps)), "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, float64(len(steps)), body["steps"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/runs/"+runID, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/runs/"+runID, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRunAStar(t *testing.T) {
	app := newTestApp(t)
	id := uploadGraph(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/graphs/"+id+"/runs",
		`{"algorithm": "astar", "source": "A", "target": "F", "heuristic": "zero"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	summary := body["summary"].(map[string]any)
	require.Equal(t, float64(8), summary["cost"])
}

func TestRunErrorMapping(t *testing.T) {
	app := newTestApp(t)
	id := uploadGraph(t, app)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing source", `{"algorithm": "dijkstra", "source": "Z", "target": "F"}`, http.StatusNotFound},
		{"missing target", `{"algorithm": "dijkstra", "source": "A", "target": "Z"}`, http.StatusNotFound},
		{"astar without target", `{"algorithm": "astar", "source": "A"}`, http.StatusUnprocessableEntity},
		{"unknown algorithm", `{"algorithm": "bfs", "source": "A"}`, http.StatusUnprocessableEntity},
		{"unknown heuristic", `{"algorithm": "astar", "source": "A", "target": "F", "heuristic": "psychic"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/api/graphs/"+id+"/runs", tc.body)
			require.Equal(t, tc.want, resp.StatusCode)
		})
	}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/graphs/nope/runs",
		`{"algorithm": "dijkstra", "source": "A"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRunGateDenies(t *testing.T) {
	gate, err := policy.NewGate(policy.Limits{MaxNodes: 2}, nil)
	require.NoError(t, err)
	app := newTestApp(t, WithGate(gate))
	id := uploadGraph(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/graphs/"+id+"/runs",
		`{"algorithm": "dijkstra", "source": "A", "target": "F"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Contains(t, body["error"], "limit")
}

func TestRunEviction(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxRuns = 2
	app := New(cfg).App()
	id := uploadGraph(t, app)

	var runIDs []string
	for i := 0; i < 3; i++ {
		resp, body := doJSON(t, app, http.MethodPost, "/api/graphs/"+id+"/runs",
			`{"algorithm": "dijkstra", "source": "A", "target": "F"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		runIDs = append(runIDs, body["id"].(string))
	}

	resp, _ := doJSON(t, app, http.MethodGet, "/api/runs/"+runIDs[0], "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/runs/"+runIDs[2], "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExportAndDOT(t *testing.T) {
	app := newTestApp(t)
	id := uploadGraph(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/graphs/"+id+"/export?format=dot", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(data), "graph pathweaver")

	_, body := doJSON(t, app, http.MethodPost, "/api/graphs/"+id+"/runs",
		`{"algorithm": "dijkstra", "source": "A", "target": "F"}`)
	runID := body["id"].(string)

	req = httptest.NewRequest(http.MethodGet, "/api/runs/"+runID+"/dot?step=0", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(data), "palegreen") // start node fill
}

func TestPseudocodeEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/pseudocode/dijkstra", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lines, ok := body["lines"].([]any)
	require.True(t, ok)
	require.Len(t, lines, 11)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/pseudocode/bfs", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/api/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
}
