// Package graphio reads and writes graph descriptions. JSON and YAML
// round-trip through the same document schema, HCL is read-only input
// for hand-written graphs, and DOT is write-only output for Graphviz
// rendering.
package graphio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
)

// Format selects a codec.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
	FormatDOT  Format = "dot"
)

// ErrUnknownFormat indicates a format this package has no codec for.
var ErrUnknownFormat = errors.New("graphio: unknown format")

// DetectFormat maps a file extension to its format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	case ".dot", ".gv":
		return FormatDOT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Decode parses data in the given format into a graph.
func Decode(data []byte, f Format) (*graph.Graph, error) {
	switch f {
	case FormatJSON:
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("graphio: parse json: %w", err)
		}
		return doc.ToGraph()
	case FormatYAML:
		var doc Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("graphio: parse yaml: %w", err)
		}
		return doc.ToGraph()
	case FormatHCL:
		return decodeHCL(data, "graph.hcl")
	case FormatDOT:
		return nil, errors.New("graphio: dot is write-only")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// DecodeFile reads path and decodes it according to its extension.
func DecodeFile(path string) (*graph.Graph, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graphio: read %s: %w", path, err)
	}
	if f == FormatHCL {
		return decodeHCL(data, path)
	}
	return Decode(data, f)
}

// Encode renders a graph in the given format. HCL files are input
// only.
func Encode(g *graph.Graph, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(FromGraph(g), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("graphio: encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(FromGraph(g))
		if err != nil {
			return nil, fmt.Errorf("graphio: encode yaml: %w", err)
		}
		return data, nil
	case FormatDOT:
		return EncodeDOT(g, nil, nil)
	case FormatHCL:
		return nil, errors.New("graphio: hcl is read-only")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
