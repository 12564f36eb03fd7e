package graphio

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
)

// decodeHCL reads the HCL graph dialect:
//
//	directed = true
//
//	node "a" {
//	  label = "Start"
//	  x     = 0
//	  y     = 0
//	}
//
//	edge "ab" {
//	  from   = "a"
//	  to     = "b"
//	  weight = 4
//	}
//
// Expressions must be literals; there is no evaluation context.
func decodeHCL(src []byte, filename string) (*graph.Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("graphio: parse %s: %w", filename, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("graphio: %s: unexpected body type", filename)
	}

	var doc Document
	if attr, ok := body.Attributes["directed"]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("graphio: %s: directed: %w", filename, diags)
		}
		if val.Type() != cty.Bool {
			return nil, fmt.Errorf("graphio: %s: directed must be a bool", filename)
		}
		doc.Directed = val.True()
	}

	for _, block := range body.Blocks {
		if len(block.Labels) != 1 {
			return nil, fmt.Errorf("graphio: %s:%d: %s block needs exactly one label",
				filename, block.Range().Start.Line, block.Type)
		}
		id := block.Labels[0]
		attrs := block.Body.Attributes

		switch block.Type {
		case "node":
			n := NodeSpec{ID: id}
			var err error
			if n.Label, _, err = attrString(attrs, "label"); err != nil {
				return nil, fmt.Errorf("graphio: node %q: %w", id, err)
			}
			if n.X, _, err = attrNumber(attrs, "x"); err != nil {
				return nil, fmt.Errorf("graphio: node %q: %w", id, err)
			}
			if n.Y, _, err = attrNumber(attrs, "y"); err != nil {
				return nil, fmt.Errorf("graphio: node %q: %w", id, err)
			}
			doc.Nodes = append(doc.Nodes, n)

		case "edge":
			e := EdgeSpec{ID: id}
			for _, req := range []struct {
				name string
				dst  *string
			}{{"from", &e.From}, {"to", &e.To}} {
				v, ok, err := attrString(attrs, req.name)
				if err != nil {
					return nil, fmt.Errorf("graphio: edge %q: %w", id, err)
				}
				if !ok {
					return nil, fmt.Errorf("graphio: edge %q: %s is required", id, req.name)
				}
				*req.dst = v
			}
			w, ok, err := attrNumber(attrs, "weight")
			if err != nil {
				return nil, fmt.Errorf("graphio: edge %q: %w", id, err)
			}
			if !ok {
				return nil, fmt.Errorf("graphio: edge %q: weight is required", id)
			}
			e.Weight = w
			doc.Edges = append(doc.Edges, e)

		default:
			return nil, fmt.Errorf("graphio: %s:%d: unknown block type %q",
				filename, block.Range().Start.Line, block.Type)
		}
	}
	return doc.ToGraph()
}

func attrString(attrs hclsyntax.Attributes, name string) (string, bool, error) {
	attr, ok := attrs[name]
	if !ok {
		return "", false, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", false, fmt.Errorf("%s: %w", name, diags)
	}
	if val.Type() != cty.String {
		return "", false, fmt.Errorf("%s must be a string", name)
	}
	return val.AsString(), true, nil
}

func attrNumber(attrs hclsyntax.Attributes, name string) (float64, bool, error) {
	attr, ok := attrs[name]
	if !ok {
		return 0, false, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return 0, false, fmt.Errorf("%s: %w", name, diags)
	}
	if val.Type() != cty.Number {
		return 0, false, fmt.Errorf("%s must be a number", name)
	}
	f, _ := val.AsBigFloat().Float64()
	return f, true, nil
}
