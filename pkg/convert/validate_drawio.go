package convert

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

// DrawioValidator structurally checks draw.io XML: well-formedness, the
// required element nesting, the two base cells, and at least one shape.
// It runs entirely in-process.
type DrawioValidator struct{}

// NewDrawioValidator builds a DrawioValidator.
func NewDrawioValidator() *DrawioValidator {
	return &DrawioValidator{}
}

// xmlNode is a generic element tree, enough to walk arbitrary draw.io XML
// without committing to the full mxGraph schema.
type xmlNode struct {
	XMLName  xml.Name   `xml:""`
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
}

func (n *xmlNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *xmlNode) child(name string) *xmlNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i]
		}
	}
	return nil
}

// Validate repairs the candidate first (fences stripped, entities
// unescaped, prose trimmed to the <mxfile> span) and checks the repaired
// document. Repair is idempotent, so re-validating a normalized document
// yields the same outcome.
func (v *DrawioValidator) Validate(_ context.Context, code string) Outcome {
	if strings.TrimSpace(code) == "" {
		return Outcome{Issues: []string{emptyCodeIssue}}
	}

	cleaned := cleanDrawio(code)
	if cleaned == "" {
		cleaned = strings.TrimSpace(code)
	}

	if issues := v.check(cleaned); len(issues) > 0 {
		return Outcome{Issues: issues}
	}
	return Outcome{Valid: true, NormalizedCode: cleaned}
}

func (v *DrawioValidator) check(code string) []string {
	var root xmlNode
	if err := xml.Unmarshal([]byte(code), &root); err != nil {
		return []string{fmt.Sprintf("XML is not well-formed: %v", err)}
	}

	var issues []string
	if root.XMLName.Local != "mxfile" {
		issues = append(issues, fmt.Sprintf("Root element must be <mxfile>, found <%s>", root.XMLName.Local))
		return issues
	}

	diagramEl := root.child("diagram")
	if diagramEl == nil {
		return append(issues, "Missing <diagram> element inside <mxfile>")
	}
	model := diagramEl.child("mxGraphModel")
	if model == nil {
		return append(issues, "Missing <mxGraphModel> element inside <diagram>")
	}
	cellRoot := model.child("root")
	if cellRoot == nil {
		return append(issues, "Missing <root> element inside <mxGraphModel>")
	}

	var hasZero, hasOne, hasVertex bool
	for i := range cellRoot.Children {
		cell := &cellRoot.Children[i]
		if cell.XMLName.Local != "mxCell" {
			continue
		}
		id, _ := cell.attr("id")
		switch id {
		case "0":
			hasZero = true
		case "1":
			hasOne = true
		}
		if vtx, ok := cell.attr("vertex"); ok && vtx == "1" {
			hasVertex = true
		}
	}
	if !hasZero || !hasOne {
		issues = append(issues, `Missing the base cells <mxCell id="0"/> and <mxCell id="1" parent="0"/>`)
	}
	if !hasVertex {
		issues = append(issues, "Diagram contains no shape cells (mxCell with vertex=\"1\")")
	}
	return issues
}
