// Package diagram defines the structured intermediate representation a
// vision model produces for a sketch, and the parsing that extracts it
// from free-form model output.
package diagram

import "strings"

// Kind is the diagram category described by the sketch.
type Kind string

// Recognized diagram kinds. Unknown kinds normalize to KindFlowchart.
const (
	KindFlowchart Kind = "flowchart"
	KindSequence  Kind = "sequence"
	KindClass     Kind = "class"
	KindState     Kind = "state"
	KindERD       Kind = "erd"
	KindGantt     Kind = "gantt"
)

// Orientation is the layout direction for directional diagrams.
type Orientation string

// Recognized orientations. Unknown values normalize to OrientTD.
const (
	OrientTD Orientation = "TD"
	OrientLR Orientation = "LR"
	OrientBT Orientation = "BT"
	OrientRL Orientation = "RL"
)

// ElementType tags what a sketched element represents. The model may emit
// arbitrary tags; anything outside this set normalizes to TypeOther.
type ElementType string

const (
	TypeProcess    ElementType = "process"
	TypeDecision   ElementType = "decision"
	TypeTerminator ElementType = "terminator"
	TypeData       ElementType = "data"
	TypeDatabase   ElementType = "database"
	TypeActor      ElementType = "actor"
	TypeNote       ElementType = "note"
	TypeOther      ElementType = "other"
)

// Element is one node in the sketched diagram.
type Element struct {
	ID    string      `json:"id"`
	Label string      `json:"label,omitempty"`
	Type  ElementType `json:"type,omitempty"`
	Group string      `json:"group,omitempty"`
	Style string      `json:"style,omitempty"`
}

// Edge connects two elements. Source and Target reference Element IDs;
// dangling references are legal in a Spec and generators treat them as
// no-ops.
type Edge struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Label     string `json:"label,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Group is a named cluster of elements.
type Group struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Spec is the structured description of a sketched diagram. It is written
// once by the describer and read-only afterwards.
type Spec struct {
	Kind        Kind        `json:"diagram_type"`
	Orientation Orientation `json:"orientation"`
	Elements    []Element   `json:"elements"`
	Edges       []Edge      `json:"edges"`
	Groups      []Group     `json:"groups,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// Empty returns a structurally valid spec with no content: flowchart,
// top-down, no elements. This is the degradation target when description
// fails.
func Empty() Spec {
	return Spec{
		Kind:        KindFlowchart,
		Orientation: OrientTD,
		Elements:    []Element{},
		Edges:       []Edge{},
	}
}

// IsEmpty reports whether the spec carries no elements and no edges.
func (s Spec) IsEmpty() bool {
	return len(s.Elements) == 0 && len(s.Edges) == 0
}

// HasElement reports whether an element with the given ID exists.
func (s Spec) HasElement(id string) bool {
	for _, e := range s.Elements {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Normalize clamps open-ended fields to their recognized sets: unknown
// kinds become flowchart, unknown orientations become TD, and unknown
// element type tags become "other". Elements without an ID are dropped.
func (s Spec) Normalize() Spec {
	out := s

	switch Kind(strings.ToLower(string(s.Kind))) {
	case KindFlowchart, KindSequence, KindClass, KindState, KindERD, KindGantt:
		out.Kind = Kind(strings.ToLower(string(s.Kind)))
	default:
		out.Kind = KindFlowchart
	}

	switch Orientation(strings.ToUpper(string(s.Orientation))) {
	case OrientTD, OrientLR, OrientBT, OrientRL:
		out.Orientation = Orientation(strings.ToUpper(string(s.Orientation)))
	default:
		out.Orientation = OrientTD
	}

	out.Elements = make([]Element, 0, len(s.Elements))
	for _, e := range s.Elements {
		if e.ID == "" {
			continue
		}
		switch ElementType(strings.ToLower(string(e.Type))) {
		case TypeProcess, TypeDecision, TypeTerminator, TypeData, TypeDatabase, TypeActor, TypeNote:
			e.Type = ElementType(strings.ToLower(string(e.Type)))
		default:
			e.Type = TypeOther
		}
		out.Elements = append(out.Elements, e)
	}

	if out.Edges == nil {
		out.Edges = []Edge{}
	}

	return out
}
