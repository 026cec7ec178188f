package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const describedSketch = "Here is the structure I can read:\n\n" +
	"```json\n" +
	`{
  "diagram_type": "flowchart",
  "orientation": "LR",
  "elements": [
    {"id": "start", "label": "Start", "type": "terminator"},
    {"id": "check", "label": "Valid?", "type": "decision"}
  ],
  "edges": [
    {"source": "start", "target": "check"}
  ]
}` + "\n```\n\nThe arrow between the boxes is labeled but unreadable."

// TestExtract_FencedJSON verifies the happy path: a fenced JSON block plus
// surrounding narrative.
func TestExtract_FencedJSON(t *testing.T) {
	spec, narrative, ok := Extract(describedSketch)

	require.True(t, ok)
	assert.Equal(t, KindFlowchart, spec.Kind)
	assert.Equal(t, OrientLR, spec.Orientation)
	require.Len(t, spec.Elements, 2)
	assert.True(t, spec.HasElement("start"))
	assert.True(t, spec.HasElement("check"))
	require.Len(t, spec.Edges, 1)

	assert.Contains(t, narrative, "unreadable")
	assert.NotContains(t, narrative, "diagram_type")
	assert.NotContains(t, narrative, "```")
}

// TestExtract_BareJSON verifies extraction without fences via balanced
// brace scanning.
func TestExtract_BareJSON(t *testing.T) {
	text := `The sketch shows {"diagram_type": "sequence", "elements": [{"id": "a", "label": "A {actor}"}], "edges": []} as drawn.`

	spec, _, ok := Extract(text)

	require.True(t, ok)
	assert.Equal(t, KindSequence, spec.Kind)
	require.Len(t, spec.Elements, 1)
	// Braces inside JSON strings must not confuse the scanner.
	assert.Equal(t, "A {actor}", spec.Elements[0].Label)
}

// TestExtract_NoJSON verifies degradation when the model answers in prose.
func TestExtract_NoJSON(t *testing.T) {
	spec, narrative, ok := Extract("A flowchart with three boxes connected by arrows.")

	assert.False(t, ok)
	assert.True(t, spec.IsEmpty())
	assert.Equal(t, KindFlowchart, spec.Kind)
	assert.Contains(t, narrative, "three boxes")
}

// TestExtract_MalformedJSON verifies degradation on broken JSON.
func TestExtract_MalformedJSON(t *testing.T) {
	spec, _, ok := Extract("```json\n{\"diagram_type\": \"flowchart\", \"elements\": [\n```")

	assert.False(t, ok)
	assert.True(t, spec.IsEmpty())
}

// TestExtract_SchemaMismatch verifies a JSON object that is not a diagram
// description is rejected rather than half-decoded.
func TestExtract_SchemaMismatch(t *testing.T) {
	_, _, ok := Extract(`{"elements": [{"label": "missing required id"}]}`)
	assert.False(t, ok)
}

// TestParseSpec_NormalizesUnknownValues verifies unknown enums clamp to
// their defaults instead of leaking through.
func TestParseSpec_NormalizesUnknownValues(t *testing.T) {
	spec, err := ParseSpec(`{
		"diagram_type": "mindmap",
		"orientation": "diagonal",
		"elements": [
			{"id": "a", "type": "cloud"},
			{"id": "", "label": "dropped"}
		],
		"edges": []
	}`)
	require.NoError(t, err)

	assert.Equal(t, KindFlowchart, spec.Kind)
	assert.Equal(t, OrientTD, spec.Orientation)
	require.Len(t, spec.Elements, 1)
	assert.Equal(t, TypeOther, spec.Elements[0].Type)
}

// TestFirstBalancedObject verifies the brace scanner handles escapes.
func TestFirstBalancedObject(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{"simple", `before {"a": 1} after`, `{"a": 1}`},
		{"nested", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{"brace in string", `{"a": "}"}`, `{"a": "}"}`},
		{"escaped quote", `{"a": "say \"}\" now"}`, `{"a": "say \"}\" now"}`},
		{"unbalanced", `{"a": 1`, ""},
		{"no object", `plain text`, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, firstBalancedObject(tc.text))
		})
	}
}
