package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStripFences verifies markdown fence removal.
func TestStripFences(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"no fence", "flowchart TD\n  a --> b", "flowchart TD\n  a --> b"},
		{"plain fence", "```\nflowchart TD\n```", "flowchart TD"},
		{"tagged fence", "```mermaid\nflowchart TD\n  a --> b\n```", "flowchart TD\n  a --> b"},
		{"surrounding whitespace", "  \n```xml\n<a/>\n```\n  ", "<a/>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stripFences(tc.in))
		})
	}
}

// TestCleanDrawio verifies entity unescaping and span trimming.
func TestCleanDrawio(t *testing.T) {
	assert.Equal(t,
		`<mxfile><diagram/></mxfile>`,
		cleanDrawio("Sure!\n\n<mxfile><diagram/></mxfile>\n\nEnjoy."))

	assert.Equal(t,
		`<mxfile><diagram a="1"/></mxfile>`,
		cleanDrawio(`&lt;mxfile&gt;&lt;diagram a=&#34;1&#34;/&gt;&lt;/mxfile&gt;`))

	// Nothing recognizable passes through trimmed.
	assert.Equal(t, "no xml here", cleanDrawio("  no xml here  "))
}

// TestCleanPlantUML verifies span trimming.
func TestCleanPlantUML(t *testing.T) {
	assert.Equal(t,
		"@startuml\nstart\nstop\n@enduml",
		cleanPlantUML("Here you go:\n\n@startuml\nstart\nstop\n@enduml\n\nAnything else?"))

	assert.Equal(t,
		"@startuml\nA -> B\n@enduml",
		cleanPlantUML("```plantuml\n@startuml\nA -> B\n@enduml\n```"))
}
