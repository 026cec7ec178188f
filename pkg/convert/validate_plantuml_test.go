package convert

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlantUMLValidator verifies the structural heuristics.
func TestPlantUMLValidator(t *testing.T) {
	testCases := []struct {
		name   string
		code   string
		valid  bool
		wantIn string
	}{
		{
			"valid sequence",
			"@startuml\nparticipant A\nparticipant B\nA -> B: hello\n@enduml",
			true,
			"",
		},
		{
			"valid activity",
			"@startuml\nstart\n:Check input;\nstop\n@enduml",
			true,
			"",
		},
		{
			"missing start marker",
			"participant A\n@enduml",
			false,
			"must start with @startuml",
		},
		{
			"missing end marker",
			"@startuml\nparticipant A",
			false,
			"must end with @enduml",
		},
		{
			"no recognizable elements",
			"@startuml\nlorem ipsum dolor\n@enduml",
			false,
			"no recognized PlantUML elements",
		},
	}

	v := NewPlantUMLValidator()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := v.Validate(context.Background(), tc.code)

			assert.Equal(t, tc.valid, out.Valid)
			if tc.valid {
				assert.Empty(t, out.Issues)
				return
			}
			require.NotEmpty(t, out.Issues)
			found := false
			for _, issue := range out.Issues {
				if strings.Contains(issue, tc.wantIn) {
					found = true
				}
			}
			assert.True(t, found, "issues %v should mention %q", out.Issues, tc.wantIn)
		})
	}
}

// TestPlantUMLValidator_Empty verifies empty input is reported as such.
func TestPlantUMLValidator_Empty(t *testing.T) {
	out := NewPlantUMLValidator().Validate(context.Background(), "")

	assert.False(t, out.Valid)
	assert.Equal(t, []string{emptyCodeIssue}, out.Issues)
}

// TestPlantUMLValidator_Normalizes verifies surrounding whitespace is
// trimmed in the normalized code.
func TestPlantUMLValidator_Normalizes(t *testing.T) {
	out := NewPlantUMLValidator().Validate(context.Background(), "\n\n@startuml\nstart\nstop\n@enduml\n\n")

	assert.True(t, out.Valid)
	assert.Equal(t, "@startuml\nstart\nstop\n@enduml", out.NormalizedCode)
}
