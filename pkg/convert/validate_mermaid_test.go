package convert

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMermaidValidator_Pass verifies a compiling diagram is accepted.
func TestMermaidValidator_Pass(t *testing.T) {
	v := NewMermaidValidator(passingCompiler())

	out := v.Validate(context.Background(), "flowchart TD\n  a --> b")

	assert.True(t, out.Valid)
	assert.False(t, out.Skipped)
	assert.Equal(t, "flowchart TD\n  a --> b", out.NormalizedCode)
}

// TestMermaidValidator_Fail verifies compiler rejections surface as issues.
func TestMermaidValidator_Fail(t *testing.T) {
	v := NewMermaidValidator(failingCompiler("Parse error on line 2"))

	out := v.Validate(context.Background(), "flowchart TD\n  a --> ")

	assert.False(t, out.Valid)
	require.Len(t, out.Issues, 1)
	assert.Contains(t, out.Issues[0], "Parse error on line 2")
}

// TestMermaidValidator_Unavailable verifies the skip path when mmdc is not
// installed: accepted, flagged, and explained.
func TestMermaidValidator_Unavailable(t *testing.T) {
	v := NewMermaidValidator(&fakeCompiler{available: false})

	out := v.Validate(context.Background(), "flowchart TD\n  a --> b")

	assert.True(t, out.Valid)
	assert.True(t, out.Skipped)
	require.Len(t, out.Issues, 1)
	assert.Contains(t, out.Issues[0], "mmdc is not installed")
}

// TestMermaidValidator_Empty verifies empty input never reaches the compiler.
func TestMermaidValidator_Empty(t *testing.T) {
	compiler := passingCompiler()
	v := NewMermaidValidator(compiler)

	out := v.Validate(context.Background(), "  \n")

	assert.False(t, out.Valid)
	assert.Equal(t, []string{emptyCodeIssue}, out.Issues)
	assert.Zero(t, compiler.calls)
}

// TestNewMermaidCompiler_MissingBinary verifies probing for a nonexistent
// binary yields an unavailable compiler rather than an error.
func TestNewMermaidCompiler_MissingBinary(t *testing.T) {
	c := NewMermaidCompiler("definitely-not-a-real-binary-name", time.Second)

	assert.False(t, c.Available())
	err := c.Compile(context.Background(), "flowchart TD\n  a --> b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}

// TestTruncate verifies long compiler output is bounded.
func TestTruncate(t *testing.T) {
	long := make([]byte, 3000)
	for i := range long {
		long[i] = 'x'
	}

	out := truncate(string(long), maxStderrLen)
	assert.Len(t, out, maxStderrLen+len("... (truncated)"))

	assert.Equal(t, "short", truncate("  short  ", maxStderrLen))
}
