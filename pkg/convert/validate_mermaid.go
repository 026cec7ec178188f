package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// MermaidCompiler is the capability the mermaid validator depends on:
// compiling Mermaid source with the mermaid-cli (mmdc) toolchain.
type MermaidCompiler interface {
	// Available reports whether the compiler can run at all.
	Available() bool
	// Compile renders the source and returns nil when it compiles.
	Compile(ctx context.Context, code string) error
}

const (
	defaultMmdcBin     = "mmdc"
	defaultMmdcTimeout = 30 * time.Second
	maxStderrLen       = 2000
)

// NewMermaidCompiler probes for the mmdc binary once at construction.
// A missing binary yields a compiler that reports unavailable, which the
// validator turns into a skipped-but-accepted outcome rather than a hard
// dependency on a Node.js toolchain.
func NewMermaidCompiler(bin string, timeout time.Duration) MermaidCompiler {
	if bin == "" {
		bin = defaultMmdcBin
	}
	if timeout <= 0 {
		timeout = defaultMmdcTimeout
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return unavailableCompiler{reason: fmt.Sprintf("%s not found in PATH", bin)}
	}
	return &mmdcCompiler{bin: path, timeout: timeout}
}

type mmdcCompiler struct {
	bin     string
	timeout time.Duration
}

func (c *mmdcCompiler) Available() bool { return true }

func (c *mmdcCompiler) Compile(ctx context.Context, code string) error {
	dir, err := os.MkdirTemp("", "sketchflow-mmdc-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "diagram.mmd")
	out := filepath.Join(dir, "diagram.svg")
	if err := os.WriteFile(in, []byte(code), 0o600); err != nil {
		return fmt.Errorf("write source: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.bin, "-i", in, "-o", out)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("mmdc timed out after %s", c.timeout)
		}
		return fmt.Errorf("mmdc rejected the diagram: %s", truncate(stderr.String(), maxStderrLen))
	}
	return nil
}

type unavailableCompiler struct {
	reason string
}

func (c unavailableCompiler) Available() bool { return false }

func (c unavailableCompiler) Compile(context.Context, string) error {
	return fmt.Errorf("mermaid compiler unavailable: %s", c.reason)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "... (truncated)"
}

// MermaidValidator validates Mermaid source by actually compiling it. When
// no compiler is available the outcome is skipped: the candidate is accepted
// unverified and the skip is surfaced to the caller.
type MermaidValidator struct {
	compiler MermaidCompiler
}

// NewMermaidValidator builds a MermaidValidator on a compiler.
func NewMermaidValidator(compiler MermaidCompiler) *MermaidValidator {
	return &MermaidValidator{compiler: compiler}
}

func (v *MermaidValidator) Validate(ctx context.Context, code string) Outcome {
	if strings.TrimSpace(code) == "" {
		return Outcome{Issues: []string{emptyCodeIssue}}
	}
	if v.compiler == nil || !v.compiler.Available() {
		return Outcome{
			Valid:   true,
			Skipped: true,
			Issues:  []string{"Mermaid validation skipped: mmdc is not installed"},
		}
	}
	if err := v.compiler.Compile(ctx, code); err != nil {
		return Outcome{Issues: []string{err.Error()}}
	}
	return Outcome{Valid: true, NormalizedCode: code}
}
