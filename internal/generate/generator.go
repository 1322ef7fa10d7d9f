package generate

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/adrianrdguez/projects-buddy/internal/models"
)

// Generator produces a candidate task list from free-text input. The output
// is untrusted and must pass through ParseOutput/Normalize.
type Generator interface {
	Generate(ctx context.Context, input string) (*Output, error)
}

// ClaudeGenerator shells out to the claude CLI in non-interactive mode and
// expects a single JSON object on stdout.
type ClaudeGenerator struct {
	Binary  string // defaults to "claude"
	Timeout time.Duration
}

// Generate runs the generator subprocess and parses its output.
func (g ClaudeGenerator) Generate(ctx context.Context, input string) (*Output, error) {
	binary := g.Binary
	if binary == "" {
		binary = "claude"
	}
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	cmd := BuildCommand(ctx, binary, input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("generate: claude session: %w (stderr: %s)", err, stderr.String())
	}
	return ParseOutput(stdout.Bytes())
}

// BuildCommand constructs the exec.Cmd for the generator subprocess.
// Exported for testing.
func BuildCommand(ctx context.Context, binary, input string) *exec.Cmd {
	return exec.CommandContext(ctx, binary,
		"-p", renderPrompt(input),
		"--output-format", "json",
	)
}

// FromInput is the total entry point used by handlers: it asks the
// generator for tasks and falls back to the template catalog when the
// generator errors or returns an unusable payload. The returned project
// name is empty when the generator did not suggest one. It never fails.
func FromInput(ctx context.Context, gen Generator, input string, opts NormalizeOpts) (string, []models.Task) {
	if gen == nil {
		gen = TemplateGenerator{}
	}

	out, err := gen.Generate(ctx, input)
	if err != nil {
		log.Printf("generate: falling back to templates: %v", err)
		out = &Output{Tasks: TemplateStubs(input)}
	}

	tasks, err := Normalize(out.Tasks, opts)
	if err != nil {
		// Template stubs are never empty, so this second pass cannot fail.
		log.Printf("generate: normalize failed, using templates: %v", err)
		tasks, _ = Normalize(TemplateStubs(input), opts)
		return "", tasks
	}
	return out.ProjectName, tasks
}
