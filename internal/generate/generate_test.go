package generate

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/adrianrdguez/projects-buddy/internal/graph"
)

func TestParseOutput_Valid(t *testing.T) {
	payload := `{"projectName":"Shop","tasks":[{"title":"X","dependencies":[0]}]}`
	out, err := ParseOutput([]byte(payload))
	if err != nil {
		t.Fatalf("ParseOutput: %v", err)
	}
	if out.ProjectName != "Shop" {
		t.Errorf("ProjectName = %q, want Shop", out.ProjectName)
	}
	if len(out.Tasks) != 1 || out.Tasks[0].Title != "X" {
		t.Errorf("Tasks = %+v, want one task titled X", out.Tasks)
	}
}

func TestParseOutput_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", "here are your tasks!"},
		{"tasks not a list", `{"tasks":"do stuff"}`},
		{"missing tasks", `{"projectName":"X"}`},
		{"empty tasks", `{"tasks":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseOutput([]byte(tc.payload)); err == nil {
				t.Errorf("ParseOutput(%q): expected error", tc.payload)
			}
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	if _, err := Normalize(nil, NormalizeOpts{}); err == nil {
		t.Fatal("expected error for empty batch")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	tasks, err := Normalize([]RawTaskStub{
		{Title: "  ", Priority: "URGENT", EstimatedTime: ""},
	}, NormalizeOpts{ProjectID: "p1"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	task := tasks[0]
	if task.ID == "" {
		t.Error("expected generated ID")
	}
	if task.ProjectID != "p1" {
		t.Errorf("ProjectID = %q, want p1", task.ProjectID)
	}
	if task.Title != "Task 1" {
		t.Errorf("Title = %q, want Task 1", task.Title)
	}
	if task.Priority != "medium" {
		t.Errorf("Priority = %q, want medium (coerced)", task.Priority)
	}
	if task.EstimatedTime != DefaultFallbackTime {
		t.Errorf("EstimatedTime = %q, want %q", task.EstimatedTime, DefaultFallbackTime)
	}
	if task.Status != graph.StatusReady {
		t.Errorf("Status = %q, want ready", task.Status)
	}
}

func TestNormalize_PriorityCoercion(t *testing.T) {
	cases := map[string]string{
		"low": "low", "High": "high", " MEDIUM ": "medium",
		"critical": "medium", "": "medium",
	}
	for in, want := range cases {
		tasks, err := Normalize([]RawTaskStub{{Title: "T", Priority: in}}, NormalizeOpts{})
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		if tasks[0].Priority != want {
			t.Errorf("priority %q coerced to %q, want %q", in, tasks[0].Priority, want)
		}
	}
}

func TestNormalize_DependencyResolution(t *testing.T) {
	tasks, err := Normalize([]RawTaskStub{
		{Title: "A"},
		{Title: "B", Dependencies: []int{0}},
		{Title: "C", Dependencies: []int{0, 1}},
	}, NormalizeOpts{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if len(tasks[1].Deps) != 1 || tasks[1].Deps[0].DependsOn != tasks[0].ID {
		t.Errorf("B deps = %+v, want [A]", tasks[1].Deps)
	}
	if len(tasks[2].Deps) != 2 {
		t.Fatalf("C deps = %d, want 2", len(tasks[2].Deps))
	}
	if tasks[2].Deps[0].DependsOn != tasks[0].ID || tasks[2].Deps[1].DependsOn != tasks[1].ID {
		t.Errorf("C deps = %+v, want [A B]", tasks[2].Deps)
	}
}

func TestNormalize_SelfDependencyDropped(t *testing.T) {
	tasks, err := Normalize([]RawTaskStub{
		{Title: "A", Dependencies: []int{0}},
	}, NormalizeOpts{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	for _, dep := range tasks[0].Deps {
		if dep.DependsOn == tasks[0].ID {
			t.Error("task depends on its own id")
		}
	}
	if len(tasks[0].Deps) != 0 {
		t.Errorf("deps = %+v, want none", tasks[0].Deps)
	}
}

func TestNormalize_OutOfRangeDependencyDropped(t *testing.T) {
	// Index 5 with batch size 1: the dependency is dropped, never substituted.
	tasks, err := Normalize([]RawTaskStub{
		{Title: "X", Dependencies: []int{5, -1}},
	}, NormalizeOpts{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(tasks[0].Deps) != 0 {
		t.Errorf("deps = %+v, want none", tasks[0].Deps)
	}
}

func TestNormalize_DuplicateDependencyDropped(t *testing.T) {
	tasks, err := Normalize([]RawTaskStub{
		{Title: "A"},
		{Title: "B", Dependencies: []int{0, 0}},
	}, NormalizeOpts{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(tasks[1].Deps) != 1 {
		t.Errorf("deps = %+v, want exactly one", tasks[1].Deps)
	}
}

func TestNormalize_UniqueIDs(t *testing.T) {
	stubs := make([]RawTaskStub, 20)
	for i := range stubs {
		stubs[i] = RawTaskStub{Title: fmt.Sprintf("T%d", i)}
	}
	existing := map[string]bool{"already-taken": true}
	tasks, err := Normalize(stubs, NormalizeOpts{ExistingIDs: existing})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	seen := make(map[string]bool)
	for _, task := range tasks {
		if seen[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		if existing[task.ID] {
			t.Fatalf("minted id %s collides with an existing one", task.ID)
		}
		seen[task.ID] = true
	}
	// Earlier batch ids must land in the taken set as they are minted.
	if id := newTaskID(seen); seen[id] {
		t.Errorf("newTaskID returned a taken id %s", id)
	}
}

func TestTemplateStubs_Catalogs(t *testing.T) {
	cases := []struct {
		input     string
		wantFirst string
		wantLen   int
	}{
		{"add login with social auth", "Setup Authentication Provider", 5},
		{"build a REST API", "Design API Architecture", 4},
		{"refresh the UI design", "Create Design System", 4},
		{"make something cool", "Project Planning", 4},
	}
	for _, tc := range cases {
		stubs := TemplateStubs(tc.input)
		if len(stubs) != tc.wantLen {
			t.Errorf("TemplateStubs(%q) len = %d, want %d", tc.input, len(stubs), tc.wantLen)
		}
		if stubs[0].Title != tc.wantFirst {
			t.Errorf("TemplateStubs(%q)[0] = %q, want %q", tc.input, stubs[0].Title, tc.wantFirst)
		}
	}
}

func TestTemplateStubs_DependencyIndicesInRange(t *testing.T) {
	for _, input := range []string{"auth", "api", "ui", "anything else"} {
		stubs := TemplateStubs(input)
		for i, stub := range stubs {
			for _, dep := range stub.Dependencies {
				if dep < 0 || dep >= len(stubs) || dep == i {
					t.Errorf("catalog %q task %d has invalid dep index %d", input, i, dep)
				}
			}
		}
	}
}

// failingGenerator always errors, forcing the template fallback.
type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string) (*Output, error) {
	return nil, fmt.Errorf("generator unavailable")
}

func TestFromInput_FallsBackToTemplates(t *testing.T) {
	name, tasks := FromInput(context.Background(), failingGenerator{}, "build a REST API", NormalizeOpts{ProjectID: "p1"})
	if name != "" {
		t.Errorf("project name = %q, want empty on fallback", name)
	}
	if len(tasks) != 4 {
		t.Fatalf("len(tasks) = %d, want 4 from API catalog", len(tasks))
	}
	if tasks[0].Title != "Design API Architecture" {
		t.Errorf("tasks[0] = %q, want API catalog head", tasks[0].Title)
	}
}

// cannedGenerator returns a fixed output.
type cannedGenerator struct{ out *Output }

func (g cannedGenerator) Generate(context.Context, string) (*Output, error) {
	return g.out, nil
}

func TestFromInput_UsesGeneratorOutput(t *testing.T) {
	gen := cannedGenerator{out: &Output{
		ProjectName: "Todo App",
		Tasks: []RawTaskStub{
			{Title: "Scaffold", Priority: "high"},
			{Title: "Wire storage", Dependencies: []int{0}},
		},
	}}
	name, tasks := FromInput(context.Background(), gen, "todo app", NormalizeOpts{ProjectID: "p1"})
	if name != "Todo App" {
		t.Errorf("project name = %q, want Todo App", name)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	if tasks[1].Deps[0].DependsOn != tasks[0].ID {
		t.Errorf("dependency not resolved to generated id")
	}
}

func TestFromInput_NilGeneratorUsesTemplates(t *testing.T) {
	_, tasks := FromInput(context.Background(), nil, "login page", NormalizeOpts{})
	if len(tasks) != 5 {
		t.Fatalf("len(tasks) = %d, want 5 from auth catalog", len(tasks))
	}
}

func TestFromInput_EmptyGeneratorOutputFallsBack(t *testing.T) {
	gen := cannedGenerator{out: &Output{Tasks: []RawTaskStub{}}}
	_, tasks := FromInput(context.Background(), gen, "whatever", NormalizeOpts{})
	if len(tasks) == 0 {
		t.Fatal("expected template fallback tasks")
	}
}

func TestBuildCommand(t *testing.T) {
	cmd := BuildCommand(context.Background(), "claude", "make an app")
	if len(cmd.Args) != 5 {
		t.Fatalf("args = %v, want 5 elements", cmd.Args)
	}
	if cmd.Args[1] != "-p" {
		t.Errorf("args[1] = %q, want -p", cmd.Args[1])
	}
	if !strings.Contains(cmd.Args[2], "make an app") {
		t.Errorf("prompt does not embed the input")
	}
	if cmd.Args[3] != "--output-format" || cmd.Args[4] != "json" {
		t.Errorf("args tail = %v, want --output-format json", cmd.Args[3:])
	}
}
