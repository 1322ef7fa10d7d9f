package generate

import (
	"fmt"
	"strings"

	"github.com/adrianrdguez/projects-buddy/internal/graph"
	"github.com/adrianrdguez/projects-buddy/internal/models"
	"github.com/google/uuid"
)

// DefaultFallbackTime is used for stubs with no estimate when the caller
// configures nothing else.
const DefaultFallbackTime = "1 hour"

// NormalizeOpts holds parameters for normalizing a batch of stubs.
type NormalizeOpts struct {
	ProjectID    string
	FallbackTime string          // estimatedTime for stubs missing one
	ExistingIDs  map[string]bool // ids already taken in the project
}

// Normalize repairs a batch of untrusted stubs into well-formed tasks:
// fresh unique IDs, coerced priorities, non-empty time estimates, and
// dependency indices resolved to the batch's generated IDs. Invalid
// dependency indices (out of range or the stub's own position) are
// dropped: substituting placeholder IDs would create phantom tasks that can
// never complete. Status starts as ready; graph derivation recomputes it.
func Normalize(stubs []RawTaskStub, opts NormalizeOpts) ([]models.Task, error) {
	if len(stubs) == 0 {
		return nil, fmt.Errorf("generate: nothing to normalize")
	}
	if opts.FallbackTime == "" {
		opts.FallbackTime = DefaultFallbackTime
	}

	// Minted ids join the taken set so uniqueness holds within the batch,
	// not just against the project's existing ids.
	taken := make(map[string]bool, len(opts.ExistingIDs)+len(stubs))
	for id := range opts.ExistingIDs {
		taken[id] = true
	}
	ids := make([]string, len(stubs))
	for i := range stubs {
		ids[i] = newTaskID(taken)
		taken[ids[i]] = true
	}

	tasks := make([]models.Task, len(stubs))
	for i, stub := range stubs {
		title := strings.TrimSpace(stub.Title)
		if title == "" {
			title = fmt.Sprintf("Task %d", i+1)
		}
		estimate := strings.TrimSpace(stub.EstimatedTime)
		if estimate == "" {
			estimate = opts.FallbackTime
		}

		task := models.Task{
			ID:            ids[i],
			ProjectID:     opts.ProjectID,
			Title:         title,
			Description:   stub.Description,
			Status:        graph.StatusReady,
			Priority:      coercePriority(stub.Priority),
			EstimatedTime: estimate,
		}

		seen := make(map[int]bool)
		for _, dep := range stub.Dependencies {
			if dep < 0 || dep >= len(stubs) || dep == i || seen[dep] {
				continue
			}
			seen[dep] = true
			task.Deps = append(task.Deps, models.TaskDep{
				TaskID:    task.ID,
				DependsOn: ids[dep],
			})
		}

		tasks[i] = task
	}
	return tasks, nil
}

// coercePriority maps arbitrary generator output onto low/medium/high,
// defaulting to medium.
func coercePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "low":
		return "low"
	case "high":
		return "high"
	default:
		return "medium"
	}
}

// newTaskID returns a UUID not present in taken. UUIDs do not collide in
// practice; the loop satisfies the uniqueness contract anyway.
func newTaskID(taken map[string]bool) string {
	for {
		id := uuid.NewString()
		if !taken[id] {
			return id
		}
	}
}
