// Package graph derives task readiness from the dependency DAG.
//
// Derivation is a single pass: a dependency is satisfied only by the
// blocker's authoritative "completed" status, never by its derived status,
// so no fixpoint iteration is needed and cycles cannot loop; members of a
// cycle simply stay blocked until broken.
package graph

import "github.com/adrianrdguez/projects-buddy/internal/models"

// Task status values. Ready and blocked are derived; in_progress and
// completed are authoritative once set by execution.
const (
	StatusReady      = "ready"
	StatusBlocked    = "blocked"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ByID indexes tasks by ID.
func ByID(tasks []models.Task) map[string]models.Task {
	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return byID
}

// DeriveStatus computes a task's displayed status. Authoritative statuses
// pass through; otherwise the task is blocked iff any dependency is missing
// or not completed. A dependency ID that resolves to no known task counts
// as unsatisfied rather than an error.
func DeriveStatus(t models.Task, byID map[string]models.Task) string {
	switch t.Status {
	case StatusInProgress, StatusCompleted:
		return t.Status
	}
	for _, dep := range t.Deps {
		blocker, ok := byID[dep.DependsOn]
		if !ok || blocker.Status != StatusCompleted {
			return StatusBlocked
		}
	}
	return StatusReady
}

// DeriveAll returns a copy of tasks with derived statuses applied,
// preserving input order. Running it twice yields identical results.
func DeriveAll(tasks []models.Task) []models.Task {
	byID := ByID(tasks)
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		t.Status = DeriveStatus(t, byID)
		out[i] = t
	}
	return out
}

// Ready returns tasks whose derived status is ready, in stable input order.
// The first element is the execution sequencer's target.
func Ready(tasks []models.Task) []models.Task {
	byID := ByID(tasks)
	var ready []models.Task
	for _, t := range tasks {
		if DeriveStatus(t, byID) == StatusReady {
			ready = append(ready, t)
		}
	}
	return ready
}

// BranchStatus aggregates a task group's derived statuses into one value:
// completed if all are completed, else in_progress if any is, else blocked
// if any is, else ready. Empty groups are ready.
func BranchStatus(tasks []models.Task) string {
	if len(tasks) == 0 {
		return StatusReady
	}
	completed, inProgress, blocked := 0, 0, 0
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			completed++
		case StatusInProgress:
			inProgress++
		case StatusBlocked:
			blocked++
		}
	}
	switch {
	case completed == len(tasks):
		return StatusCompleted
	case inProgress > 0:
		return StatusInProgress
	case blocked > 0:
		return StatusBlocked
	default:
		return StatusReady
	}
}
