package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/adrianrdguez/projects-buddy/internal/graph"
	"github.com/adrianrdguez/projects-buddy/internal/models"
	"gorm.io/gorm"
)

// TaskTransitions maps each authoritative task status to its valid next
// statuses. in_progress → ready is the executor failure revert. "blocked"
// never appears here: it is derived at read time, not stored.
var TaskTransitions = map[string][]string{
	graph.StatusReady:      {graph.StatusInProgress},
	graph.StatusInProgress: {graph.StatusCompleted, graph.StatusReady},
	graph.StatusCompleted:  {graph.StatusReady},
}

// GetTask retrieves a task by ID, preloading its dependencies.
func GetTask(db *gorm.DB, id string) (*models.Task, error) {
	var task models.Task
	if err := db.Preload("Deps").Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: task not found: %s", id)
		}
		return nil, fmt.Errorf("store: get task %s: %w", id, err)
	}
	return &task, nil
}

// LoadTasks returns a project's tasks with dependencies preloaded, in
// creation order. Statuses are the stored authoritative values; callers
// pass the result through graph.DeriveAll before display.
func LoadTasks(db *gorm.DB, projectID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := db.Preload("Deps").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("store: load tasks for %s: %w", projectID, err)
	}
	return tasks, nil
}

// UpdateTask modifies task fields. Status changes are validated against
// TaskTransitions and completion stamps CompletedAt.
func UpdateTask(db *gorm.DB, id string, updates map[string]interface{}) error {
	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("store: task not found: %s", id)
		}
		return fmt.Errorf("store: get task %s for update: %w", id, err)
	}

	if newStatus, ok := updates["status"].(string); ok && newStatus != task.Status {
		if newStatus == graph.StatusBlocked {
			return fmt.Errorf("store: blocked is derived, not stored")
		}
		if !transitionAllowed(TaskTransitions, task.Status, newStatus) {
			valid := TaskTransitions[task.Status]
			return fmt.Errorf("store: invalid task transition from %q to %q; valid: %v", task.Status, newStatus, valid)
		}
		if newStatus == graph.StatusCompleted {
			updates["completed_at"] = time.Now()
		}
	}

	if err := db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("store: update task %s: %w", id, err)
	}
	return nil
}

// SaveTasks replaces a project's task set with the given batch inside a
// transaction. It returns the batch either way: on persistence failure the
// caller keeps working from the in-memory list.
func SaveTasks(db *gorm.DB, projectID string, tasks []models.Task) ([]models.Task, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", projectID).
			Pluck("id", &existing).Error; err != nil {
			return fmt.Errorf("list existing: %w", err)
		}
		if len(existing) > 0 {
			if err := tx.Where("task_id IN ?", existing).Delete(&models.TaskDep{}).Error; err != nil {
				return fmt.Errorf("clear deps: %w", err)
			}
			if err := tx.Where("project_id = ?", projectID).Delete(&models.Task{}).Error; err != nil {
				return fmt.Errorf("clear tasks: %w", err)
			}
		}
		if len(tasks) == 0 {
			return nil
		}
		for i := range tasks {
			tasks[i].ProjectID = projectID
		}
		if err := tx.Create(&tasks).Error; err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return tasks, fmt.Errorf("store: save tasks for %s: %w", projectID, err)
	}
	return tasks, nil
}
