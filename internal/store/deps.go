package store

import (
	"fmt"
	"strings"

	"github.com/adrianrdguez/projects-buddy/internal/graph"
	"github.com/adrianrdguez/projects-buddy/internal/models"
	"gorm.io/gorm"
)

// AddDep creates a blocking dependency: taskID cannot start until dependsOn
// is completed. It rejects self-dependencies, unknown tasks, cross-project
// edges, and edges that would close a cycle.
func AddDep(db *gorm.DB, taskID, dependsOn string) error {
	if taskID == dependsOn {
		return fmt.Errorf("store: cannot add self-dependency on %s", taskID)
	}

	task, err := GetTask(db, taskID)
	if err != nil {
		return err
	}
	blocker, err := GetTask(db, dependsOn)
	if err != nil {
		return err
	}
	if task.ProjectID != blocker.ProjectID {
		return fmt.Errorf("store: tasks %s and %s belong to different projects", taskID, dependsOn)
	}

	deps, err := projectDeps(db, task.ProjectID)
	if err != nil {
		return err
	}
	if graph.WouldCycle(deps, taskID, dependsOn) {
		withEdge := append(deps, models.TaskDep{TaskID: taskID, DependsOn: dependsOn})
		path := graph.DetectCycle(withEdge)
		return fmt.Errorf("store: dependency %s on %s would create a cycle: %s",
			taskID, dependsOn, strings.Join(path, " -> "))
	}

	dep := models.TaskDep{TaskID: taskID, DependsOn: dependsOn}
	if err := db.Create(&dep).Error; err != nil {
		return fmt.Errorf("store: create dependency %s on %s: %w", taskID, dependsOn, err)
	}
	return nil
}

// RemoveDep deletes a dependency relationship.
func RemoveDep(db *gorm.DB, taskID, dependsOn string) error {
	result := db.Where("task_id = ? AND depends_on = ?", taskID, dependsOn).Delete(&models.TaskDep{})
	if result.Error != nil {
		return fmt.Errorf("store: remove dependency %s on %s: %w", taskID, dependsOn, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("store: dependency %s on %s not found", taskID, dependsOn)
	}
	return nil
}

// ListDeps returns what blocks a task and what it blocks.
func ListDeps(db *gorm.DB, taskID string) (blockers []models.TaskDep, dependents []models.TaskDep, err error) {
	if err := db.Where("task_id = ?", taskID).Find(&blockers).Error; err != nil {
		return nil, nil, fmt.Errorf("store: list blockers for %s: %w", taskID, err)
	}
	if err := db.Where("depends_on = ?", taskID).Find(&dependents).Error; err != nil {
		return nil, nil, fmt.Errorf("store: list dependents for %s: %w", taskID, err)
	}
	return blockers, dependents, nil
}

// projectDeps loads every dependency edge within a project.
func projectDeps(db *gorm.DB, projectID string) ([]models.TaskDep, error) {
	var deps []models.TaskDep
	if err := db.
		Joins("JOIN tasks ON tasks.id = task_deps.task_id").
		Where("tasks.project_id = ?", projectID).
		Find(&deps).Error; err != nil {
		return nil, fmt.Errorf("store: load deps for project %s: %w", projectID, err)
	}
	return deps, nil
}
