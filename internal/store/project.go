// Package store provides project and task lifecycle operations on top of
// gorm. It persists only authoritative task statuses; the derived blocked
// state lives in the graph package and is never written back.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/adrianrdguez/projects-buddy/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProjectOpts holds parameters for creating a new project.
type CreateProjectOpts struct {
	Name        string
	Description string
	TechStack   string // JSON-encoded list, stored as-is
	ProjectPath string
}

// ProjectFilters holds optional filters for listing projects.
type ProjectFilters struct {
	Status string
}

// ProjectTransitions maps each project status to its valid next statuses.
var ProjectTransitions = map[string][]string{
	"active":    {"completed", "archived"},
	"completed": {"active", "archived"},
	"archived":  {"active"},
}

// CreateProject creates a project with a generated UUID.
func CreateProject(db *gorm.DB, opts CreateProjectOpts) (*models.Project, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("store: project name is required")
	}

	project := models.Project{
		ID:          uuid.NewString(),
		Name:        opts.Name,
		Description: opts.Description,
		Status:      "active",
		TechStack:   opts.TechStack,
		ProjectPath: opts.ProjectPath,
	}

	if err := db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("store: create project: %w", err)
	}
	return &project, nil
}

// GetProject retrieves a project by ID, preloading its tasks and their deps.
func GetProject(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	if err := db.Preload("Tasks.Deps").Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: project not found: %s", id)
		}
		return nil, fmt.Errorf("store: get project %s: %w", id, err)
	}
	return &project, nil
}

// ListProjects returns projects matching the filters, newest first.
func ListProjects(db *gorm.DB, filters ProjectFilters) ([]models.Project, error) {
	q := db.Model(&models.Project{})
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}

	var projects []models.Project
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	return projects, nil
}

// UpdateProject modifies project fields. Status changes are validated
// against ProjectTransitions; archiving stamps ArchivedAt.
func UpdateProject(db *gorm.DB, id string, updates map[string]interface{}) error {
	var project models.Project
	if err := db.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("store: project not found: %s", id)
		}
		return fmt.Errorf("store: get project %s for update: %w", id, err)
	}

	if newStatus, ok := updates["status"].(string); ok && newStatus != project.Status {
		if !transitionAllowed(ProjectTransitions, project.Status, newStatus) {
			return fmt.Errorf("store: invalid project transition from %q to %q", project.Status, newStatus)
		}
		if newStatus == "archived" {
			updates["archived_at"] = time.Now()
		}
	}

	if err := db.Model(&models.Project{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("store: update project %s: %w", id, err)
	}
	return nil
}

// DeleteProject removes a project and all of its tasks and dependency edges
// inside a transaction.
func DeleteProject(db *gorm.DB, id string) error {
	if _, err := GetProject(db, id); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []string
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskDep{}).Error; err != nil {
				return fmt.Errorf("clear deps: %w", err)
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return fmt.Errorf("clear tasks: %w", err)
			}
		}
		if err := tx.Where("id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: delete project %s: %w", id, err)
	}
	return nil
}

// ArchiveSweep archives completed projects that have been idle longer than
// maxAge. It returns the number of projects archived.
func ArchiveSweep(db *gorm.DB, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	result := db.Model(&models.Project{}).
		Where("status = ? AND updated_at < ?", "completed", cutoff).
		Updates(map[string]interface{}{
			"status":      "archived",
			"archived_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("store: archive sweep: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// transitionAllowed checks a status transition against a transition table.
func transitionAllowed(table map[string][]string, from, to string) bool {
	for _, v := range table[from] {
		if v == to {
			return true
		}
	}
	return false
}
