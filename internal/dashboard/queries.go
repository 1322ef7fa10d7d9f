package dashboard

import (
	"time"

	"github.com/adrianrdguez/projects-buddy/internal/graph"
	"github.com/adrianrdguez/projects-buddy/internal/models"
	"gorm.io/gorm"
)

// ProjectRow is the list-view projection of a project.
type ProjectRow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	TechStack   string    `json:"techStack"`
	TaskCount   int64     `json:"taskCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskView is the API projection of a task. Status is the derived value;
// Dependencies lists blocker task IDs.
type TaskView struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"projectId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	EstimatedTime string     `json:"estimatedTime"`
	Progress      *int       `json:"progress,omitempty"`
	Dependencies  []string   `json:"dependencies"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// toProjectRow converts a model to its API projection.
func toProjectRow(p models.Project, taskCount int64) ProjectRow {
	return ProjectRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		TechStack:   p.TechStack,
		TaskCount:   taskCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// projectRows returns all projects with their task counts, newest first.
func projectRows(db *gorm.DB) ([]ProjectRow, error) {
	var projects []models.Project
	if err := db.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	rows := make([]ProjectRow, len(projects))
	for i, p := range projects {
		var count int64
		if err := db.Model(&models.Task{}).Where("project_id = ?", p.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		rows[i] = toProjectRow(p, count)
	}
	return rows, nil
}

// taskViews derives display statuses and flattens dependency edges.
func taskViews(tasks []models.Task) []TaskView {
	derived := graph.DeriveAll(tasks)
	views := make([]TaskView, len(derived))
	for i, t := range derived {
		deps := make([]string, len(t.Deps))
		for j, d := range t.Deps {
			deps[j] = d.DependsOn
		}
		views[i] = TaskView{
			ID:            t.ID,
			ProjectID:     t.ProjectID,
			Title:         t.Title,
			Description:   t.Description,
			Status:        t.Status,
			Priority:      t.Priority,
			EstimatedTime: t.EstimatedTime,
			Progress:      t.Progress,
			Dependencies:  deps,
			CreatedAt:     t.CreatedAt,
			CompletedAt:   t.CompletedAt,
		}
	}
	return views
}
