package mindmap

import (
	"fmt"

	"github.com/adrianrdguez/projects-buddy/internal/graph"
	"github.com/adrianrdguez/projects-buddy/internal/models"
)

// Build converts a project's tasks into an unpositioned MindMapData.
// Tasks should carry derived statuses (graph.DeriveAll) so branch statuses
// aggregate correctly. Branches start visible, tasks hidden.
func Build(tasks []models.Task, projectName string) *MindMapData {
	data := &MindMapData{
		Cards:       make(map[string]*Card),
		RootID:      "root",
		ProjectName: projectName,
	}

	root := &Card{
		ID:          data.RootID,
		Type:        TypeRoot,
		Title:       projectName,
		Description: fmt.Sprintf("Main project with %d tasks organized in phases", len(tasks)),
		Size:        rootSize,
		Status:      graph.StatusReady,
		Visible:     true,
	}
	data.Cards[root.ID] = root

	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}

	grouped, names := GroupByCategory(tasks)
	for i, name := range names {
		branchID := fmt.Sprintf("branch-%d", i)
		branchTasks := grouped[name]

		branch := &Card{
			ID:          branchID,
			Type:        TypeBranch,
			Title:       name,
			Description: fmt.Sprintf("%d tasks in this phase", len(branchTasks)),
			Size:        branchSize,
			ParentID:    root.ID,
			Status:      graph.BranchStatus(branchTasks),
			Visible:     true,
		}
		data.Cards[branchID] = branch
		root.Children = append(root.Children, branchID)
		data.Connections = append(data.Connections, Connection{
			From: root.ID, To: branchID, Type: ConnHierarchy,
		})

		for _, t := range branchTasks {
			card := &Card{
				ID:            t.ID,
				Type:          TypeTask,
				Title:         t.Title,
				Description:   t.Description,
				Size:          taskSize,
				ParentID:      branchID,
				Status:        t.Status,
				Priority:      t.Priority,
				EstimatedTime: t.EstimatedTime,
				Progress:      t.Progress,
				Visible:       false,
			}
			for _, dep := range t.Deps {
				card.Dependencies = append(card.Dependencies, dep.DependsOn)
			}
			data.Cards[t.ID] = card
			branch.Children = append(branch.Children, t.ID)
			data.Connections = append(data.Connections, Connection{
				From: branchID, To: t.ID, Type: ConnHierarchy,
			})

			// Dependency connections only for resolvable targets; dangling
			// references still affect status but draw nothing.
			for _, dep := range t.Deps {
				if known[dep.DependsOn] {
					data.Connections = append(data.Connections, Connection{
						From: dep.DependsOn, To: t.ID, Type: ConnDependency,
					})
				}
			}
		}
	}

	return data
}

// BranchOf returns the branch card containing the given task card, or nil.
func (d *MindMapData) BranchOf(taskID string) *Card {
	card, ok := d.Cards[taskID]
	if !ok || card.Type != TypeTask {
		return nil
	}
	return d.Cards[card.ParentID]
}

// BranchStats summarizes a branch's direct children.
func (d *MindMapData) BranchStats(branchID string) (taskCount, completed int) {
	branch, ok := d.Cards[branchID]
	if !ok {
		return 0, 0
	}
	for _, id := range branch.Children {
		child, ok := d.Cards[id]
		if !ok {
			continue
		}
		taskCount++
		if child.Status == graph.StatusCompleted {
			completed++
		}
	}
	return taskCount, completed
}
