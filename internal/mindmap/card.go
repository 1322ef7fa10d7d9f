// Package mindmap projects a project's task list into a positioned
// root→branch→task card tree with hierarchy and dependency connections.
package mindmap

// Position is a card center point on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a card or canvas extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Card types.
const (
	TypeRoot   = "root"
	TypeBranch = "branch"
	TypeTask   = "task"
)

// Connection types.
const (
	ConnHierarchy  = "hierarchy"
	ConnDependency = "dependency"
)

// Card is the presentation-layer projection of the project (root), a
// synthesized phase (branch), or a task. Parent/child pointers form a tree;
// the task dependency DAG is overlaid via dependency connections.
type Card struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Position      Position `json:"position"`
	Size          Size     `json:"size"`
	ParentID      string   `json:"parentId,omitempty"`
	Children      []string `json:"children"`
	Status        string   `json:"status"`
	Priority      string   `json:"priority,omitempty"`
	EstimatedTime string   `json:"estimatedTime,omitempty"`
	Progress      *int     `json:"progress,omitempty"`
	Dependencies  []string `json:"dependencies,omitempty"`
	Visible       bool     `json:"visible"`
}

// Connection is an edge between two cards. Hierarchy connections mirror the
// card tree; dependency connections mirror task prerequisites and may cross
// branches.
type Connection struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// ID returns the connection's stable identifier, used by the execution
// sequencer's animated/processing sets.
func (c Connection) ID() string {
	return c.From + "->" + c.To
}

// MindMapData is the full snapshot the renderer consumes.
type MindMapData struct {
	Cards       map[string]*Card `json:"cards"`
	Connections []Connection     `json:"connections"`
	RootID      string           `json:"rootId"`
	ProjectName string           `json:"projectName"`
}

// Card default sizes.
var (
	rootSize   = Size{Width: 300, Height: 200}
	branchSize = Size{Width: 200, Height: 120}
	taskSize   = Size{Width: 180, Height: 100}
)
