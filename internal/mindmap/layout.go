package mindmap

import "math"

// Layout tuning constants. Task radius grows with sibling count so that
// adjacent task cards on the ring never overlap.
const (
	branchRadiusFraction = 0.3
	minTaskRadius        = 150.0
	taskRadiusPerSibling = 35.0
	adaptiveBaseHeight   = 400.0
	perChildHeight       = 80.0
)

// Layout assigns every card a center position using a radial scheme: the
// root at the canvas center, branches on a ring around it, each branch's
// tasks on a ring around the branch. It is deterministic for a given
// hierarchy and canvas size. The returned Size is the effective canvas,
// which grows vertically when some branch has many children.
func Layout(data *MindMapData, canvas Size) Size {
	canvas = adaptCanvas(data, canvas)
	centerX := canvas.Width / 2
	centerY := canvas.Height / 2

	root, ok := data.Cards[data.RootID]
	if !ok {
		return canvas
	}
	root.Position = Position{X: centerX, Y: centerY}

	branchRadius := math.Min(canvas.Width, canvas.Height) * branchRadiusFraction
	n := len(root.Children)
	for i, branchID := range root.Children {
		branch, ok := data.Cards[branchID]
		if !ok {
			continue
		}
		angle := float64(i)*2*math.Pi/float64(n) - math.Pi/2
		branch.Position = Position{
			X: centerX + math.Cos(angle)*branchRadius,
			Y: centerY + math.Sin(angle)*branchRadius,
		}
		layoutTasks(data, branch)
	}
	return canvas
}

// layoutTasks places a branch's tasks evenly on a ring around it.
func layoutTasks(data *MindMapData, branch *Card) {
	count := len(branch.Children)
	if count == 0 {
		return
	}
	radius := math.Max(minTaskRadius, taskRadiusPerSibling*float64(count))
	for i, taskID := range branch.Children {
		task, ok := data.Cards[taskID]
		if !ok {
			continue
		}
		angle := float64(i) * 2 * math.Pi / float64(count)
		task.Position = Position{
			X: branch.Position.X + math.Cos(angle)*radius,
			Y: branch.Position.Y + math.Sin(angle)*radius,
		}
	}
}

// adaptCanvas grows the canvas height when any branch has enough children
// that the default height would cause rings to collide.
func adaptCanvas(data *MindMapData, canvas Size) Size {
	maxChildren := 0
	if root, ok := data.Cards[data.RootID]; ok {
		for _, branchID := range root.Children {
			if branch, ok := data.Cards[branchID]; ok && len(branch.Children) > maxChildren {
				maxChildren = len(branch.Children)
			}
		}
	}
	needed := adaptiveBaseHeight + float64(maxChildren)*perChildHeight
	if canvas.Height < needed {
		canvas.Height = needed
	}
	return canvas
}
