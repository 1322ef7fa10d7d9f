package mindmap

// ToggleChildren flips the visibility of all direct children of the given
// card as a group: visible if no child currently is, hidden otherwise. When
// hiding, every deeper descendant is forced hidden too; expanding reveals
// direct children only, leaving grandchildren in whatever state they were
// left. The root card itself is never hidden.
func ToggleChildren(data *MindMapData, cardID string) {
	parent, ok := data.Cards[cardID]
	if !ok {
		return
	}

	anyVisible := false
	for _, childID := range parent.Children {
		if child, ok := data.Cards[childID]; ok && child.Visible {
			anyVisible = true
			break
		}
	}
	show := !anyVisible

	for _, childID := range parent.Children {
		child, ok := data.Cards[childID]
		if !ok {
			continue
		}
		child.Visible = show
		if !show {
			hideDescendants(data, child)
		}
	}
}

// ExpandChildren makes the direct children of a card visible, used by the
// execution sequencer when the highlight reaches a branch.
func ExpandChildren(data *MindMapData, cardID string) {
	parent, ok := data.Cards[cardID]
	if !ok {
		return
	}
	for _, childID := range parent.Children {
		if child, ok := data.Cards[childID]; ok {
			child.Visible = true
		}
	}
}

// CollapseTasks hides every task-level card regardless of prior expansion
// state, the sequencer's first step.
func CollapseTasks(data *MindMapData) {
	for _, card := range data.Cards {
		if card.Type == TypeTask {
			card.Visible = false
		}
	}
}

func hideDescendants(data *MindMapData, card *Card) {
	for _, childID := range card.Children {
		child, ok := data.Cards[childID]
		if !ok {
			continue
		}
		child.Visible = false
		hideDescendants(data, child)
	}
}
