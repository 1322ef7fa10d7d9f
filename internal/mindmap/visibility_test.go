package mindmap

import (
	"testing"

	"github.com/adrianrdguez/projects-buddy/internal/models"
)

func visibilityFixture() *MindMapData {
	return Build([]models.Task{
		{ID: "t1", Title: "Setup repo"},
		{ID: "t2", Title: "Setup CI"},
		{ID: "t3", Title: "Write tests"},
	}, "Vis")
}

func branchID(t *testing.T, data *MindMapData, title string) string {
	t.Helper()
	for id, card := range data.Cards {
		if card.Type == TypeBranch && card.Title == title {
			return id
		}
	}
	t.Fatalf("branch %q not found", title)
	return ""
}

func TestToggleChildren_ExpandAndCollapse(t *testing.T) {
	data := visibilityFixture()
	setup := branchID(t, data, "Setup")

	// Tasks start hidden; first toggle reveals them.
	ToggleChildren(data, setup)
	if !data.Cards["t1"].Visible || !data.Cards["t2"].Visible {
		t.Error("expected setup tasks visible after expand")
	}
	// Unrelated branch untouched.
	if data.Cards["t3"].Visible {
		t.Error("testing task should stay hidden")
	}

	// Second toggle hides them again.
	ToggleChildren(data, setup)
	if data.Cards["t1"].Visible || data.Cards["t2"].Visible {
		t.Error("expected setup tasks hidden after collapse")
	}
}

func TestToggleChildren_MajorityRule(t *testing.T) {
	data := visibilityFixture()
	setup := branchID(t, data, "Setup")

	// One child visible: group toggle hides everything, not per-child flip.
	data.Cards["t1"].Visible = true
	ToggleChildren(data, setup)
	if data.Cards["t1"].Visible || data.Cards["t2"].Visible {
		t.Error("expected all-or-nothing collapse when any child is visible")
	}
}

func TestToggleChildren_CollapseCascades(t *testing.T) {
	data := visibilityFixture()
	setup := branchID(t, data, "Setup")

	// Collapsing at the root must hide branches and their tasks at any depth.
	data.Cards["t1"].Visible = true
	ToggleChildren(data, data.RootID)
	if data.Cards[setup].Visible {
		t.Error("branch still visible after root collapse")
	}
	if data.Cards["t1"].Visible {
		t.Error("grandchild task still visible after cascade collapse")
	}

	// Expanding the root reveals branches only; tasks keep their own state.
	ToggleChildren(data, data.RootID)
	if !data.Cards[setup].Visible {
		t.Error("branch hidden after root expand")
	}
	if data.Cards["t1"].Visible {
		t.Error("expand must not reveal grandchildren")
	}
}

func TestToggleChildren_RootStaysVisible(t *testing.T) {
	data := visibilityFixture()
	ToggleChildren(data, data.RootID)
	ToggleChildren(data, data.RootID)
	if !data.Cards[data.RootID].Visible {
		t.Error("root must always stay visible")
	}
}

func TestToggleChildren_UnknownCard(t *testing.T) {
	data := visibilityFixture()
	ToggleChildren(data, "nope") // must not panic
}

func TestExpandChildren(t *testing.T) {
	data := visibilityFixture()
	setup := branchID(t, data, "Setup")
	ExpandChildren(data, setup)
	if !data.Cards["t1"].Visible || !data.Cards["t2"].Visible {
		t.Error("expected tasks visible after ExpandChildren")
	}
}

func TestCollapseTasks(t *testing.T) {
	data := visibilityFixture()
	setup := branchID(t, data, "Setup")
	ExpandChildren(data, setup)

	CollapseTasks(data)
	for id, card := range data.Cards {
		switch card.Type {
		case TypeTask:
			if card.Visible {
				t.Errorf("task %s visible after CollapseTasks", id)
			}
		case TypeBranch:
			if !card.Visible {
				t.Errorf("branch %s hidden by CollapseTasks", id)
			}
		}
	}
}
