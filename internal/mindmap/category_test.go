package mindmap

import (
	"testing"

	"github.com/adrianrdguez/projects-buddy/internal/models"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Setup project", "Setup"},
		{"Install dependencies", "Setup"},
		{"Build login UI", "Frontend"},
		{"Create reusable component library", "Frontend"},
		{"Design API architecture", "Backend"},
		{"Implement server middleware", "Backend"},
		{"Create database schema", "Database"},
		{"Write tests", "Testing"},
		{"Deploy to production", "Deployment"},
		{"Research competitors", "General"},
	}
	for _, tc := range cases {
		if got := Categorize(tc.title); got != tc.want {
			t.Errorf("Categorize(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestCategorize_PrecedenceTies(t *testing.T) {
	// Titles matching multiple keyword sets land in the earliest category.
	if got := Categorize("Setup API testing"); got != "Setup" {
		t.Errorf("Categorize(tie) = %q, want Setup", got)
	}
	if got := Categorize("Test the deploy pipeline"); got != "Testing" {
		t.Errorf("Categorize(tie) = %q, want Testing", got)
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	title := "Configure UI server models for testing and deploy"
	first := Categorize(title)
	for i := 0; i < 10; i++ {
		if got := Categorize(title); got != first {
			t.Fatalf("Categorize not deterministic: %q then %q", first, got)
		}
	}
}

func TestGroupByCategory_OrderWithinGroup(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "Setup repo"},
		{ID: "2", Title: "Write tests"},
		{ID: "3", Title: "Setup CI config"},
		{ID: "4", Title: "Misc chores"},
	}
	grouped, names := GroupByCategory(tasks)

	wantNames := []string{"Setup", "Testing", "General"}
	if len(names) != len(wantNames) {
		t.Fatalf("names = %v, want %v", names, wantNames)
	}
	for i := range wantNames {
		if names[i] != wantNames[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], wantNames[i])
		}
	}

	setup := grouped["Setup"]
	if len(setup) != 2 || setup[0].ID != "1" || setup[1].ID != "3" {
		t.Errorf("Setup group order broken: %+v", setup)
	}
}
