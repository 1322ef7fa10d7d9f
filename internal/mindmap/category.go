package mindmap

import (
	"strings"

	"github.com/adrianrdguez/projects-buddy/internal/models"
)

// DefaultCategory collects tasks whose title matches no keyword set.
const DefaultCategory = "General"

// categories defines the keyword precedence order. A title is classified by
// the FIRST category whose keyword it contains, so a title matching several
// sets ("Setup API testing") lands in the earliest one. Matching is
// case-insensitive substring search over the whole title.
var categories = []struct {
	name     string
	keywords []string
}{
	{"Setup", []string{"setup", "config", "install"}},
	{"Frontend", []string{"frontend", "ui", "component"}},
	{"Backend", []string{"backend", "api", "server"}},
	{"Database", []string{"database", "db", "model"}},
	{"Testing", []string{"test", "testing"}},
	{"Deployment", []string{"deploy", "build", "production"}},
}

// Categorize returns the category name for a task title.
func Categorize(title string) string {
	lower := strings.ToLower(title)
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.name
			}
		}
	}
	return DefaultCategory
}

// GroupByCategory partitions tasks into categories, preserving original
// relative order within each group. The returned name list is in fixed
// precedence order (then General) and contains only non-empty categories,
// so grouping is deterministic for a given title sequence. Grouping is
// visual-only; it never affects execution order.
func GroupByCategory(tasks []models.Task) (map[string][]models.Task, []string) {
	grouped := make(map[string][]models.Task)
	for _, t := range tasks {
		name := Categorize(t.Title)
		grouped[name] = append(grouped[name], t)
	}

	var names []string
	for _, c := range categories {
		if len(grouped[c.name]) > 0 {
			names = append(names, c.name)
		}
	}
	if len(grouped[DefaultCategory]) > 0 {
		names = append(names, DefaultCategory)
	}
	return grouped, names
}
