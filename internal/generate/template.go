package generate

import (
	"context"
	"strings"
)

// TemplateGenerator produces tasks from a fixed catalog keyed by keywords in
// the user's input. It is the fallback when the AI generator fails and the
// deterministic double in tests.
type TemplateGenerator struct{}

// Generate never fails; unmatched input falls through to a generic plan.
func (TemplateGenerator) Generate(_ context.Context, input string) (*Output, error) {
	return &Output{Tasks: TemplateStubs(input)}, nil
}

// TemplateStubs picks the template task list for a free-text input. Keyword
// groups are checked in order: auth, backend/API, frontend/UI, then the
// generic plan. Dependency indices encode each catalog's hard-coded chain.
func TemplateStubs(input string) []RawTaskStub {
	lower := strings.ToLower(input)

	switch {
	case containsAny(lower, "auth", "login", "signup"):
		return []RawTaskStub{
			{
				Title:         "Setup Authentication Provider",
				Description:   "Configure authentication service (Supabase, Auth0, or Firebase)",
				Priority:      "high",
				EstimatedTime: "2 hours",
			},
			{
				Title:         "Create Login Component",
				Description:   "Build login form with email/password and social auth options",
				Priority:      "high",
				Dependencies:  []int{0},
				EstimatedTime: "3 hours",
			},
			{
				Title:         "Create Signup Component",
				Description:   "Build registration form with validation and email confirmation",
				Priority:      "high",
				Dependencies:  []int{0},
				EstimatedTime: "3 hours",
			},
			{
				Title:         "Implement Protected Routes",
				Description:   "Add middleware to protect authenticated pages and API routes",
				Priority:      "medium",
				Dependencies:  []int{1, 2},
				EstimatedTime: "2 hours",
			},
			{
				Title:         "Setup User Profile Management",
				Description:   "Create user profile page with update functionality",
				Priority:      "low",
				Dependencies:  []int{3},
				EstimatedTime: "2 hours",
			},
		}
	case containsAny(lower, "api", "backend"):
		return []RawTaskStub{
			{
				Title:         "Design API Architecture",
				Description:   "Plan REST API endpoints and data models",
				Priority:      "high",
				EstimatedTime: "2 hours",
			},
			{
				Title:         "Setup Database Schema",
				Description:   "Create database tables and relationships",
				Priority:      "high",
				Dependencies:  []int{0},
				EstimatedTime: "2 hours",
			},
			{
				Title:         "Implement CRUD Operations",
				Description:   "Build Create, Read, Update, Delete operations for main entities",
				Priority:      "medium",
				Dependencies:  []int{1},
				EstimatedTime: "4 hours",
			},
			{
				Title:         "Add API Validation",
				Description:   "Implement request validation and error handling",
				Priority:      "medium",
				Dependencies:  []int{2},
				EstimatedTime: "2 hours",
			},
		}
	case containsAny(lower, "ui", "frontend", "design"):
		return []RawTaskStub{
			{
				Title:         "Create Design System",
				Description:   "Setup colors, typography, and component library",
				Priority:      "high",
				EstimatedTime: "3 hours",
			},
			{
				Title:         "Build Main Layout",
				Description:   "Create header, footer, and navigation components",
				Priority:      "high",
				Dependencies:  []int{0},
				EstimatedTime: "3 hours",
			},
			{
				Title:         "Implement Responsive Design",
				Description:   "Ensure mobile-first responsive design across all screens",
				Priority:      "medium",
				Dependencies:  []int{1},
				EstimatedTime: "2 hours",
			},
			{
				Title:         "Add Loading States",
				Description:   "Implement skeleton screens and loading indicators",
				Priority:      "low",
				Dependencies:  []int{1},
				EstimatedTime: "1 hour",
			},
		}
	default:
		return []RawTaskStub{
			{
				Title:         "Project Planning",
				Description:   "Plan and break down the requirements for: " + input,
				Priority:      "high",
				EstimatedTime: "2 hours",
			},
			{
				Title:         "Setup Development Environment",
				Description:   "Configure tools, dependencies, and development workflow",
				Priority:      "medium",
				Dependencies:  []int{0},
				EstimatedTime: "1 hour",
			},
			{
				Title:         "Implementation",
				Description:   "Implement the main functionality for: " + input,
				Priority:      "high",
				Dependencies:  []int{1},
				EstimatedTime: "6 hours",
			},
			{
				Title:         "Testing & Documentation",
				Description:   "Write tests and update documentation",
				Priority:      "medium",
				Dependencies:  []int{2},
				EstimatedTime: "2 hours",
			},
		}
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
