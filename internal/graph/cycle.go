package graph

import "github.com/adrianrdguez/projects-buddy/internal/models"

// DetectCycle checks for cycles in a dependency edge set.
// Returns the cycle path if found, nil if no cycle. Correctness of status
// derivation does not depend on this; it exists for diagnostics only.
func DetectCycle(deps []models.TaskDep) []string {
	// Adjacency list: task -> [things it depends on]
	adj := make(map[string][]string)
	nodes := make(map[string]bool)
	for _, d := range deps {
		adj[d.TaskID] = append(adj[d.TaskID], d.DependsOn)
		nodes[d.TaskID] = true
		nodes[d.DependsOn] = true
	}

	// DFS with coloring: 0=unvisited, 1=in-progress, 2=done
	color := make(map[string]int)
	parent := make(map[string]string)

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = 1
		for _, next := range adj[node] {
			if color[next] == 1 {
				// Found a cycle, reconstruct the path back to next.
				path := []string{next, node}
				for cur := node; cur != next; {
					cur = parent[cur]
					if cur == "" {
						break
					}
					path = append(path, cur)
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				path = append(path, path[0]) // close the cycle
				return path
			}
			if color[next] == 0 {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = 2
		return nil
	}

	for node := range nodes {
		if color[node] == 0 {
			if cycle := dfs(node); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// WouldCycle reports whether adding taskID → dependsOn to the existing edge
// set would create a cycle, by walking from dependsOn looking for taskID.
func WouldCycle(deps []models.TaskDep, taskID, dependsOn string) bool {
	adj := make(map[string][]string)
	for _, d := range deps {
		adj[d.TaskID] = append(adj[d.TaskID], d.DependsOn)
	}

	visited := make(map[string]bool)
	var reachable func(cur string) bool
	reachable = func(cur string) bool {
		if cur == taskID {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		for _, next := range adj[cur] {
			if reachable(next) {
				return true
			}
		}
		return false
	}
	return reachable(dependsOn)
}
