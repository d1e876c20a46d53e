package depmapper

// detectCircularDependencies finds import cycles with a depth-first
// search over the module graph. Each DFS root reports at most one cycle;
// nodes on a found cycle stay on the recursion stack so overlapping
// cycles collapse into one.
func detectCircularDependencies(modules []ModuleDeps) [][]string {
	adjacency := map[string][]string{}
	for _, m := range modules {
		adjacency[m.Path] = m.Imports
	}

	circular := [][]string{}
	visited := map[string]bool{}
	recStack := map[string]bool{}

	var dfs func(node string, path []string) bool
	dfs = func(node string, path []string) bool {
		visited[node] = true
		recStack[node] = true
		path = append(path, node)

		for _, neighbor := range adjacency[node] {
			if !visited[neighbor] {
				branch := make([]string, len(path))
				copy(branch, path)
				if dfs(neighbor, branch) {
					return true
				}
			} else if recStack[neighbor] {
				// A neighbor can linger on the stack from an earlier
				// root without being on the current path; there is no
				// new cycle to record then
				if start := indexOf(path, neighbor); start >= 0 {
					cycle := append(append([]string{}, path[start:]...), neighbor)
					if !containsCycle(circular, cycle) {
						circular = append(circular, cycle)
					}
				}
				return true
			}
		}

		recStack[node] = false
		return false
	}

	for _, m := range modules {
		if !visited[m.Path] {
			dfs(m.Path, nil)
		}
	}

	return circular
}

func indexOf(path []string, node string) int {
	for i, p := range path {
		if p == node {
			return i
		}
	}
	return -1
}

func containsCycle(cycles [][]string, candidate []string) bool {
	for _, c := range cycles {
		if equalStrings(c, candidate) {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
