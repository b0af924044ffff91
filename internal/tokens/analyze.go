package tokens

import (
	"sort"
	"strings"
)

// Issue describes one problematic reference found by Analyze.
type Issue struct {
	Tree      string `json:"tree"`
	Token     string `json:"token"`
	Reference string `json:"reference"`
}

// Report summarises the reference health of a document.
type Report struct {
	Tokens   int        `json:"tokens"`
	Cycles   [][]string `json:"cycles,omitempty"`
	Dangling []Issue    `json:"dangling,omitempty"`
	// Shadowed lists theme references whose path also exists in the theme
	// tree itself. Theme tables resolve against the global tree, so the
	// theme-local token is never the one used.
	Shadowed []Issue `json:"shadowed,omitempty"`
}

// HasErrors reports whether the document would fail or degrade when built.
func (r Report) HasErrors() bool {
	return len(r.Cycles) > 0 || len(r.Dangling) > 0
}

// Analyze inspects every reference in doc without building any table.
func Analyze(doc *Document) Report {
	var report Report
	if doc == nil {
		return report
	}

	graph := make(map[string][]string)
	check := func(tree string, scope *Group) func([]string, Leaf) error {
		return func(path []string, leaf Leaf) error {
			report.Tokens++
			dotted := strings.Join(path, ".")

			target, ok := ReferencePath(leaf.Value)
			if !ok {
				return nil
			}
			targetDotted := strings.Join(target, ".")

			node, found := doc.Global.Lookup(target)
			if _, isLeaf := node.Leaf(); !found || !isLeaf {
				report.Dangling = append(report.Dangling, Issue{Tree: tree, Token: dotted, Reference: leaf.Value})
				return nil
			}

			if scope == doc.Global {
				graph[dotted] = append(graph[dotted], targetDotted)
				return nil
			}
			if local, inTheme := scope.Lookup(target); inTheme && local.Kind() == KindLeaf {
				report.Shadowed = append(report.Shadowed, Issue{Tree: tree, Token: dotted, Reference: leaf.Value})
			}
			return nil
		}
	}

	_ = doc.Global.Walk(check(GlobalTree, doc.Global))
	for _, name := range doc.ThemeNames() {
		tree, _ := doc.Theme(name)
		_ = tree.Walk(check(name, tree))
	}

	report.Cycles = detectCycles(graph)
	return report
}

// detectCycles returns every cycle reachable through a back edge, each
// closed by repeating its first node.
func detectCycles(graph map[string][]string) [][]string {
	visiting := make(map[string]bool, len(graph))
	visited := make(map[string]bool, len(graph))
	var stack []string
	var cycles [][]string

	var dfs func(string)
	dfs = func(node string) {
		visiting[node] = true
		stack = append(stack, node)

		for _, dep := range graph[node] {
			if visited[dep] {
				continue
			}
			if visiting[dep] {
				if idx := indexOf(stack, dep); idx >= 0 {
					cycle := append([]string{}, stack[idx:]...)
					cycles = append(cycles, append(cycle, dep))
				}
				continue
			}
			dfs(dep)
		}

		visiting[node] = false
		visited[node] = true
		stack = stack[:len(stack)-1]
	}

	ids := make([]string, 0, len(graph))
	for id := range graph {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if !visited[id] {
			dfs(id)
		}
	}

	return cycles
}

func indexOf(slice []string, target string) int {
	for i, v := range slice {
		if v == target {
			return i
		}
	}
	return -1
}
