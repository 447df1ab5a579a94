package menu

import "strings"

// Flatten lowers a built tree to the ordered list of its menu items with
// canonical "::"-joined paths. The walk is pre-order; separators and
// empty-titled intermediaries contribute neither rows nor path segments.
// Titled bar-level items (AXMenuBarItem) and menu items push segments but
// only AXMenuItem nodes become rows, so "File" appears in paths like
// "File::Close" without being a row itself.
func Flatten(root *MenuNode) []FlatItem {
	if root == nil {
		return nil
	}
	var out []FlatItem
	var stack []string
	for i := range root.Children {
		flattenNode(&root.Children[i], stack, &out)
	}
	return out
}

func flattenNode(n *MenuNode, stack []string, out *[]FlatItem) {
	if n.Role == RoleSeparator {
		return
	}

	pushed := stack
	if n.Title != "" && (n.Role == RoleMenuItem || n.Role == RoleMenuBarItem) {
		pushed = append(stack, n.Title)
	}

	if n.Role == RoleMenuItem && n.Title != "" {
		*out = append(*out, FlatItem{
			Path:        strings.Join(pushed, PathSep),
			Title:       n.Title,
			Role:        n.Role,
			Enabled:     n.Enabled,
			Checked:     n.Checked,
			Shortcut:    n.Shortcut,
			IsAlternate: n.IsAlternate,
			AlternateOf: n.AlternateOf,
		})
	}

	for i := range n.Children {
		flattenNode(&n.Children[i], pushed, out)
	}
}
