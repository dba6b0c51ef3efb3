package scene

import (
	"fmt"
	"io"
	"strings"
)

// Print writes an indented outline of the tree rooted at root, one node per line in traversal order.
//
// Parameters:
//   - w: the destination
//   - root: the subtree to print
//
// Returns:
//   - error: the first write error
func Print(w io.Writer, root Node) error {
	if root == nil {
		return nil
	}
	return printNode(w, root, 0)
}

func printNode(w io.Writer, n Node, depth int) error {
	line := strings.Repeat("  ", depth) + n.Kind().String()
	if name := n.Name(); name != "" {
		line += fmt.Sprintf(" %q", name)
	}
	if detail := nodeDetail(n); detail != "" {
		line += " " + detail
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := printNode(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func nodeDetail(n Node) string {
	switch v := n.(type) {
	case PresentationNode:
		c := v.Color()
		return fmt.Sprintf("[color=(%.2f, %.2f, %.2f, %.2f) blend=%t]", c.R, c.G, c.B, c.A, v.Blending())
	case GeometryNode:
		if v.Released() {
			return fmt.Sprintf("[%s released]", v.Primitive())
		}
		return fmt.Sprintf("[%s %d/%d]", v.Primitive(), v.Count(), v.Capacity())
	default:
		return ""
	}
}
