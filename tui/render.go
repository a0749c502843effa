// ABOUTME: Rendering of arrays and trees with per-step highlight colors
// ABOUTME: Builds the visual panel content and tracks which line holds the highlight

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"algoviz/trace"
)

// cellStyle is the base look of an array cell and a tree label
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// highlightColors in priority order; the first set containing an index wins
var highlightColors = []struct {
	name  trace.Highlight
	color lipgloss.Color
}{
	{trace.Found, lipgloss.Color("10")},
	{trace.Pivot, lipgloss.Color("13")},
	{trace.Mid, lipgloss.Color("13")},
	{trace.Comparing, lipgloss.Color("11")},
	{trace.Selected, lipgloss.Color("9")},
	{trace.Min, lipgloss.Color("14")},
	{trace.Current, lipgloss.Color("12")},
	{trace.Sorted, lipgloss.Color("2")},
	{trace.Visited, lipgloss.Color("8")},
	{trace.Path, lipgloss.Color("6")},
}

// dimStyle marks array cells outside a search range
var dimStyle = cellStyle.Foreground(lipgloss.Color("238"))

// styleFor picks the style of an index or node id and reports whether any
// highlight set contains it
func styleFor(hl trace.Highlights, id int) (lipgloss.Style, bool) {
	for _, h := range highlightColors {
		if hl.Has(h.name, id) {
			return cellStyle.Background(h.color).Foreground(lipgloss.Color("0")).Bold(true), true
		}
	}

	if len(hl.Get(trace.Range)) > 0 && !hl.Has(trace.Range, id) {
		return dimStyle, false
	}

	return cellStyle, false
}

// renderArray draws values as a row of cells over their indices.
// The returned focus is always line 0.
func renderArray(arr []int, hl trace.Highlights) ([]string, int) {
	if len(arr) == 0 {
		return []string{"(empty array)"}, 0
	}

	cells := make([]string, len(arr))
	indices := make([]string, len(arr))

	for i, v := range arr {
		style, _ := styleFor(hl, i)
		cells[i] = style.Render(fmt.Sprintf("%3d", v))
		indices[i] = cellStyle.Foreground(lipgloss.Color("241")).Render(fmt.Sprintf("%3d", i))
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
		lipgloss.JoinHorizontal(lipgloss.Top, indices...),
	}

	for _, name := range []trace.Highlight{trace.Left, trace.Right} {
		if ids := hl.Get(name); len(ids) > 0 {
			lines = append(lines, fmt.Sprintf("%s: %d", name, ids[0]))
		}
	}

	return lines, 0
}

// treeRenderer collects indented lines for a tree snapshot
type treeRenderer struct {
	hl    trace.Highlights
	lines []string
	focus int
	found bool
}

// renderTree draws the tree top down with left children first. The focus is
// the first line whose node carries a highlight.
func renderTree(root *trace.Node, hl trace.Highlights) ([]string, int) {
	if root == nil {
		return []string{"(empty tree)"}, 0
	}

	r := &treeRenderer{hl: hl}
	r.node(root, "", "", "")

	return r.lines, r.focus
}

func (r *treeRenderer) node(n *trace.Node, prefix, branch, side string) {
	style, marked := styleFor(r.hl, n.ID)
	if marked && !r.found {
		r.focus = len(r.lines)
		r.found = true
	}

	r.lines = append(r.lines, prefix+branch+side+style.Render(fmt.Sprint(n.Value)))

	childPrefix := prefix
	switch branch {
	case "├─":
		childPrefix += "│ "
	case "└─":
		childPrefix += "  "
	}

	if n.Left != nil {
		b := "└─"
		if n.Right != nil {
			b = "├─"
		}

		r.node(n.Left, childPrefix, b, "L ")
	}

	if n.Right != nil {
		r.node(n.Right, childPrefix, "└─", "R ")
	}
}

// updateViewportContent builds and sets the viewport content from the step
// on screen, or from the entity when nothing is playing
func (m *model) updateViewportContent() {
	var (
		lines []string
		focus int
		hl    trace.Highlights
	)

	if m.step != nil {
		hl = m.step.Highlights
	}

	switch m.domain {
	case TreeDomain:
		root := m.tree.Snapshot()
		if m.step != nil {
			root = m.step.Tree
		}

		lines, focus = renderTree(root, hl)
	default:
		arr := m.array
		if m.domain == SearchDomain {
			arr = m.sorted
		}

		if m.step != nil {
			arr = m.step.Array
		}

		lines, focus = renderArray(arr, hl)
	}

	if m.step != nil && m.step.Result != nil {
		lines = append(lines, "", resultLine(*m.step.Result))
	}

	m.focusLine = focus
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// resultLine describes a terminal search result
func resultLine(res trace.Result) string {
	if !res.Found {
		return "Result: not found"
	}

	return fmt.Sprintf("Result: found at %d", res.Index)
}
