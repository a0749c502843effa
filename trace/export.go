// ABOUTME: Trace export in text, JSON and YAML formats
// ABOUTME: Text output is stable and used for golden tests and CLI printing

package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// highlightOrder fixes the order highlight sets are printed in
var highlightOrder = []Highlight{
	Comparing, Selected, Sorted, Pivot, Min,
	Current, Visited, Found, Path,
	Left, Right, Mid, Range,
}

// document is the serialized shape of a trace
type document struct {
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Steps     []Step `json:"steps" yaml:"steps"`
}

// Write encodes t to w in the requested format
func Write(w io.Writer, t Trace, format string) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, Text(t))

		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(document{Algorithm: t.algorithm, Steps: t.steps}); err != nil {
			return fmt.Errorf("failed to encode trace as json: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(document{Algorithm: t.algorithm, Steps: t.steps}); err != nil {
			return fmt.Errorf("failed to encode trace as yaml: %w", err)
		}

		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q: must be one of text, json, yaml", format)
	}
}

// Text renders the whole trace in the stable text format
func Text(t Trace) string {
	var b strings.Builder

	fmt.Fprintf(&b, "trace %s: %d steps\n", t.algorithm, len(t.steps))

	for i := range t.steps {
		b.WriteString(StepText(i, t.steps[i]))
	}

	return b.String()
}

// StepText renders a single step; index is zero based
func StepText(index int, s Step) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%d] %s: %s\n", index+1, s.Kind, s.Message)

	if s.Array != nil {
		fmt.Fprintf(&b, "  array: %v\n", s.Array)
	}

	if s.Tree != nil {
		fmt.Fprintf(&b, "  tree: %s\n", TreeText(s.Tree))
	}

	for _, name := range highlightOrder {
		ids := s.Highlights[name]
		if len(ids) == 0 {
			continue
		}

		fmt.Fprintf(&b, "  %s: %s\n", name, joinInts(ids))
	}

	fmt.Fprintf(&b, "  stats: comparisons=%d swaps=%d accesses=%d iterations=%d\n",
		s.Stats.Comparisons, s.Stats.Swaps, s.Stats.Accesses, s.Stats.Iterations)

	if s.Result != nil {
		fmt.Fprintf(&b, "  result: found=%t index=%d\n", s.Result.Found, s.Result.Index)
	}

	return b.String()
}

// TreeText renders a tree snapshot as value#id(left,right), using - for a missing child
func TreeText(n *Node) string {
	if n == nil {
		return "-"
	}

	label := strconv.Itoa(n.Value) + "#" + strconv.Itoa(n.ID)
	if n.Left == nil && n.Right == nil {
		return label
	}

	return label + "(" + TreeText(n.Left) + "," + TreeText(n.Right) + ")"
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	return strings.Join(parts, ",")
}
