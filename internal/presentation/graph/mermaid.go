package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/simchain/pkg/activities"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
)

// GraphOverlay contains extra styling to apply on the graph.
type GraphOverlay struct {
	// Highlight marks every step carrying one of these tags.
	Highlight []string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a trajectory.
// It applies semantic styling:
// - Head: ((Circle))
// - Timeout: [/Parallelogram/]
// - Rollback: {{Hexagon}}, with a dotted edge back to its destination
// - Default: [Rectangle]
func GenerateMermaid(traj *chain.Trajectory, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	nodes := traj.Nodes()
	ids := make(map[domain.Activity]string, len(nodes))
	for i, n := range nodes {
		ids[n] = fmt.Sprintf("n%d", i)
	}

	for i, n := range nodes {
		id := ids[n]
		opener, closer := "[", "]"
		switch n.(type) {
		case *activities.Timeout:
			opener, closer = "[/", "/]"
		case *activities.Rollback:
			opener, closer = "{{", "}}"
		}
		if i == 0 {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label(n.Node()), closer)
	}

	for _, n := range nodes {
		id := ids[n]
		if next := n.Next(); next != nil {
			fmt.Fprintf(&sb, "    %s --> %s\n", id, ids[next])
		}
		rb, ok := n.(*activities.Rollback)
		if !ok {
			continue
		}
		if dest := rb.Destination(); dest != nil {
			fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", id, rollbackLabel(rb), ids[dest])
		}
	}

	if overlay != nil && len(overlay.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		wanted := make(map[string]bool, len(overlay.Highlight))
		for _, tag := range overlay.Highlight {
			wanted[tag] = true
		}
		for _, n := range nodes {
			if tag := n.Node().Tag; tag != "" && wanted[tag] {
				fmt.Fprintf(&sb, "    class %s highlight;\n", ids[n])
			}
		}
	}

	return sb.String()
}

func label(b *domain.Base) string {
	name := b.Name()
	if b.Tag != "" {
		name = fmt.Sprintf("%s <br/> [%s]", name, b.Tag)
	}
	// Double quotes end a Mermaid label
	return strings.ReplaceAll(name, "\"", "'")
}

func rollbackLabel(r *activities.Rollback) string {
	switch {
	case r.Check.Kind() != param.KindUnbound:
		return "check"
	case r.Times < 0:
		return "forever"
	default:
		return fmt.Sprintf("x%d", r.Times)
	}
}
