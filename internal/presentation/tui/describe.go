package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aretw0/simchain/pkg/chain"
)

// Describe returns a markdown table of the steps of traj.
func Describe(traj *chain.Trajectory) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", traj.Name())
	fmt.Fprintf(&sb, "%d steps\n\n", traj.Len())
	sb.WriteString("| # | Activity | Tag | Priority | Count | Values |\n")
	sb.WriteString("|---|----------|-----|----------|-------|--------|\n")
	for i, n := range traj.Nodes() {
		node := n.Node()
		var values bytes.Buffer
		n.Print(&values, 0, false, true)
		fmt.Fprintf(&sb, "| %d | %s | %s | %d | %d | %s |\n",
			i, node.Name(), cell(node.Tag), node.Priority, node.Count, cell(values.String()))
	}
	return sb.String()
}

func cell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
