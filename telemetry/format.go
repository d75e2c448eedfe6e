package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/cosmosql/output"
)

// slowThreshold marks operations that are highlighted in the report.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree writes the tree rooted at root.
//
//	parse query.sql: 2ms
//	├─ tokenize: 0ms
//	└─ parse: 1ms
func formatTimingTree(w io.Writer, root *timerNode) {
	styles := output.NewStyles(w)

	_, _ = fmt.Fprintf(w, "%s: %s\n", styles.Keyword(root.name), formatDuration(root.duration()))

	for i, child := range root.children {
		formatNode(w, styles, child, "", i == len(root.children)-1)
	}
}

func formatNode(w io.Writer, styles *output.Styles, node *timerNode, prefix string, isLast bool) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	d := node.duration()
	timing := styles.Timing(formatDuration(d), d >= slowThreshold)
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", styles.Dim(prefix+branch), node.name, timing)

	for i, child := range node.children {
		formatNode(w, styles, child, prefix+extension, i == len(node.children)-1)
	}
}

// duration of the node; a timer that was never ended reports zero.
func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return 0
	}
	return n.end.Sub(n.start)
}

// formatDuration shows milliseconds below one second, seconds otherwise.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		return fmt.Sprintf("%.0fms", ms)
	}
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%.2fs", s)
}
