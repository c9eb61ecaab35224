// Package diagram generates mermaid diagram descriptions from workflow
// models. Only the textual description is produced here; rendering belongs
// to the client.
package diagram

import (
	"fmt"
	"strings"

	"github.com/floww-ai/backend/internal/entity"
)

// LinearChain produces a graph TD chain connecting the stages in workflow
// order: S0 --> S1 --> ... A single-stage workflow yields one node and no
// edges.
func LinearChain(w *entity.Workflow) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	if len(w.Stages) == 1 {
		fmt.Fprintf(&b, "    S0[%q]\n", w.Stages[0].Name)
		return b.String()
	}

	for i := 0; i < len(w.Stages)-1; i++ {
		fmt.Fprintf(&b, "    S%d[%q] --> S%d[%q]\n", i, w.Stages[i].Name, i+1, w.Stages[i+1].Name)
	}
	return b.String()
}

// Usable reports whether a fence-stripped model response looks like a
// mermaid flowchart. The phase-grouped diagram path carries no schema
// guarantee, so callers fall back to LinearChain when this is false.
func Usable(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "graph ") || strings.HasPrefix(trimmed, "flowchart ")
}
