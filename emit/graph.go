package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/slrgen/lr"
)

// WriteGraph writes the CFSM in Graphviz DOT format. Each state is a node
// labeled with its items. Transitions from different states to the same target
// on the same symbol are drawn as a single fan-in edge.
func WriteGraph(w io.Writer, cfsm *lr.CFSM) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("digraph LR0 {\n\trankdir=LR;\n")
	for _, s := range cfsm.States() {
		var label strings.Builder
		fmt.Fprintf(&label, "%d\\n", s.ID)
		for _, i := range s.Items() {
			label.WriteString(dotEscape(i.String()))
			label.WriteString("\\l")
		}
		fmt.Fprintf(bw, "\tI_%d [shape=box, label=\"%s\"];\n", s.ID, label.String())
	}
	type fanIn struct {
		to    int
		label *lr.Symbol
	}
	var order []fanIn
	sources := make(map[fanIn][]int)
	for _, e := range cfsm.Edges() {
		f := fanIn{to: e.To.ID, label: e.Label}
		if _, ok := sources[f]; !ok {
			order = append(order, f)
		}
		sources[f] = append(sources[f], e.From.ID)
	}
	for _, f := range order {
		from := sources[f]
		if len(from) == 1 {
			fmt.Fprintf(bw, "\tI_%d", from[0])
		} else {
			nodes := make([]string, len(from))
			for k, id := range from {
				nodes[k] = fmt.Sprintf("I_%d", id)
			}
			fmt.Fprintf(bw, "\t{%s}", strings.Join(nodes, " "))
		}
		fmt.Fprintf(bw, " -> I_%d [headlabel=\"%s\"];\n", f.to, dotEscape(f.label.String()))
	}
	bw.WriteString("}\n")
	tracer().Infof("wrote graph with %d nodes and %d edge groups", cfsm.Size(), len(order))
	return bw.Flush()
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
