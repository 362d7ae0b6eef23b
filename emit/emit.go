/*
Package emit serializes parser tables and automata.

Dumps are line oriented and deterministic: lines are ordered by state,
then by symbol index. The ACTION table dump has one line per non-empty cell,

    (<state>, <token tag>) => Shift(3)
    (<state>, <token tag>) => Shift(7), Reduce(0, 4)

the GOTO table dump has one line per defined cell,

    (<state>, <non-terminal index>) => <state>

and the production list has one line per production,

    <index> => "<head> -> <symbol> <symbol> …"

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package emit

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/tokmap"
)

// tracer traces with key 'slrgen.emit'.
func tracer() tracing.Trace {
	return tracing.Select("slrgen.emit")
}

// WriteActions writes the ACTION table, rendering terminals with their tags
// from m. If any terminal of the table has no tag, nothing is written and a
// *tokmap.UnmappedTerminalError is returned.
func WriteActions(w io.Writer, actions *lr.ActionTable, m *tokmap.Map) error {
	tags := make(map[*lr.Symbol]string)
	var missing []string
	actions.Each(func(state int, A *lr.Symbol, _ []lr.Action) {
		if _, ok := tags[A]; ok {
			return
		}
		tag, err := m.Lookup(A)
		if err != nil {
			missing = append(missing, A.String())
			tag = ""
		}
		tags[A] = tag
	})
	if len(missing) > 0 {
		return &tokmap.UnmappedTerminalError{Terminals: missing}
	}
	bw := bufio.NewWriter(w)
	lines := 0
	actions.Each(func(state int, A *lr.Symbol, acts []lr.Action) {
		fmt.Fprintf(bw, "(%d, %s) => %s\n", state, tags[A], joinActions(acts))
		lines++
	})
	tracer().Infof("wrote %d ACTION entries", lines)
	return bw.Flush()
}

func joinActions(acts []lr.Action) string {
	s := make([]string, len(acts))
	for i, a := range acts {
		s[i] = a.String()
	}
	return strings.Join(s, ", ")
}

// WriteGotos writes the GOTO table. Non-terminals are given by index.
func WriteGotos(w io.Writer, gotos *lr.GotoTable) error {
	bw := bufio.NewWriter(w)
	gotos.Each(func(state int, A *lr.Symbol, target int) {
		fmt.Fprintf(bw, "(%d, %d) => %d\n", state, A.Index, target)
	})
	return bw.Flush()
}

// WriteProductions writes the list of productions of g, without the augmented
// start rule.
func WriteProductions(w io.Writer, g *lr.Grammar) error {
	bw := bufio.NewWriter(w)
	for _, r := range g.Productions() {
		fmt.Fprintf(bw, "%d => %s\n", r.Serial, strconv.Quote(r.String()))
	}
	return bw.Flush()
}

// Production is a production as read from a production list dump.
type Production struct {
	Index int
	Head  string
	Body  []string // symbols as rendered, terminals quoted
}

func (p Production) String() string {
	if len(p.Body) == 0 {
		return p.Head + " ->"
	}
	return p.Head + " -> " + strings.Join(p.Body, " ")
}

// Len is the length of the production's body.
func (p Production) Len() int {
	return len(p.Body)
}

var productionLine = regexp.MustCompile(`^(\d+) => (".*")$`)

// ReadProductions reads a production list as written by WriteProductions.
func ReadProductions(r io.Reader) ([]Production, error) {
	var prods []Production
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		match := productionLine.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("production list, line %d: cannot parse %q", lineno, line)
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("production list, line %d: %w", lineno, err)
		}
		text, err := strconv.Unquote(match[2])
		if err != nil {
			return nil, fmt.Errorf("production list, line %d: %w", lineno, err)
		}
		parts := strings.SplitN(text, " ->", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("production list, line %d: no head in %q", lineno, text)
		}
		prods = append(prods, Production{
			Index: index,
			Head:  parts[0],
			Body:  splitBody(parts[1]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return prods, nil
}

// splitBody splits a production body at blanks outside of quoted terminals.
func splitBody(body string) []string {
	var syms []string
	var sym strings.Builder
	quoted := false
	for _, r := range body {
		switch {
		case r == '\'':
			quoted = !quoted
			sym.WriteRune(r)
		case r == ' ' && !quoted:
			if sym.Len() > 0 {
				syms = append(syms, sym.String())
				sym.Reset()
			}
		default:
			sym.WriteRune(r)
		}
	}
	if sym.Len() > 0 {
		syms = append(syms, sym.String())
	}
	return syms
}
