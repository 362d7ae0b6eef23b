package emit

import (
	"strconv"

	"github.com/dekarrin/rosed"
	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/tokmap"
)

// TextTable renders ACTION and GOTO tables side by side as a text table of
// the given width. Terminals are rendered with their tags from m, shift actions
// as sN, reduces as rN (production index), accept as acc. Any terminal without
// a tag is shown as its literal.
func TextTable(g *lr.Grammar, actions *lr.ActionTable, gotos *lr.GotoTable, m *tokmap.Map, width int) string {
	header := []string{"state", "|"}
	for _, A := range g.Terminals() {
		tag, err := m.Lookup(A)
		if err != nil {
			tag = A.String()
		}
		header = append(header, tag)
	}
	header = append(header, "|")
	for _, A := range g.NonTerminals() {
		header = append(header, A.Name)
	}
	T := len(g.Terminals())
	rows := make([][]string, actions.StateCount())
	for state := range rows {
		rows[state] = make([]string, len(header))
		rows[state][0] = strconv.Itoa(state)
		rows[state][1] = "|"
		rows[state][2+T] = "|"
	}
	actions.Each(func(state int, A *lr.Symbol, acts []lr.Action) {
		cell := ""
		for k, a := range acts {
			if k > 0 {
				cell += "/"
			}
			cell += shortAction(a)
		}
		rows[state][2+A.Index] = cell
	})
	gotos.Each(func(state int, A *lr.Symbol, target int) {
		rows[state][3+T+A.Index] = strconv.Itoa(target)
	})
	data := append([][]string{header}, rows...)
	return rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func shortAction(a lr.Action) string {
	switch a.Kind {
	case lr.ShiftAction:
		return "s" + strconv.Itoa(a.Target)
	case lr.ReduceAction:
		return "r" + strconv.Itoa(a.Target)
	case lr.AcceptAction:
		return "acc"
	}
	return "?"
}
