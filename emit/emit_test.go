package emit

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/tokmap"
	"github.com/stretchr/testify/assert"
)

func makeTables(t *testing.T, build func(b *lr.GrammarBuilder)) (*lr.Grammar, *lr.TableGenerator) {
	b := lr.NewGrammarBuilder("G")
	build(b)
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	lrgen.CreateTables()
	return g, lrgen
}

func exprGrammar(b *lr.GrammarBuilder) {
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("id").End()
	b.LHS("F").T("(").N("E").T(")").End()
}

func danglingElse(b *lr.GrammarBuilder) {
	b.LHS("S").T("if").N("E").T("then").N("S").End()
	b.LHS("S").T("if").N("E").T("then").N("S").T("else").N("S").End()
	b.LHS("S").T("other").End()
	b.LHS("E").T("cond").End()
}

func dumpAll(t *testing.T, build func(b *lr.GrammarBuilder)) string {
	g, lrgen := makeTables(t, build)
	var buf bytes.Buffer
	if err := WriteActions(&buf, lrgen.ActionTable(), tokmap.Identity()); err != nil {
		t.Fatal(err)
	}
	if err := WriteGotos(&buf, lrgen.GotoTable()); err != nil {
		t.Fatal(err)
	}
	if err := WriteProductions(&buf, g); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestDumpsAreDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.emit")
	defer teardown()
	assert := assert.New(t)

	first := dumpAll(t, exprGrammar)
	for i := 0; i < 5; i++ {
		assert.Equal(first, dumpAll(t, exprGrammar))
	}
	assert.NotEmpty(first)
}

func TestWriteActions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.emit")
	defer teardown()
	assert := assert.New(t)

	_, lrgen := makeTables(t, exprGrammar)
	var buf bytes.Buffer
	assert.NoError(WriteActions(&buf, lrgen.ActionTable(), tokmap.Identity()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(lines, "(0, 'id') => Shift(4)")
	assert.Contains(lines, "(0, '(') => Shift(5)")
	accepts := 0
	for _, l := range lines {
		if strings.HasSuffix(l, "=> Accept") {
			assert.True(strings.Contains(l, ", $)"), l)
			accepts++
		}
	}
	assert.Equal(1, accepts)
}

func TestWriteActionsConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.emit")
	defer teardown()
	assert := assert.New(t)

	g, lrgen := makeTables(t, danglingElse)
	var buf bytes.Buffer
	assert.NoError(WriteActions(&buf, lrgen.ActionTable(), tokmap.Identity()))
	conflicts := lrgen.Conflicts()
	if assert.Len(conflicts, 1) {
		c := conflicts[0]
		assert.Equal(g.Terminal("else"), c.Symbol)
		assert.Regexp(`\(\d+, 'else'\) => Shift\(\d+\), Reduce\(0, 4\)`, buf.String())
	}
}

func TestWriteActionsUnmapped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.emit")
	defer teardown()
	assert := assert.New(t)

	_, lrgen := makeTables(t, exprGrammar)
	m := tokmap.New(map[string]string{"+": "PLUS", "*": "STAR", "id": "ID"})
	var buf bytes.Buffer
	err := WriteActions(&buf, lrgen.ActionTable(), m)
	var ute *tokmap.UnmappedTerminalError
	if assert.True(errors.As(err, &ute)) {
		assert.ElementsMatch([]string{"'('", "')'"}, ute.Terminals)
	}
	assert.Equal(0, buf.Len())
}

func TestWriteGotos(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.emit")
	defer teardown()
	assert := assert.New(t)

	_, lrgen := makeTables(t, exprGrammar)
	var buf bytes.Buffer
	assert.NoError(WriteGotos(&buf, lrgen.GotoTable()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(lines, 9)
	assert.Equal("(0, 0) => 1", lines[0])
}

func TestProductionRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.emit")
	defer teardown()
	assert := assert.New(t)

	g, lrgen := makeTables(t, func(b *lr.GrammarBuilder) {
		exprGrammar(b)
		b.LHS("F").N("Opt").T("x").End()
		b.LHS("Opt").Epsilon()
	})
	var buf bytes.Buffer
	assert.NoError(WriteProductions(&buf, g))
	assert.Contains(buf.String(), `0 => "E -> E '+' T"`)

	prods, err := ReadProductions(&buf)
	if !assert.NoError(err) || !assert.Len(prods, len(g.Productions())) {
		return
	}
	for i, p := range prods {
		r := g.Production(i)
		assert.Equal(i, p.Index)
		assert.Equal(r.LHS.Name, p.Head)
		assert.Equal(r.Len(), p.Len())
		assert.Equal(r.String(), p.String())
	}
	lrgen.ActionTable().Each(func(state int, A *lr.Symbol, acts []lr.Action) {
		for _, a := range acts {
			if a.Kind == lr.ReduceAction {
				assert.Equal(prods[a.Target].Len(), a.Length)
			}
		}
	})
}

func TestProductionRoundTripBlankInLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.emit")
	defer teardown()
	assert := assert.New(t)

	g, _ := makeTables(t, func(b *lr.GrammarBuilder) {
		b.LHS("S").T("a b").N("S").End()
		b.LHS("S").T("x").End()
	})
	var buf bytes.Buffer
	assert.NoError(WriteProductions(&buf, g))
	prods, err := ReadProductions(&buf)
	if !assert.NoError(err) || !assert.Len(prods, 2) {
		return
	}
	assert.Equal([]string{"'a b'", "S"}, prods[0].Body)
	assert.Equal(g.Production(0).Len(), prods[0].Len())
	assert.Equal(g.Production(0).String(), prods[0].String())
}

func TestReadProductionsErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := ReadProductions(strings.NewReader("0 => E -> T\n"))
	assert.Error(err)
	_, err = ReadProductions(strings.NewReader("0 => \" -> T\"\n"))
	assert.Error(err)
	_, err = ReadProductions(strings.NewReader("99999999999999999999999 => \"E -> T\"\n"))
	assert.Error(err)
}

func TestWriteGraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.emit")
	defer teardown()
	assert := assert.New(t)

	_, lrgen := makeTables(t, exprGrammar)
	var buf bytes.Buffer
	assert.NoError(WriteGraph(&buf, lrgen.CFSM()))
	out := buf.String()
	assert.True(strings.HasPrefix(out, "digraph LR0 {\n\trankdir=LR;\n"))
	assert.True(strings.HasSuffix(out, "}\n"))
	assert.Equal(12, strings.Count(out, "[shape=box"))
	assert.Contains(out, `E' -> * E\l`)
	// all states expecting an operand go to the 'id' state
	assert.Regexp(`\{I_0 I_\d+( I_\d+)*\} -> I_4 \[headlabel="'id'"\];`, out)
}

func TestTextTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.emit")
	defer teardown()
	assert := assert.New(t)

	g, lrgen := makeTables(t, exprGrammar)
	out := TextTable(g, lrgen.ActionTable(), lrgen.GotoTable(), tokmap.Identity(), 120)
	header := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "STATE") {
			header = line
			break
		}
	}
	assert.NotEmpty(header, "table has no header row")
	assert.NotContains(header, "acc")
	assert.Contains(out, "acc")
	assert.Contains(out, "s5")
}
