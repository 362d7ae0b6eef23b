package scanner

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

const (
	tokIdent = iota + 1
	tokLiteral
	tokArrow
	tokBar
)

var tokenIds = map[string]int{
	"->": tokArrow,
	"|":  tokBar,
}

func makeAdapter(t *testing.T) *LMAdapter {
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`#[^\n]*`), Skip)
		lexer.Add([]byte(`'[^']*'`), MakeToken("LITERAL", tokLiteral))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), MakeToken("IDENT", tokIdent))
		lexer.Add([]byte(`( |\t|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, []string{"->", "|"}, nil, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

var inputStrings = []string{
	"",
	"E -> E '+' T",
	"F -> 'id' | '(' E ')'   # comment",
	"Opt ->",
	"# only a comment",
}

var tokenCounts = []int{0, 5, 7, 2, 0}

func TestLMTokenCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Fatal(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMTokenTypesAndSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	sc, err := LM.Scanner("E -> 'id'")
	if err != nil {
		t.Fatal(err)
	}
	expected := []struct {
		typ      int
		lexeme   string
		from, to uint64
	}{
		{tokIdent, "E", 0, 1},
		{tokArrow, "->", 2, 4},
		{tokLiteral, "'id'", 5, 9},
	}
	for _, exp := range expected {
		tok := sc.NextToken()
		if int(tok.TokType()) != exp.typ || tok.Lexeme() != exp.lexeme {
			t.Errorf("expected token %d %q, have %d %q", exp.typ, exp.lexeme, tok.TokType(), tok.Lexeme())
		}
		if tok.Span().From() != exp.from || tok.Span().To() != exp.to {
			t.Errorf("expected span of %q to be (%d…%d), is %v", exp.lexeme, exp.from, exp.to, tok.Span())
		}
	}
	if tok := sc.NextToken(); tok.TokType() != EOF {
		t.Errorf("expected EOF, have %v", tok)
	}
}

func TestLMErrorHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	sc, err := LM.Scanner("A % B")
	if err != nil {
		t.Fatal(err)
	}
	var errs []error
	sc.SetErrorHandler(func(e error) {
		errs = append(errs, e)
	})
	count := 0
	for tok := sc.NextToken(); tok.TokType() != EOF; tok = sc.NextToken() {
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 tokens after skipping bad input, have %d", count)
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 scanner error, have %d", len(errs))
	}
}
