/*
Package grammarfile reads grammars from their textual form.

A grammar source has one production per line:

    # expressions
    E -> E '+' T | T
    T -> T '*' F | F
    F -> 'id' | '(' E ')'
    Opt ->

Heads and non-terminals are bare names, terminals are quoted literals.
Alternatives may be separated by '|', an empty body is an epsilon production
and '#' starts a comment reaching to the end of the line. The head of the
first production is the start symbol.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammarfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrgen"
	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/lr/scanner"
	"github.com/timtadh/lexmachine"
)

// tracer traces with key 'slrgen.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("slrgen.grammar")
}

// Token types of the grammar source lexer.
const (
	Ident slrgen.TokType = iota + 1
	Literal
	Arrow
	Bar
)

var tokenIds = map[string]int{
	"->": int(Arrow),
	"|":  int(Bar),
}

func newLexer() (*scanner.LMAdapter, error) {
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`#[^\n]*`), scanner.Skip)
		lexer.Add([]byte(`'[^']*'`), scanner.MakeToken("LITERAL", int(Literal)))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), scanner.MakeToken("IDENT", int(Ident)))
		lexer.Add([]byte(`( |\t|\r)+`), scanner.Skip)
	}
	return scanner.NewLMAdapter(init, []string{"->", "|"}, nil, tokenIds)
}

// LoadFile reads a grammar from a file. The grammar is named after the file's
// base name without extension.
func LoadFile(path string) (*lr.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Load(f, name)
}

// Load reads a grammar from r. Errors in the grammar text are reported as
// *lr.MalformedGrammarError, carrying the offending line.
func Load(r io.Reader, name string) (*lr.Grammar, error) {
	lexer, err := newLexer()
	if err != nil {
		return nil, fmt.Errorf("cannot create grammar lexer: %w", err)
	}
	b := lr.NewGrammarBuilder(name)
	lines := bufio.NewScanner(r)
	lineno := 0
	for lines.Scan() {
		lineno++
		text := lines.Text()
		toks, err := tokenize(lexer, text)
		if err != nil {
			return nil, &lr.MalformedGrammarError{Line: lineno, Text: text, Reason: err.Error()}
		}
		if len(toks) == 0 {
			continue
		}
		if err := addProductions(b, toks, lineno, text); err != nil {
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("cannot read grammar %s: %w", name, err)
	}
	return b.Grammar()
}

// Parse is a convenience wrapper around Load for grammars given as strings.
func Parse(text string, name string) (*lr.Grammar, error) {
	return Load(strings.NewReader(text), name)
}

// tokenize scans a single line. The first input the lexer cannot consume
// makes the line malformed.
func tokenize(lexer *scanner.LMAdapter, line string) ([]slrgen.Token, error) {
	sc, err := lexer.Scanner(line)
	if err != nil {
		return nil, err
	}
	var lexerr error
	sc.SetErrorHandler(func(e error) {
		if lexerr == nil {
			lexerr = fmt.Errorf("stray input: %v", e)
		}
	})
	var toks []slrgen.Token
	for tok := sc.NextToken(); tok.TokType() != scanner.EOF; tok = sc.NextToken() {
		toks = append(toks, tok)
	}
	if lexerr != nil {
		return nil, lexerr
	}
	return toks, nil
}

// addProductions adds the productions of one line: HEAD -> alt1 | alt2 | …
func addProductions(b *lr.GrammarBuilder, toks []slrgen.Token, lineno int, text string) error {
	malformed := func(reason string) error {
		return &lr.MalformedGrammarError{Line: lineno, Text: text, Reason: reason}
	}
	if toks[0].TokType() == Arrow {
		return malformed("production without head")
	}
	if toks[0].TokType() != Ident {
		return malformed(fmt.Sprintf("expected head, found %q", toks[0].Lexeme()))
	}
	if len(toks) < 2 || toks[1].TokType() != Arrow {
		return malformed("missing '->' after head")
	}
	head := toks[0].Lexeme()
	rb, n := b.LHS(head).At(lineno, text), 0
	endRule := func() {
		if n == 0 {
			rb.Epsilon()
		} else {
			rb.End()
		}
	}
	for _, tok := range toks[2:] {
		switch tok.TokType() {
		case Ident:
			rb.N(tok.Lexeme())
			n++
		case Literal:
			lit := strings.Trim(tok.Lexeme(), "'")
			if lit == "" {
				return malformed("empty terminal literal")
			}
			rb.T(lit)
			n++
		case Bar:
			endRule()
			rb, n = b.LHS(head).At(lineno, text), 0
		default:
			return malformed(fmt.Sprintf("unexpected %q in production body", tok.Lexeme()))
		}
	}
	endRule()
	tracer().Debugf("line %d: %s", lineno, text)
	return nil
}
