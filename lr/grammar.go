package lr

import (
	"fmt"
	"strings"
)

// --- Symbols ---------------------------------------------------------------

type symbolKind uint8

const (
	nonTerminalKind symbolKind = iota
	terminalKind
	epsilonKind
)

// EOFName is the name of the end-of-input marker, which is a terminal of every grammar.
const EOFName = "$"

// Symbol is a grammar symbol, either a terminal or a non-terminal.
//
// Index is the position of a symbol among the symbols of its kind, in order of
// first appearance. Value is unique across all symbols of a grammar: terminals
// have Value = Index+1, non-terminals have Value = -(Index+1). Value 0 is reserved
// for Epsilon.
type Symbol struct {
	Name  string
	Value int
	Index int
	kind  symbolKind
}

// Epsilon is a pseudo-symbol for the empty string. It will never occur on the
// RHS of a rule, but may be a member of FIRST-sets.
var Epsilon = &Symbol{Name: "ε", Value: 0, kind: epsilonKind}

// IsTerminal returns true if this symbol represents a terminal.
func (A *Symbol) IsTerminal() bool {
	return A.kind == terminalKind
}

// IsEpsilon returns true for the Epsilon pseudo-symbol.
func (A *Symbol) IsEpsilon() bool {
	return A.kind == epsilonKind
}

// String renders non-terminals by name and terminals as quoted literals.
// The end-of-input marker is rendered as $.
func (A *Symbol) String() string {
	if A.kind == terminalKind && A.Name != EOFName {
		return "'" + A.Name + "'"
	}
	return A.Name
}

// --- Rules -----------------------------------------------------------------

// Rule is a type for a production of a grammar.
//
//    LHS -> RHS
//
// Serial is the production index, i.e. the position of the rule in the ordered
// sequence of productions of the grammar. The augmented start rule S' -> S is not part
// of this sequence and has a Serial of -1.
type Rule struct {
	Serial int
	LHS    *Symbol
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule.
// The returned slice must not be modified.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len returns the length of the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEpsilon is true for a rule with an empty right hand side.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS.Name)
	b.WriteString(" ->")
	for _, A := range r.rhs {
		b.WriteByte(' ')
		b.WriteString(A.String())
	}
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a type for a context-free grammar. Grammars are immutable once
// constructed. Create one with a GrammarBuilder.
type Grammar struct {
	Name         string
	rules        []*Rule   // productions in declaration order
	start        *Rule     // augmented start rule S' -> S
	nonterminals []*Symbol // by Index, [0] is the start symbol
	terminals    []*Symbol // by Index, last is EOF
	ntByName     map[string]*Symbol
	tByName      map[string]*Symbol
	rulesFor     map[*Symbol][]*Rule
}

// Productions returns the productions of the grammar in declaration order.
// The augmented start rule is not included.
// The returned slice must not be modified.
func (g *Grammar) Productions() []*Rule {
	return g.rules
}

// Production returns production no. i, or nil if out of range.
func (g *Grammar) Production(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// AugmentedRule returns the rule S' -> S.
func (g *Grammar) AugmentedRule() *Rule {
	return g.start
}

// Start returns the start symbol S of the grammar (not S').
func (g *Grammar) Start() *Symbol {
	return g.nonterminals[0]
}

// NonTerminals returns the non-terminals, ordered by index. The first one is
// the start symbol.
func (g *Grammar) NonTerminals() []*Symbol {
	return g.nonterminals
}

// Terminals returns the terminals, ordered by index. The last one is the
// end-of-input marker.
func (g *Grammar) Terminals() []*Symbol {
	return g.terminals
}

// EOF returns the end-of-input marker $.
func (g *Grammar) EOF() *Symbol {
	return g.terminals[len(g.terminals)-1]
}

// ProductionsFor returns all productions with LHS A, in declaration order.
// For the augmented start symbol the augmented rule is returned.
func (g *Grammar) ProductionsFor(A *Symbol) []*Rule {
	if A == g.start.LHS {
		return []*Rule{g.start}
	}
	return g.rulesFor[A]
}

// NonTerminal returns the non-terminal with a given name, or nil.
func (g *Grammar) NonTerminal(name string) *Symbol {
	return g.ntByName[name]
}

// Terminal returns the terminal with a given name (without quotes), or nil.
func (g *Grammar) Terminal(name string) *Symbol {
	return g.tByName[name]
}

// SymbolByValue returns the symbol with a given Value, or nil.
func (g *Grammar) SymbolByValue(v int) *Symbol {
	switch {
	case v == 0:
		return Epsilon
	case v > 0 && v <= len(g.terminals):
		return g.terminals[v-1]
	case v < 0 && -v <= len(g.nonterminals):
		return g.nonterminals[-v-1]
	}
	return nil
}

// EachSymbol iterates over all symbols of the grammar: first the non-terminals,
// then the terminals, each ordered by index. This order is fixed for a given
// grammar and determines the numbering of CFSM states.
//
// Return values of the mapper function are collected and returned
// as an array.
func (g *Grammar) EachSymbol(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.nonterminals {
		r = append(r, mapper(A))
	}
	for _, A := range g.terminals {
		r = append(r, mapper(A))
	}
	return r
}

// EachNonTerminal iterates over all non-terminals of the grammar.
func (g *Grammar) EachNonTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.nonterminals {
		r = append(r, mapper(A))
	}
	return r
}

// EachTerminal iterates over all terminals of the grammar, including $.
func (g *Grammar) EachTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.terminals {
		r = append(r, mapper(A))
	}
	return r
}

// Dump is a debugging helper, tracing the grammar rules at debug level.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	tracer().Debugf("    : %v", g.start)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %v", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// --- Errors ----------------------------------------------------------------

// MalformedGrammarError is returned if a grammar cannot be constructed.
// Line and Text refer to the grammar source, if known (Line is 0 otherwise).
type MalformedGrammarError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedGrammarError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed grammar, line %d %q: %s", e.Line, e.Text, e.Reason)
	}
	return "malformed grammar: " + e.Reason
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Use it like this:
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("E").N("E").T("+").N("T").End()  // E -> E '+' T
//    b.LHS("E").N("T").End()                // E -> T
//    b.LHS("T").T("id").End()               // T -> 'id'
//    b.LHS("T").Epsilon()                   // T ->
//    g, err := b.Grammar()
//
// The first LHS encountered is the start symbol.
type GrammarBuilder struct {
	name      string
	heads     []string                // LHS names in order of first declaration
	declared  map[string]bool         // LHS names
	referrers map[string]*RuleBuilder // first rule referring to a non-terminal
	terminals []string                // terminal names in order of first appearance
	termseen  map[string]bool
	rules     []*RuleBuilder
	sigs      map[string]bool // signatures of rules, for duplicate detection
	err       error
	g         *Grammar
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		name:      gname,
		declared:  make(map[string]bool),
		referrers: make(map[string]*RuleBuilder),
		termseen:  make(map[string]bool),
		sigs:      make(map[string]bool),
	}
}

// RuleBuilder is a builder type for a single rule. Get one from GrammarBuilder.LHS.
type RuleBuilder struct {
	gb   *GrammarBuilder
	lhs  string
	rhs  []ruleSym
	line int
	text string
	done bool
}

type ruleSym struct {
	name     string
	terminal bool
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	rb := &RuleBuilder{gb: gb, lhs: s}
	return rb
}

// At records the source position of the rule, which is used for error messages.
func (rb *RuleBuilder) At(line int, text string) *RuleBuilder {
	rb.line, rb.text = line, text
	return rb
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, ruleSym{name: s})
	if _, ok := rb.gb.referrers[s]; !ok {
		rb.gb.referrers[s] = rb
	}
	return rb
}

// T appends a terminal to the builder. The terminal is given by its literal,
// without quotes.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, ruleSym{name: s, terminal: true})
	return rb
}

// End ends a rule.
func (rb *RuleBuilder) End() {
	rb.gb.appendRule(rb)
}

// Epsilon sets epsilon as the RHS of a production and ends the rule.
// Any symbols appended before will be dropped.
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = nil
	rb.gb.appendRule(rb)
}

func (gb *GrammarBuilder) appendRule(rb *RuleBuilder) {
	if rb.done || gb.err != nil {
		return
	}
	rb.done = true
	if gb.g != nil {
		gb.err = rb.malformed("grammar already completed")
		return
	}
	if rb.lhs == "" {
		gb.err = rb.malformed("production without head")
		return
	}
	var sig strings.Builder
	sig.WriteString(rb.lhs)
	for _, s := range rb.rhs {
		if s.name == "" {
			gb.err = rb.malformed("empty symbol in production body")
			return
		}
		if !s.terminal {
			sig.WriteString(" n:" + s.name)
			continue
		}
		if s.name == EOFName {
			gb.err = rb.malformed(fmt.Sprintf("terminal %q is reserved for end of input", EOFName))
			return
		}
		sig.WriteString(" t:" + s.name)
		if !gb.termseen[s.name] {
			gb.termseen[s.name] = true
			gb.terminals = append(gb.terminals, s.name)
		}
	}
	if gb.sigs[sig.String()] {
		gb.err = rb.malformed("duplicate production")
		return
	}
	gb.sigs[sig.String()] = true
	if !gb.declared[rb.lhs] {
		gb.declared[rb.lhs] = true
		gb.heads = append(gb.heads, rb.lhs)
	}
	gb.rules = append(gb.rules, rb)
	tracer().Debugf("appending rule %s -> %v", rb.lhs, rb.rhs)
}

func (rb *RuleBuilder) malformed(reason string) *MalformedGrammarError {
	return &MalformedGrammarError{Line: rb.line, Text: rb.text, Reason: reason}
}

// Grammar returns the (completed) grammar, or an error if the grammar is
// malformed. Every non-terminal referenced on a RHS has to be declared as the
// LHS of at least one rule.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if gb.g != nil {
		return gb.g, nil
	}
	if len(gb.rules) == 0 {
		return nil, &MalformedGrammarError{Reason: "grammar has no productions"}
	}
	for _, rb := range gb.rules { // report undeclared non-terminals in order of rules
		for _, s := range rb.rhs {
			if !s.terminal && !gb.declared[s.name] {
				return nil, gb.referrers[s.name].malformed(
					fmt.Sprintf("non-terminal %s is used but has no production", s.name))
			}
		}
	}
	g := &Grammar{
		Name:     gb.name,
		ntByName: make(map[string]*Symbol, len(gb.heads)),
		tByName:  make(map[string]*Symbol, len(gb.terminals)+1),
		rulesFor: make(map[*Symbol][]*Rule, len(gb.heads)),
	}
	for i, name := range gb.heads {
		A := &Symbol{Name: name, Index: i, Value: -(i + 1), kind: nonTerminalKind}
		g.nonterminals = append(g.nonterminals, A)
		g.ntByName[name] = A
	}
	for i, name := range append(gb.terminals, EOFName) {
		A := &Symbol{Name: name, Index: i, Value: i + 1, kind: terminalKind}
		g.terminals = append(g.terminals, A)
		g.tByName[name] = A
	}
	for serial, rb := range gb.rules {
		r := &Rule{Serial: serial, LHS: g.ntByName[rb.lhs]}
		for _, s := range rb.rhs {
			if s.terminal {
				r.rhs = append(r.rhs, g.tByName[s.name])
			} else {
				r.rhs = append(r.rhs, g.ntByName[s.name])
			}
		}
		g.rules = append(g.rules, r)
		g.rulesFor[r.LHS] = append(g.rulesFor[r.LHS], r)
	}
	startName := g.Start().Name + "'"
	for g.ntByName[startName] != nil {
		startName += "'"
	}
	// S' is not part of the non-terminal sequence and carries no valid index
	S := &Symbol{Name: startName, Index: -1, Value: -(len(g.nonterminals) + 1), kind: nonTerminalKind}
	g.start = &Rule{Serial: -1, LHS: S, rhs: []*Symbol{g.Start()}}
	gb.g = g
	tracer().Infof("grammar %q has %d productions, %d non-terminals, %d terminals",
		g.Name, len(g.rules), len(g.nonterminals), len(g.terminals))
	return g, nil
}
