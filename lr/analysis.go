package lr

import (
	"bytes"

	"golang.org/x/tools/container/intsets"
)

// LRAnalysis is an object for static analysis of a grammar. It computes the
// FIRST-sets for all symbols and FOLLOW-sets for all non-terminals.
//
// Grammars may be left-recursive or mutually recursive, therefore both kinds of
// sets are defined by a system of set equations with cyclic dependencies. We solve
// these by fixed-point iteration: every pass evaluates all the equations over all
// the rules, and passes are repeated until no set changes. Sets only grow and are
// bounded by the (finite) set of terminals, thus the iteration terminates.
type LRAnalysis struct {
	g      *Grammar
	first  map[*Symbol]*intsets.Sparse // FIRST(A) for non-terminals A
	follow map[*Symbol]*intsets.Sparse // FOLLOW(A) for non-terminals A
}

// Analysis creates an analyser for a grammar and computes FIRST and FOLLOW sets.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:      g,
		first:  make(map[*Symbol]*intsets.Sparse, len(g.nonterminals)+1),
		follow: make(map[*Symbol]*intsets.Sparse, len(g.nonterminals)+1),
	}
	ga.computeFirstSets()
	ga.computeFollowSets()
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(A). For a terminal A this is {A}, for Epsilon it's {ε}.
func (ga *LRAnalysis) First(A *Symbol) *TerminalSet {
	s := &TerminalSet{g: ga.g}
	switch {
	case A.IsEpsilon() || A.IsTerminal():
		s.set.Insert(A.Value)
	case ga.first[A] != nil:
		s.set.Copy(ga.first[A])
	}
	return s
}

// Follow returns FOLLOW(A) for a non-terminal A. FOLLOW-sets never contain ε.
func (ga *LRAnalysis) Follow(A *Symbol) *TerminalSet {
	s := &TerminalSet{g: ga.g}
	if f := ga.follow[A]; f != nil {
		s.set.Copy(f)
	}
	return s
}

// FirstOfSequence returns FIRST(X1 X2 … Xn) for a string of symbols.
// FIRST of the empty sequence is {ε}.
func (ga *LRAnalysis) FirstOfSequence(syms []*Symbol) *TerminalSet {
	s := &TerminalSet{g: ga.g}
	ga.firstOfSequence(syms, &s.set)
	return s
}

// DerivesEpsilon is true if A ⇒* ε.
func (ga *LRAnalysis) DerivesEpsilon(A *Symbol) bool {
	if A.IsEpsilon() {
		return true
	}
	if f := ga.first[A]; f != nil {
		return f.Has(Epsilon.Value)
	}
	return false
}

// firstOfSequence adds FIRST(syms) to dest, using the current (possibly
// incomplete) FIRST-sets of non-terminals.
func (ga *LRAnalysis) firstOfSequence(syms []*Symbol, dest *intsets.Sparse) {
	var fA intsets.Sparse
	for _, A := range syms {
		if A.IsTerminal() {
			dest.Insert(A.Value)
			return
		}
		fA.Copy(ga.first[A])
		nullable := fA.Remove(Epsilon.Value)
		dest.UnionWith(&fA)
		if !nullable {
			return
		}
	}
	dest.Insert(Epsilon.Value) // every symbol may derive ε, or syms is empty
}

func (ga *LRAnalysis) allRules() []*Rule {
	return append([]*Rule{ga.g.start}, ga.g.rules...)
}

func (ga *LRAnalysis) computeFirstSets() {
	for _, A := range ga.g.nonterminals {
		ga.first[A] = &intsets.Sparse{}
	}
	ga.first[ga.g.start.LHS] = &intsets.Sparse{}
	rules := ga.allRules()
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for _, r := range rules {
			var f intsets.Sparse
			ga.firstOfSequence(r.rhs, &f)
			if ga.first[r.LHS].UnionWith(&f) {
				changed = true
			}
		}
	}
	tracer().Debugf("FIRST sets stable after %d passes", passes)
	for _, A := range ga.g.nonterminals {
		tracer().Debugf("FIRST(%s) = %v", A, ga.First(A))
	}
}

func (ga *LRAnalysis) computeFollowSets() {
	for _, A := range ga.g.nonterminals {
		ga.follow[A] = &intsets.Sparse{}
	}
	Sprime := ga.g.start.LHS
	ga.follow[Sprime] = &intsets.Sparse{}
	ga.follow[Sprime].Insert(ga.g.EOF().Value)
	ga.follow[ga.g.Start()].Insert(ga.g.EOF().Value)
	rules := ga.allRules()
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for _, r := range rules { // B -> α A β
			B := r.LHS
			for n, A := range r.rhs {
				if A.IsTerminal() {
					continue
				}
				var fbeta intsets.Sparse
				ga.firstOfSequence(r.rhs[n+1:], &fbeta)
				betaNullable := fbeta.Remove(Epsilon.Value)
				if ga.follow[A].UnionWith(&fbeta) {
					changed = true
				}
				if betaNullable && B != A {
					if ga.follow[A].UnionWith(ga.follow[B]) {
						changed = true
					}
				}
			}
		}
	}
	tracer().Debugf("FOLLOW sets stable after %d passes", passes)
	for _, A := range ga.g.nonterminals {
		tracer().Debugf("FOLLOW(%s) = %v", A, ga.Follow(A))
	}
}

// --- Terminal sets ---------------------------------------------------------

// TerminalSet is a set of terminals, possibly including Epsilon. It is the
// result type for FIRST- and FOLLOW-queries. Iteration order is by symbol
// value, i.e. ε first, then terminals by index.
type TerminalSet struct {
	set intsets.Sparse
	g   *Grammar
}

// Contains checks if A is a member of the set.
func (s *TerminalSet) Contains(A *Symbol) bool {
	return A != nil && (A.IsTerminal() || A.IsEpsilon()) && s.set.Has(A.Value)
}

// ContainsEpsilon is a shortcut for s.Contains(Epsilon).
func (s *TerminalSet) ContainsEpsilon() bool {
	return s.set.Has(Epsilon.Value)
}

// Len returns the number of members.
func (s *TerminalSet) Len() int {
	return s.set.Len()
}

// Symbols returns the members of the set.
func (s *TerminalSet) Symbols() []*Symbol {
	vals := s.set.AppendTo(nil)
	syms := make([]*Symbol, 0, len(vals))
	for _, v := range vals {
		syms = append(syms, s.g.SymbolByValue(v))
	}
	return syms
}

// AppendTo appends the symbol values of the members to a slice, in increasing order.
func (s *TerminalSet) AppendTo(vals []int) []int {
	return s.set.AppendTo(vals)
}

func (s *TerminalSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for n, A := range s.Symbols() {
		if n > 0 {
			b.WriteString(", ")
		}
		b.WriteString(A.String())
	}
	b.WriteString("}")
	return b.String()
}
