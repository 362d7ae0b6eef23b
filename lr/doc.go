/*
Package lr implements the construction of SLR(1) parser tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
are opaque literals; mapping them to token tags of a downstream parser
is left to clients. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()    // S  ->  A 'a'
    b.LHS("A").N("B").N("D").End()    // A  ->  B D
    b.LHS("B").T("b").End()           // B  ->  'b'
    b.LHS("B").Epsilon()              // B  ->
    b.LHS("D").T("d").End()           // D  ->  'd'
    b.LHS("D").Epsilon()              // D  ->
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: S -> A 'a'
   1: A -> B D
   2: B -> 'b'
   3: B ->
   4: D -> 'd'
   5: D ->

The grammar is implicitly augmented with a rule S' -> S. The augmented rule
is not part of the production list, thus production indices are exactly the
positions of the productions in declaration order.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar and determines all epsilon-derivable rules.

Although FIRST and FOLLOW-sets are mainly intended to be used for internal
purposes of constructing the parser tables, methods for getting FIRST(N)
and FOLLOW(N) of non-terminals are defined to be public.

    ga := lr.Analysis(g)  // analyser for grammar above
    ga.Grammar().EachNonTerminal(
        func(N *lr.Symbol) interface{} {                      // ad-hoc mapper function
            fmt.Printf("FIRST(%s) = %v\n", N, ga.First(N))   // get FIRST-set for N
            return nil
        })

    // Output:
    FIRST(S) = {'a', 'b', 'd'}
    FIRST(A) = {ε, 'b', 'd'}
    FIRST(B) = {ε, 'b'}
    FIRST(D) = {ε, 'd'}

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into a GOTO table (LR(0)-table)
and an ACTION table for a SLR(1) parser. The CFSM will not be thrown away,
but is made available to the client. This is intended
for debugging purposes, but may be useful for error recovery, too.
It can be exported to Graphviz's Dot-format (see package emit).

Example:

    lrgen := lr.NewTableGenerator(ga)  // ga is a LRAnalysis, see above
    lrgen.CreateTables()               // construct LR parser tables
    if lrgen.HasConflicts {
        for _, c := range lrgen.Conflicts() { … }
    }

Conflicts are never resolved. Every cell of the ACTION table is a set of actions,
and cells with more than one action are reported as conflicts.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("slrgen.lr")
}
