/*
Package slrgen is a generator for SLR(1) parser tables.

Given a context-free grammar, slrgen computes FIRST and FOLLOW sets,
builds the canonical collection of LR(0) item sets and synthesizes
ACTION and GOTO tables for a hand-written shift-reduce parser. Grammar
conflicts are reported, never resolved. Package structure is as follows:

■ lr: Package lr implements the grammar model, grammar analysis, the
characteristic finite state machine and the parser tables.

■ grammarfile: Package grammarfile reads grammars from their textual form.

■ tokmap: Package tokmap maps terminal literals to the token tags of the
downstream parser.

■ emit: Package emit writes the generated tables, the production list and
the automaton graph.

■ cache: Package cache stores snapshots of an automaton between runs.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slrgen
