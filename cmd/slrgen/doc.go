/*
Command slrgen generates SLR(1) parser tables from a grammar file.

    slrgen [flags] GRAMMAR
    slrgen inspect GRAMMAR

The first form writes the ACTION table, the GOTO table, the list of
productions and a cached automaton to an output directory, optionally
a Graphviz drawing of the automaton, too. Conflicts in the ACTION table are
reported, but do not stop generation.

The second form starts an interactive session for exploring FIRST and
FOLLOW sets, states and tables of a grammar.

Settings may be stored in a TOML file, by default 'slrgen.toml' in the
folder of the grammar:

    outdir = "gen"
    [files]
    action = "action.txt"
    [emit]
    graph = true
    [tokens]
    "'+'" = "Token::Plus"

Flags override settings from the file.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrgen.cli'
func tracer() tracing.Trace {
	return tracing.Select("slrgen.cli")
}

// traceKeys are the keys of all packages of this module.
var traceKeys = []string{
	"slrgen.cli",
	"slrgen.lr",
	"slrgen.grammar",
	"slrgen.scanner",
	"slrgen.emit",
	"slrgen.cache",
}
