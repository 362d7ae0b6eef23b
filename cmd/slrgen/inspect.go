package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/slrgen/emit"
	"github.com/npillmayer/slrgen/grammarfile"
	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/tokmap"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var lr0 bool
	cmd := &cobra.Command{
		Use:   "inspect GRAMMAR",
		Short: "Explore FIRST/FOLLOW sets, states and tables of a grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammarfile.LoadFile(args[0])
			if err != nil {
				pterm.Error.Println(err.Error())
				return err
			}
			intp := newInspector(g, lr0)
			repl, err := readline.New(g.Name + "> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp.REPL(repl)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lr0, "lr0", false, "use LR(0) instead of SLR(1) ACTION table")
	return cmd
}

// inspector evaluates commands for exploring a grammar.
type inspector struct {
	ga    *lr.LRAnalysis
	lrgen *lr.TableGenerator
}

func newInspector(g *lr.Grammar, lr0 bool) *inspector {
	intp := &inspector{ga: lr.Analysis(g)}
	intp.lrgen = lr.NewTableGenerator(intp.ga)
	if lr0 {
		intp.lrgen.CreateLR0Tables()
	} else {
		intp.lrgen.CreateTables()
	}
	return intp
}

// REPL starts interactive mode.
func (intp *inspector) REPL(repl *readline.Instance) {
	pterm.Info.Println(fmt.Sprintf("grammar %s: %d productions, %d states; type 'help' for commands",
		intp.ga.Grammar().Name, len(intp.ga.Grammar().Productions()), intp.lrgen.CFSM().Size()))
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, out, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
		pterm.Println(out)
	}
	println("Good bye!")
}

const inspectHelp = `first X      FIRST set of symbol X
follow N     FOLLOW set of non-terminal N
state N      items of state N
goto N X     transition of state N on symbol X
conflicts    conflicting ACTION table cells
table        ACTION and GOTO table
productions  list of productions
quit         leave`

// Eval evaluates a single command line.
func (intp *inspector) Eval(line string) (bool, string, error) {
	args := strings.Fields(line)
	g := intp.ga.Grammar()
	switch args[0] {
	case "quit", "exit":
		return true, "", nil
	case "help":
		return false, inspectHelp, nil
	case "first":
		A, err := intp.symbolArg(args, 1)
		if err != nil {
			return false, "", err
		}
		return false, intp.ga.First(A).String(), nil
	case "follow":
		A, err := intp.symbolArg(args, 1)
		if err != nil {
			return false, "", err
		}
		if A.IsTerminal() {
			return false, "", fmt.Errorf("FOLLOW is defined for non-terminals only")
		}
		return false, intp.ga.Follow(A).String(), nil
	case "state":
		s, err := intp.stateArg(args, 1)
		if err != nil {
			return false, "", err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "state %d", s.ID)
		if s.Accept {
			b.WriteString(" (accepting)")
		}
		for _, i := range s.Items() {
			b.WriteString("\n    " + i.String())
		}
		return false, b.String(), nil
	case "goto":
		s, err := intp.stateArg(args, 1)
		if err != nil {
			return false, "", err
		}
		A, err := intp.symbolArg(args, 2)
		if err != nil {
			return false, "", err
		}
		t, ok := intp.lrgen.CFSM().Goto(s, A)
		if !ok {
			return false, fmt.Sprintf("goto(%d, %v) is empty", s.ID, A), nil
		}
		return false, fmt.Sprintf("goto(%d, %v) = %d", s.ID, A, t.ID), nil
	case "conflicts":
		if !intp.lrgen.HasConflicts {
			return false, "no conflicts", nil
		}
		var lines []string
		for _, c := range intp.lrgen.Conflicts() {
			lines = append(lines, c.Describe(g))
		}
		lines = append(lines, fmt.Sprintf("conflicting states = %v", intp.lrgen.ConflictingStates()))
		return false, strings.Join(lines, "\n"), nil
	case "table":
		width := readline.GetScreenWidth()
		if width <= 0 {
			width = 120
		}
		return false, emit.TextTable(g, intp.lrgen.ActionTable(), intp.lrgen.GotoTable(),
			tokmap.Identity(), width), nil
	case "productions":
		var lines []string
		for _, r := range g.Productions() {
			lines = append(lines, fmt.Sprintf("%3d  %v", r.Serial, r))
		}
		return false, strings.Join(lines, "\n"), nil
	}
	return false, "", fmt.Errorf("unknown command %q, try 'help'", args[0])
}

// symbolArg finds a grammar symbol. Terminals may be given with or without
// quotes; a bare name is looked up as a non-terminal first.
func (intp *inspector) symbolArg(args []string, n int) (*lr.Symbol, error) {
	if len(args) <= n {
		return nil, fmt.Errorf("%s: symbol missing", args[0])
	}
	g := intp.ga.Grammar()
	name := args[n]
	if strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") && len(name) > 1 {
		if A := g.Terminal(name[1 : len(name)-1]); A != nil {
			return A, nil
		}
	} else if A := g.NonTerminal(name); A != nil {
		return A, nil
	} else if A := g.Terminal(name); A != nil {
		return A, nil
	}
	return nil, fmt.Errorf("%s: no symbol %s in grammar", args[0], name)
}

func (intp *inspector) stateArg(args []string, n int) (*lr.CFSMState, error) {
	if len(args) <= n {
		return nil, fmt.Errorf("%s: state missing", args[0])
	}
	id, err := strconv.Atoi(args[n])
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a state number", args[0], args[n])
	}
	s := intp.lrgen.CFSM().State(id)
	if s == nil {
		return nil, fmt.Errorf("%s: no state %d", args[0], id)
	}
	return s, nil
}
