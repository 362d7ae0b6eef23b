package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/slrgen/lr/iteratable"
	"github.com/npillmayer/slrgen/lr/sparse"
)

// https://www.cs.bgu.ac.il/~comp151/wiki.files/ps6.html#sec-2-7-3

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Compute the closure of an item.
func (g *Grammar) closure(i Item) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return g.closureSet(S)
}

// Compute the closure of an item set. For every item N -> … * A … with a
// non-terminal A after the dot, add A -> * α for all rules of A, until no
// more items are added. The resulting set does not depend on the order of
// insertion.
func (g *Grammar) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		A := item.PeekSymbol()           // get symbol A after dot
		if A != nil && !A.IsTerminal() { // A is non-terminal
			for _, r := range g.ProductionsFor(A) {
				i, _ := StartItem(r)
				C.Add(i)
			}
		}
	}
	return C
}

func (g *Grammar) gotoSet(closure *iteratable.Set, A *Symbol) (*iteratable.Set, *Symbol) {
	// for every item in closure C
	// if item in C:  N -> ... *A ...
	//     advance N -> ... A * ...
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset, A
}

// gotoSetClosure computes goto(I, A) = closure({ N -> … A * … | N -> … * A … ∈ I }).
// I has to be closed.
func (g *Grammar) gotoSetClosure(i *iteratable.Set, A *Symbol) (*iteratable.Set, *Symbol) {
	gotoset, _ := g.gotoSet(i, A)
	if gotoset.Empty() {
		return gotoset, A
	}
	gclosure := g.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(i), A, itemSetString(gclosure))
	return gclosure, A
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
// States are immutable once they have been discovered.
type CFSMState struct {
	ID     int             // serial ID of this state
	items  *iteratable.Set // configuration items within this state
	key    string          // canonical key of the item set
	Accept bool            // does this state contain the completed item S' -> S * ?
}

// Edge is a CFSM edge between 2 states, directed and labeled with a grammar symbol.
type Edge struct {
	From  *CFSMState
	To    *CFSMState
	Label *Symbol
}

// Items returns the items of a state, kernel items first.
func (s *CFSMState) Items() []Item {
	items := make([]Item, 0, s.items.Size())
	for _, x := range s.items.Values() {
		items = append(items, asItem(x))
	}
	return items
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

// Create a state from an item set
func state(id int, iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: id}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	s.key = itemSetKey(s.items)
	return s
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

// The accepting state is identified by the completed augmented start rule,
// never by its ID.
func (s *CFSMState) containsCompletedStartRule(g *Grammar) bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule == g.start && i.Completed() {
			return true
		}
	}
	return false
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
type CFSM struct {
	g       *Grammar              // this CFSM is for Grammar g
	states  *treeset.Set          // all the states
	edges   *arraylist.List       // all the edges between states
	S0      *CFSMState            // start state
	cfsmIds int                   // serial IDs for CFSM states
	byKey   map[string]*CFSMState // canonical item set key -> state
	trans   map[transition]*Edge  // transition function
}

type transition struct {
	from int
	sym  *Symbol
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	c.byKey = make(map[string]*CFSMState)
	c.trans = make(map[transition]*Edge)
	return c
}

// Grammar returns the grammar of this CFSM.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	r := make([]*CFSMState, 0, c.states.Size())
	for _, x := range c.states.Values() {
		r = append(r, x.(*CFSMState))
	}
	return r
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= c.states.Size() {
		return nil
	}
	// IDs are dense, so the position in the ordered set is the ID
	return c.states.Values()[id].(*CFSMState)
}

// Edges returns all edges, in order of creation.
func (c *CFSM) Edges() []*Edge {
	r := make([]*Edge, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		r = append(r, it.Value().(*Edge))
	}
	return r
}

// Goto returns the state reached from s by a transition labeled with A.
func (c *CFSM) Goto(s *CFSMState, A *Symbol) (*CFSMState, bool) {
	e, ok := c.trans[transition{from: s.ID, sym: A}]
	if !ok {
		return nil, false
	}
	return e.To, true
}

// MustGoto is like Goto, but panics if the transition does not exist. A
// missing transition is a programming error.
func (c *CFSM) MustGoto(s *CFSMState, A *Symbol) *CFSMState {
	to, ok := c.Goto(s, A)
	if !ok {
		panic(fmt.Sprintf("lr.CFSM: no transition from state %d on symbol %v", s.ID, A))
	}
	return to
}

// AcceptingStates returns the IDs of states containing the completed start rule.
func (c *CFSM) AcceptingStates() []int {
	acc := make([]int, 0, 1)
	for _, s := range c.States() {
		if s.Accept {
			acc = append(acc, s.ID)
		}
	}
	return acc
}

// Add a state to the CFSM. Checks first if state is present. Returns the state
// and true if it is a new one.
func (c *CFSM) addState(iset *iteratable.Set) (*CFSMState, bool) {
	if s := c.findStateByItems(iset); s != nil {
		return s, false
	}
	s := state(c.cfsmIds, iset)
	s.Accept = s.containsCompletedStartRule(c.g)
	c.cfsmIds++
	c.states.Add(s)
	c.byKey[s.key] = s
	return s, true
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *iteratable.Set) *CFSMState {
	if s, ok := c.byKey[itemSetKey(iset)]; ok && s.items.Equals(iset) {
		return s
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *Edge {
	t := transition{from: s0.ID, sym: sym}
	if e, ok := c.trans[t]; ok {
		if e.To != s1 {
			panic(fmt.Sprintf("lr.CFSM: ambiguous transition from state %d on %v", s0.ID, sym))
		}
		return e
	}
	e := &Edge{From: s0, To: s1, Label: sym}
	c.edges.Add(e)
	c.trans[t] = e
	return e
}

// BuildCFSM constructs the characteristic finite state machine for a grammar.
//
// States are discovered breadth-first, starting with state 0 = closure({S' -> * S}).
// For every state, symbols are tried in the order implied by Grammar.EachSymbol,
// thus the numbering of states is reproducible.
func BuildCFSM(g *Grammar) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(g)
	item, sym := StartItem(g.start)
	tracer().Debugf("Start item=%v/%v", item, sym)
	closure0 := g.closure(item)
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	worklist := []*CFSMState{cfsm.S0}
	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		g.EachSymbol(func(A *Symbol) interface{} {
			gotoset, _ := g.gotoSetClosure(s.items, A)
			if gotoset.Empty() {
				return nil
			}
			tracer().Debugf("checking goto-set for symbol = %v", A)
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				worklist = append(worklist, snew)
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
			return nil
		})
		tracer().Debugf("-----------------------------------------------------------------")
	}
	tracer().Infof("CFSM for %q has %d states and %d edges", g.Name, cfsm.Size(), cfsm.edges.Size())
	return cfsm
}

// --- Snapshots -------------------------------------------------------------

// ItemRef references an item by production index and dot position.
// The augmented start rule has production index -1.
type ItemRef struct {
	Production int
	Dot        int
}

// EdgeRef references a CFSM edge by state IDs and symbol value.
type EdgeRef struct {
	From, To int
	Symbol   int
}

// Snapshot exports the states (as lists of items, ordered by state ID) and edges
// of a CFSM.
func (c *CFSM) Snapshot() ([][]ItemRef, []EdgeRef) {
	states := make([][]ItemRef, 0, c.Size())
	for _, s := range c.States() {
		refs := make([]ItemRef, 0, s.items.Size())
		for _, i := range s.Items() {
			refs = append(refs, ItemRef{Production: i.rule.Serial, Dot: i.dot})
		}
		states = append(states, refs)
	}
	edges := make([]EdgeRef, 0, c.edges.Size())
	for _, e := range c.Edges() {
		edges = append(edges, EdgeRef{From: e.From.ID, To: e.To.ID, Symbol: e.Label.Value})
	}
	return states, edges
}

// RestoreCFSM re-creates a CFSM for grammar g from a snapshot. It returns an
// error if the snapshot does not fit the grammar.
func RestoreCFSM(g *Grammar, states [][]ItemRef, edges []EdgeRef) (*CFSM, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("CFSM snapshot has no states")
	}
	cfsm := emptyCFSM(g)
	for n, refs := range states {
		iset := newItemSet()
		for _, ref := range refs {
			r := g.start
			if ref.Production >= 0 {
				r = g.Production(ref.Production)
			}
			if r == nil || ref.Dot < 0 || ref.Dot > r.Len() {
				return nil, fmt.Errorf("CFSM snapshot: invalid item %v in state %d", ref, n)
			}
			iset.Add(Item{rule: r, dot: ref.Dot})
		}
		if _, isNew := cfsm.addState(iset); !isNew {
			return nil, fmt.Errorf("CFSM snapshot: state %d is a duplicate", n)
		}
	}
	cfsm.S0 = cfsm.State(0)
	all := cfsm.States()
	for _, ref := range edges {
		A := g.SymbolByValue(ref.Symbol)
		if A == nil || A.IsEpsilon() || ref.From < 0 || ref.From >= len(all) || ref.To < 0 || ref.To >= len(all) {
			return nil, fmt.Errorf("CFSM snapshot: invalid edge %v", ref)
		}
		if _, dup := cfsm.trans[transition{from: ref.From, sym: A}]; dup {
			return nil, fmt.Errorf("CFSM snapshot: duplicate transition from state %d on %v", ref.From, A)
		}
		cfsm.addEdge(all[ref.From], all[ref.To], A)
	}
	if err := cfsm.verify(); err != nil {
		return nil, err
	}
	return cfsm, nil
}

// verify checks a restored CFSM against the grammar: state 0 has to be the
// start closure and every transition has to match goto(state, symbol).
func (c *CFSM) verify() error {
	start, _ := StartItem(c.g.start)
	if !c.S0.items.Equals(c.g.closure(start)) {
		return fmt.Errorf("CFSM snapshot: state 0 is not the start state")
	}
	var err error
	for _, s := range c.States() {
		c.g.EachSymbol(func(A *Symbol) interface{} {
			if err != nil {
				return nil
			}
			gotoset, _ := c.g.gotoSetClosure(s.items, A)
			to, ok := c.Goto(s, A)
			switch {
			case gotoset.Empty() && ok:
				err = fmt.Errorf("CFSM snapshot: spurious transition from state %d on %v", s.ID, A)
			case !gotoset.Empty() && !ok:
				err = fmt.Errorf("CFSM snapshot: missing transition from state %d on %v", s.ID, A)
			case ok && !to.items.Equals(gotoset):
				err = fmt.Errorf("CFSM snapshot: wrong target for transition from state %d on %v", s.ID, A)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// === Parser Tables =========================================================

// ActionKind is the kind of a parser action.
type ActionKind int8

// Actions for parser action tables.
const (
	ShiftAction ActionKind = iota + 1
	ReduceAction
	AcceptAction
)

// Action is an entry in an ACTION table.
// For shift actions, Target is the state to shift to. For reduce actions,
// Target is the production index and Length is the length of the production's RHS.
type Action struct {
	Kind   ActionKind
	Target int
	Length int
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("Shift(%d)", a.Target)
	case ReduceAction:
		return fmt.Sprintf("Reduce(%d, %d)", a.Target, a.Length)
	case AcceptAction:
		return "Accept"
	}
	return "<none>"
}

// Actions are stored in sparse matrices as int32 values. Ordering of the
// codes is: shift < reduce < accept, then by target.
const targetBits = 24

func (a Action) code() int32 {
	return int32(a.Kind)<<targetBits | int32(a.Target)
}

func decodeAction(v int32, g *Grammar) Action {
	a := Action{
		Kind:   ActionKind(v >> targetBits),
		Target: int(v & (1<<targetBits - 1)),
	}
	if a.Kind == ReduceAction {
		a.Length = g.Production(a.Target).Len()
	}
	return a
}

// ActionTable is the ACTION table of a parser: for each (state, terminal) a set of actions.
type ActionTable struct {
	matrix *sparse.IntMatrix
	g      *Grammar
}

func newActionTable(g *Grammar, statescnt int) *ActionTable {
	return &ActionTable{
		matrix: sparse.NewIntMatrix(statescnt, len(g.terminals), sparse.DefaultNullValue),
		g:      g,
	}
}

func (t *ActionTable) add(state int, A *Symbol, a Action) {
	t.matrix.Add(state, A.Index, a.code())
}

// Actions returns the actions for state and terminal A, or nil.
func (t *ActionTable) Actions(state int, A *Symbol) []Action {
	return t.decode(t.matrix.Values(state, A.Index))
}

func (t *ActionTable) decode(vals []int32) []Action {
	if len(vals) == 0 {
		return nil
	}
	actions := make([]Action, len(vals))
	for k, v := range vals {
		actions[k] = decodeAction(v, t.g)
	}
	return actions
}

// Each calls f for every non-empty cell, ordered by state, then by terminal index.
func (t *ActionTable) Each(f func(state int, A *Symbol, actions []Action)) {
	t.matrix.Each(func(i, j int, vals []int32) {
		f(i, t.g.terminals[j], t.decode(vals))
	})
}

// StateCount returns the number of rows.
func (t *ActionTable) StateCount() int {
	return t.matrix.M()
}

// GotoTable is the GOTO table of a parser: for each (state, non-terminal) the next state.
type GotoTable struct {
	matrix *sparse.IntMatrix
	g      *Grammar
}

// Goto returns the target state for a state and non-terminal A.
func (t *GotoTable) Goto(state int, A *Symbol) (int, bool) {
	v := t.matrix.Value(state, A.Index)
	if v == t.matrix.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Each calls f for every defined entry, ordered by state, then by non-terminal index.
func (t *GotoTable) Each(f func(state int, A *Symbol, target int)) {
	t.matrix.Each(func(i, j int, vals []int32) {
		f(i, t.g.nonterminals[j], int(vals[0]))
	})
}

// Conflict is an ACTION table cell with more than one action.
type Conflict struct {
	State   int
	Symbol  *Symbol
	Actions []Action
}

// IsShiftReduce is true if the conflicting actions include a shift.
func (c Conflict) IsShiftReduce() bool {
	for _, a := range c.Actions {
		if a.Kind == ShiftAction {
			return true
		}
	}
	return false
}

func (c Conflict) String() string {
	acts := make([]string, len(c.Actions))
	for k, a := range c.Actions {
		acts[k] = a.String()
	}
	return fmt.Sprintf("(%d, %v) => %s", c.State, c.Symbol, strings.Join(acts, ", "))
}

// Describe spells out a conflict with the productions involved, e.g.
//
//    (6, 'else') -> shift 7, reduce by S -> 'if' E 'then' S
//
func (c Conflict) Describe(g *Grammar) string {
	acts := make([]string, len(c.Actions))
	for k, a := range c.Actions {
		switch a.Kind {
		case ShiftAction:
			acts[k] = fmt.Sprintf("shift %d", a.Target)
		case ReduceAction:
			acts[k] = fmt.Sprintf("reduce by %v", g.Production(a.Target))
		default:
			acts[k] = "accept"
		}
	}
	return fmt.Sprintf("(%d, %v) -> %s", c.State, c.Symbol, strings.Join(acts, ", "))
}

// ===========================================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *GotoTable
	actiontable  *ActionTable
	conflicts    []Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// UseCFSM sets a pre-computed CFSM, e.g. one restored from a cache. It has to
// be called before CreateTables().
func (lrgen *TableGenerator) UseCFSM(c *CFSM) {
	if c.g != lrgen.g {
		panic("lr.TableGenerator: CFSM is for a different grammar")
	}
	lrgen.dfa = c
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = BuildCFSM(lrgen.g)
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously (or a separate call to
// BuildGotoTable(...).)
func (lrgen *TableGenerator) GotoTable() *GotoTable {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously (or a separate call to
// BuildSLR1ActionTable(...).)
func (lrgen *TableGenerator) ActionTable() *ActionTable {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// Conflicts returns all conflicting cells of the ACTION table, ordered by state
// and terminal. Clients have to call CreateTables() first.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// ConflictingStates returns the distinct IDs of states with conflicts, in increasing order.
func (lrgen *TableGenerator) ConflictingStates() []int {
	ids := make([]int, 0, len(lrgen.conflicts))
	for _, c := range lrgen.conflicts {
		ids = append(ids, c.State)
	}
	return unique(ids)
}

// CreateTables creates the necessary data structures for an SLR parser.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.CFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable, lrgen.HasConflicts = lrgen.BuildSLR1ActionTable()
}

// CreateLR0Tables is like CreateTables, but uses an LR(0) ACTION table.
func (lrgen *TableGenerator) CreateLR0Tables() {
	lrgen.CFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable, lrgen.HasConflicts = lrgen.BuildLR0ActionTable()
}

// AcceptingStates returns all states of the CFSM which represent an accept action.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []int {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	return lrgen.dfa.AcceptingStates()
}

// BuildGotoTable builds the GOTO table. This is normally not called directly, but rather
// via CreateTables().
func (lrgen *TableGenerator) BuildGotoTable() *GotoTable {
	dfa := lrgen.CFSM()
	statescnt := dfa.Size()
	tracer().Infof("GOTO table of size %d x %d", statescnt, len(lrgen.g.nonterminals))
	gototable := &GotoTable{
		matrix: sparse.NewIntMatrix(statescnt, len(lrgen.g.nonterminals), sparse.DefaultNullValue),
		g:      lrgen.g,
	}
	for _, e := range dfa.Edges() {
		if !e.Label.IsTerminal() {
			gototable.matrix.Set(e.From.ID, e.Label.Index, int32(e.To.ID))
		}
	}
	return gototable
}

// BuildLR0ActionTable contructs the LR(0) Action table. This method is not called by
// CreateTables(), as we normally use an SLR(1) parser and therefore an action table with
// lookahead included. This method is provided as an add-on.
func (lrgen *TableGenerator) BuildLR0ActionTable() (*ActionTable, bool) {
	actions := newActionTable(lrgen.g, lrgen.CFSM().Size())
	tracer().Infof("ACTION.0 table of size %d x %d", actions.matrix.M(), actions.matrix.N())
	return lrgen.buildActionTable(actions, false)
}

// BuildSLR1ActionTable constructs the SLR(1) Action table. This method is normally not called
// by clients, but rather via CreateTables(). It builds an action table including
// lookahead (using the FOLLOW-set created by the grammar analyzer).
func (lrgen *TableGenerator) BuildSLR1ActionTable() (*ActionTable, bool) {
	actions := newActionTable(lrgen.g, lrgen.CFSM().Size())
	tracer().Infof("ACTION.1 table of size %d x %d", actions.matrix.M(), actions.matrix.N())
	return lrgen.buildActionTable(actions, true)
}

// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry. If an item's dot is behind the complete RHS of a rule,
// then
// - for the LR(0) case: we produce a reduce-entry for the rule for every terminal
// - for the SLR case: we produce a reduce-entry for for the rule for each
//   terminal from FOLLOW(LHS).
// The completed augmented start rule produces an accept entry for $.
//
// Every cell of the table is a set of actions. Cells with more than one action
// are shift/reduce- or reduce/reduce-conflicts; they are reported, not resolved.
func (lrgen *TableGenerator) buildActionTable(actions *ActionTable, slr1 bool) (*ActionTable, bool) {
	dfa := lrgen.CFSM()
	eof := lrgen.g.EOF()
	for _, state := range dfa.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.Items() {
			A := i.PeekSymbol()
			tracer().Debugf("item in s%d = %v, symbol at dot = %v", state.ID, i, A)
			if A != nil && A.IsTerminal() { // create a shift entry
				next := dfa.MustGoto(state, A)
				tracer().Debugf("    creating shift action entry --%v--> %d", A, next.ID)
				actions.add(state.ID, A, Action{Kind: ShiftAction, Target: next.ID})
				continue
			}
			if A != nil {
				continue
			}
			// we are at the end of a rule
			if i.rule == lrgen.g.start {
				tracer().Debugf("    creating accept action entry @ %v", eof)
				actions.add(state.ID, eof, Action{Kind: AcceptAction})
				continue
			}
			reduce := Action{Kind: ReduceAction, Target: i.rule.Serial, Length: i.rule.Len()}
			if slr1 {
				lookaheads := lrgen.ga.Follow(i.rule.LHS)
				tracer().Debugf("    Follow(%v) = %v", i.rule.LHS, lookaheads)
				for _, la := range lookaheads.Symbols() {
					tracer().Debugf("    creating reduce_%d action entry @ %v for %v", i.rule.Serial, la, i.rule)
					actions.add(state.ID, la, reduce)
				}
			} else {
				tracer().Debugf("    creating reduce_%d action entry for %v", i.rule.Serial, i.rule)
				for _, la := range lrgen.g.terminals {
					actions.add(state.ID, la, reduce)
				}
			}
		}
	}
	lrgen.conflicts = nil
	actions.Each(func(state int, A *Symbol, acts []Action) {
		if len(acts) > 1 {
			c := Conflict{State: state, Symbol: A, Actions: acts}
			tracer().Infof("conflict %v", c)
			lrgen.conflicts = append(lrgen.conflicts, c)
		}
	})
	return actions, len(lrgen.conflicts) > 0
}

// ----------------------------------------------------------------------

func unique(in []int) []int { // from slice tricks
	if len(in) == 0 {
		return in
	}
	sort.Ints(in)
	j := 0
	for i := 1; i < len(in); i++ {
		if in[j] == in[i] {
			continue
		}
		j++
		in[j] = in[i] // only set what is required
	}
	result := in[:j+1]
	return result
}
