package lr

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/slrgen/lr/iteratable"
)

// Item is an LR(0) item, i.e. a rule together with a dot position.
//
//    E -> E * '+' T
//
// Items are values. As every production of a grammar is unique, two items are
// equal if and only if their heads, bodies and dot positions are equal.
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the Item for a rule with the dot at position 0, together
// with the symbol after the dot (or nil for epsilon rules).
func StartItem(r *Rule) (Item, *Symbol) {
	if r == nil {
		panic("lr.StartItem: rule is nil")
	}
	i := Item{rule: r}
	return i, i.PeekSymbol()
}

// Rule returns the grammar rule of this item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot in the RHS.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, if any.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Completed is true if the dot is behind the complete RHS.
func (i Item) Completed() bool {
	return i.dot >= len(i.rule.rhs)
}

// Advance returns the item with the dot moved one symbol to the right.
// Advancing a completed item is an error.
func (i Item) Advance() Item {
	if i.Completed() {
		panic(fmt.Sprintf("lr.Item.Advance: cannot advance completed item %v", i))
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the symbols of the RHS before the dot.
func (i Item) Prefix() []*Symbol {
	return i.rule.rhs[:i.dot]
}

// String renders an item with the dot as an asterisk, e.g. "E -> E * '+' T".
func (i Item) String() string {
	var b strings.Builder
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" ->")
	for n, A := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" *")
		}
		b.WriteByte(' ')
		b.WriteString(A.String())
	}
	if i.Completed() {
		b.WriteString(" *")
	}
	return b.String()
}

func asItem(x interface{}) Item {
	return x.(Item)
}

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(0)
}

// itemSetKey creates a canonical key for an item set. Keys of two item sets are
// equal if and only if the sets contain the same items.
func itemSetKey(S *iteratable.Set) string {
	pairs := make([][2]int, 0, S.Size())
	for _, x := range S.Values() {
		i := asItem(x)
		pairs = append(pairs, [2]int{i.rule.Serial, i.dot})
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a][0] == pairs[b][0] {
			return pairs[a][1] < pairs[b][1]
		}
		return pairs[a][0] < pairs[b][0]
	})
	var b bytes.Buffer
	for _, p := range pairs {
		fmt.Fprintf(&b, "%d.%d;", p[0], p[1])
	}
	return b.String()
}

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, x := range S.Values() {
		item := asItem(x)
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump is a debugging helper, tracing the items of an item set.
func Dump(S *iteratable.Set) {
	for n, x := range S.Values() {
		tracer().Debugf("[%2d] %s", n+1, asItem(x))
	}
}
