/*
Package cache stores CFSMs in a binary file, to avoid re-computing the
automaton for an unchanged grammar.

A cached automaton carries a fingerprint of the grammar it was built for.
Loading it for a different grammar fails with ErrStale; callers are expected
to re-build the CFSM in this case, as the cache is an optimization only.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cache

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cnf/structhash"
	"github.com/dekarrin/rezi"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrgen/lr"
)

// tracer traces with key 'slrgen.cache'.
func tracer() tracing.Trace {
	return tracing.Select("slrgen.cache")
}

// ErrStale is returned when a cached automaton belongs to a different grammar.
var ErrStale = errors.New("automaton cache is stale")

const (
	magic         = "SLRA"
	formatVersion = 1
)

// grammarShape is what the fingerprint is computed from. State numbering
// depends on names, order of productions and order of symbols, so all of
// them go into it.
type grammarShape struct {
	Productions  []string
	NonTerminals []string
	Terminals    []string
}

// Fingerprint computes a fingerprint for g. Grammar names do not contribute.
func Fingerprint(g *lr.Grammar) (string, error) {
	shape := grammarShape{}
	for _, r := range g.Productions() {
		shape.Productions = append(shape.Productions, r.String())
	}
	for _, A := range g.NonTerminals() {
		shape.NonTerminals = append(shape.NonTerminals, A.Name)
	}
	for _, A := range g.Terminals() {
		shape.Terminals = append(shape.Terminals, A.String())
	}
	return structhash.Hash(shape, formatVersion)
}

// Automaton is the serializable form of a CFSM.
type Automaton struct {
	Fingerprint string
	States      [][]lr.ItemRef
	Edges       []lr.EdgeRef
}

// New creates the serializable form of a CFSM.
func New(cfsm *lr.CFSM) (*Automaton, error) {
	fp, err := Fingerprint(cfsm.Grammar())
	if err != nil {
		return nil, err
	}
	states, edges := cfsm.Snapshot()
	return &Automaton{Fingerprint: fp, States: states, Edges: edges}, nil
}

// CFSM restores the automaton for grammar g. It returns ErrStale if the
// automaton has been built for a different grammar.
func (a *Automaton) CFSM(g *lr.Grammar) (*lr.CFSM, error) {
	fp, err := Fingerprint(g)
	if err != nil {
		return nil, err
	}
	if fp != a.Fingerprint {
		return nil, ErrStale
	}
	return lr.RestoreCFSM(g, a.States, a.Edges)
}

// MarshalBinary encodes the automaton.
func (a *Automaton) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, magic...)
	data = append(data, rezi.EncInt(formatVersion)...)
	data = append(data, rezi.EncString(a.Fingerprint)...)
	data = append(data, rezi.EncInt(len(a.States))...)
	for _, items := range a.States {
		data = append(data, rezi.EncInt(len(items))...)
		for _, i := range items {
			data = append(data, rezi.EncInt(i.Production)...)
			data = append(data, rezi.EncInt(i.Dot)...)
		}
	}
	data = append(data, rezi.EncInt(len(a.Edges))...)
	for _, e := range a.Edges {
		data = append(data, rezi.EncInt(e.From)...)
		data = append(data, rezi.EncInt(e.To)...)
		data = append(data, rezi.EncInt(e.Symbol)...)
	}

	return data, nil
}

// UnmarshalBinary decodes an automaton encoded by MarshalBinary.
func (a *Automaton) UnmarshalBinary(data []byte) error {
	if !bytes.HasPrefix(data, []byte(magic)) {
		return fmt.Errorf("not an automaton cache")
	}
	data = data[len(magic):]

	var err error
	var n int
	nextInt := func(what string) int {
		if err != nil {
			return 0
		}
		var v int
		v, n, err = rezi.DecInt(data)
		if err != nil {
			err = fmt.Errorf("decoding %s: %w", what, err)
			return 0
		}
		data = data[n:]
		return v
	}
	nextCount := func(what string) int {
		v := nextInt(what)
		if err == nil && (v < 0 || v > len(data)) {
			err = fmt.Errorf("invalid %s %d", what, v)
			return 0
		}
		return v
	}

	if v := nextInt("format version"); err == nil && v != formatVersion {
		return fmt.Errorf("unsupported cache format version %d", v)
	}
	if err != nil {
		return err
	}
	a.Fingerprint, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("decoding fingerprint: %w", err)
	}
	data = data[n:]

	scount := nextCount("state count")
	a.States = make([][]lr.ItemRef, 0, scount)
	for s := 0; s < scount && err == nil; s++ {
		icount := nextCount("item count")
		items := make([]lr.ItemRef, 0, icount)
		for k := 0; k < icount && err == nil; k++ {
			items = append(items, lr.ItemRef{
				Production: nextInt("production"),
				Dot:        nextInt("dot"),
			})
		}
		a.States = append(a.States, items)
	}
	ecount := nextCount("edge count")
	a.Edges = make([]lr.EdgeRef, 0, ecount)
	for e := 0; e < ecount && err == nil; e++ {
		a.Edges = append(a.Edges, lr.EdgeRef{
			From:   nextInt("edge source"),
			To:     nextInt("edge target"),
			Symbol: nextInt("edge symbol"),
		})
	}
	return err
}

// Save writes the automaton of a CFSM to w.
func Save(w io.Writer, cfsm *lr.CFSM) error {
	a, err := New(cfsm)
	if err != nil {
		return err
	}
	data, err := a.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Load reads an automaton from r and restores it for grammar g.
func Load(r io.Reader, g *lr.Grammar) (*lr.CFSM, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	a := &Automaton{}
	if err := a.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return a.CFSM(g)
}

// SaveFile writes the automaton of a CFSM to a file.
func SaveFile(path string, cfsm *lr.CFSM) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, cfsm); err != nil {
		f.Close()
		return err
	}
	tracer().Infof("saved automaton with %d states to %s", cfsm.Size(), path)
	return f.Close()
}

// LoadFile reads an automaton from a file and restores it for grammar g.
func LoadFile(path string, g *lr.Grammar) (*lr.CFSM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfsm, err := Load(f, g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("loaded automaton with %d states from %s", cfsm.Size(), path)
	return cfsm, nil
}
