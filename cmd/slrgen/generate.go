package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/slrgen/cache"
	"github.com/npillmayer/slrgen/emit"
	"github.com/npillmayer/slrgen/grammarfile"
	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/tokmap"
	"github.com/pterm/pterm"
)

// generation is the outcome of a generator run.
type generation struct {
	g      *lr.Grammar
	lrgen  *lr.TableGenerator
	cached bool     // CFSM has been restored from the cache
	files  []string // files written
}

// generate runs the complete pipeline for a grammar file. Conflicts are
// reported as warnings. A missing token tag is an error, but only the ACTION
// table is skipped because of it.
func generate(grammarPath string, cfg config) (*generation, error) {
	g, err := grammarfile.LoadFile(grammarPath)
	if err != nil {
		return nil, err
	}
	tokens, err := tokenMap(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, err
	}
	gen := &generation{g: g}
	gen.lrgen = lr.NewTableGenerator(lr.Analysis(g))
	if cfg.Emit.Automaton {
		gen.cached = restoreCFSM(gen.lrgen, g, cfg.path(cfg.Files.Automaton))
	}
	if cfg.LR0 {
		gen.lrgen.CreateLR0Tables()
	} else {
		gen.lrgen.CreateTables()
	}
	reportConflicts(g, gen.lrgen)

	var unmapped error
	if cfg.Emit.Action {
		if unmapped = tokens.Check(g); unmapped == nil {
			err = gen.write(cfg.path(cfg.Files.Action), func(w io.Writer) error {
				return emit.WriteActions(w, gen.lrgen.ActionTable(), tokens)
			})
			if err != nil {
				return gen, err
			}
		}
	}
	if unused := tokens.Unused(g); len(unused) > 0 {
		pterm.Warning.Println(fmt.Sprintf("token map has entries for unknown terminals: %v", unused))
	}
	if cfg.Emit.Goto {
		err = gen.write(cfg.path(cfg.Files.Goto), func(w io.Writer) error {
			return emit.WriteGotos(w, gen.lrgen.GotoTable())
		})
		if err != nil {
			return gen, err
		}
	}
	if cfg.Emit.Productions {
		err = gen.write(cfg.path(cfg.Files.Productions), func(w io.Writer) error {
			return emit.WriteProductions(w, g)
		})
		if err != nil {
			return gen, err
		}
	}
	if cfg.Emit.Graph {
		err = gen.write(cfg.path(cfg.Files.Graph), func(w io.Writer) error {
			return emit.WriteGraph(w, gen.lrgen.CFSM())
		})
		if err != nil {
			return gen, err
		}
	}
	if cfg.Emit.Automaton && !gen.cached {
		path := cfg.path(cfg.Files.Automaton)
		if err := cache.SaveFile(path, gen.lrgen.CFSM()); err != nil {
			return gen, err
		}
		gen.files = append(gen.files, path)
	}
	if unmapped != nil {
		return gen, fmt.Errorf("ACTION table not written: %w", unmapped)
	}
	return gen, nil
}

// tokenMap selects the token map: a token file wins over the [tokens] table of
// the config. Without any, terminals are their own tags.
func tokenMap(cfg config) (*tokmap.Map, error) {
	if cfg.TokenFile != "" {
		return tokmap.LoadFile(cfg.TokenFile)
	}
	if len(cfg.Tokens) > 0 {
		return tokmap.New(cfg.Tokens), nil
	}
	pterm.Warning.Println("no token map given, terminals are used as token tags")
	return tokmap.Identity(), nil
}

// restoreCFSM tries to use a cached CFSM. It returns true if the cache could
// be used.
func restoreCFSM(lrgen *lr.TableGenerator, g *lr.Grammar, path string) bool {
	cfsm, err := cache.LoadFile(path, g)
	switch {
	case err == nil:
		lrgen.UseCFSM(cfsm)
		return true
	case errors.Is(err, os.ErrNotExist):
		tracer().Debugf("no automaton cache at %s", path)
	case errors.Is(err, cache.ErrStale):
		tracer().Infof("automaton cache %s is stale, rebuilding", path)
	default:
		pterm.Warning.Println(fmt.Sprintf("ignoring automaton cache: %v", err))
	}
	return false
}

func reportConflicts(g *lr.Grammar, lrgen *lr.TableGenerator) {
	if !lrgen.HasConflicts {
		return
	}
	for _, c := range lrgen.Conflicts() {
		pterm.Warning.Println("conflict " + c.Describe(g))
	}
	pterm.Warning.Println(fmt.Sprintf("%d conflicts, conflicting states = %v",
		len(lrgen.Conflicts()), lrgen.ConflictingStates()))
}

func (gen *generation) write(path string, dump func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dump(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	tracer().Infof("wrote %s", path)
	gen.files = append(gen.files, path)
	return nil
}
