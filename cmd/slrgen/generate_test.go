package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/slrgen/cache"
	"github.com/npillmayer/slrgen/grammarfile"
	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/tokmap"
	"github.com/stretchr/testify/assert"
)

const exprGrammar = `E -> E '+' T | T
T -> T '*' F | F
F -> 'id' | '(' E ')'
`

const danglingElse = `S -> 'if' E 'then' S | 'if' E 'then' S 'else' S | 'other'
E -> 'cond'
`

func testConfig(dir string) config {
	cfg := defaultConfig()
	cfg.OutDir = filepath.Join(dir, "out")
	cfg.Emit.Graph = true
	return cfg
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestGenerate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	assert := assert.New(t)

	dir := t.TempDir()
	gpath := writeFile(t, dir, "expr.grammar", exprGrammar)
	cfg := testConfig(dir)

	gen, err := generate(gpath, cfg)
	if !assert.NoError(err) {
		return
	}
	assert.False(gen.cached)
	assert.False(gen.lrgen.HasConflicts)
	assert.Len(gen.files, 5)
	for _, f := range []string{cfg.Files.Action, cfg.Files.Goto, cfg.Files.Productions,
		cfg.Files.Automaton, cfg.Files.Graph} {
		assert.FileExists(cfg.path(f))
	}
	actions := readFile(t, cfg.path(cfg.Files.Action))
	gotos := readFile(t, cfg.path(cfg.Files.Goto))
	prods := readFile(t, cfg.path(cfg.Files.Productions))

	// second run uses the cache and yields identical dumps
	gen, err = generate(gpath, cfg)
	if !assert.NoError(err) {
		return
	}
	assert.True(gen.cached)
	assert.Equal(actions, readFile(t, cfg.path(cfg.Files.Action)))
	assert.Equal(gotos, readFile(t, cfg.path(cfg.Files.Goto)))
	assert.Equal(prods, readFile(t, cfg.path(cfg.Files.Productions)))

	// a changed grammar invalidates the cache
	writeFile(t, dir, "expr.grammar", exprGrammar+"F -> 'num'\n")
	gen, err = generate(gpath, cfg)
	if assert.NoError(err) {
		assert.False(gen.cached)
	}
}

func TestGenerateSuppressed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	assert := assert.New(t)

	dir := t.TempDir()
	gpath := writeFile(t, dir, "expr.grammar", exprGrammar)
	cfg := testConfig(dir)
	cfg.Emit = outputSwitches{Goto: true}

	gen, err := generate(gpath, cfg)
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]string{cfg.path(cfg.Files.Goto)}, gen.files)
	assert.NoFileExists(cfg.path(cfg.Files.Action))
	assert.NoFileExists(cfg.path(cfg.Files.Automaton))
}

func TestGenerateConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	assert := assert.New(t)

	dir := t.TempDir()
	gpath := writeFile(t, dir, "ifelse.grammar", danglingElse)
	cfg := testConfig(dir)

	gen, err := generate(gpath, cfg)
	if !assert.NoError(err, "conflicts must not stop generation") {
		return
	}
	assert.True(gen.lrgen.HasConflicts)
	assert.Len(gen.lrgen.ConflictingStates(), 1)
	assert.Regexp(`'else'\) => Shift\(\d+\), Reduce\(0, 4\)`, readFile(t, cfg.path(cfg.Files.Action)))
}

func TestGenerateLR0(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	assert := assert.New(t)

	dir := t.TempDir()
	gpath := writeFile(t, dir, "expr.grammar", exprGrammar)
	cfg := testConfig(dir)
	cfg.LR0 = true

	gen, err := generate(gpath, cfg)
	if assert.NoError(err) {
		assert.True(gen.lrgen.HasConflicts)
	}
}

func TestGenerateUnmappedTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	assert := assert.New(t)

	dir := t.TempDir()
	gpath := writeFile(t, dir, "expr.grammar", exprGrammar)
	cfg := testConfig(dir)
	cfg.Tokens = map[string]string{"'+'": "PLUS"}

	_, err := generate(gpath, cfg)
	var ute *tokmap.UnmappedTerminalError
	if assert.True(errors.As(err, &ute)) {
		assert.Len(ute.Terminals, 4)
	}
	assert.NoFileExists(cfg.path(cfg.Files.Action))
	assert.FileExists(cfg.path(cfg.Files.Goto))
	assert.FileExists(cfg.path(cfg.Files.Productions))
}

func TestGenerateTokenFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	assert := assert.New(t)

	dir := t.TempDir()
	gpath := writeFile(t, dir, "s.grammar", "S -> 'x' S | 'x'\n")
	cfg := testConfig(dir)
	cfg.TokenFile = writeFile(t, dir, "tokens.toml", "[tokens]\n\"'x'\" = \"Token::X\"\n")

	_, err := generate(gpath, cfg)
	if assert.NoError(err) {
		assert.Contains(readFile(t, cfg.path(cfg.Files.Action)), "(0, Token::X) => Shift(")
	}
}

func TestGenerateMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	assert := assert.New(t)

	dir := t.TempDir()
	gpath := writeFile(t, dir, "bad.grammar", "E -> 'x'\nE 'y'\n")
	_, err := generate(gpath, testConfig(dir))
	var mge *lr.MalformedGrammarError
	if assert.True(errors.As(err, &mge)) {
		assert.Equal(2, mge.Line)
	}
}

func TestGenerateDamagedCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	assert := assert.New(t)

	dir := t.TempDir()
	gpath := writeFile(t, dir, "expr.grammar", exprGrammar)
	cfg := testConfig(dir)
	g, err := grammarfile.LoadFile(gpath)
	if err != nil {
		t.Fatal(err)
	}
	a, err := cache.New(lr.BuildCFSM(g))
	if err != nil {
		t.Fatal(err)
	}
	a.Edges = a.Edges[1:] // fingerprint still matches
	data, err := a.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, cfg.OutDir, cfg.Files.Automaton, string(data))

	gen, err := generate(gpath, cfg)
	if !assert.NoError(err) {
		return
	}
	assert.False(gen.cached)
	assert.Equal(12, gen.lrgen.CFSM().Size())

	gen, err = generate(gpath, cfg)
	if assert.NoError(err) {
		assert.True(gen.cached, "damaged cache must have been rewritten")
	}
}
