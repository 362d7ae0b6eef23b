package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_LoadConfig(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	gpath := writeFile(t, dir, "g.grammar", "S -> 'x'\n")

	cfg, err := loadConfig("", gpath)
	assert.NoError(err)
	assert.Equal(defaultConfig(), cfg)

	writeFile(t, dir, defaultConfigName, `
outdir = "gen"
lr0 = true

[files]
action = "actions.dump"

[emit]
goto = false
graph = true

[tokens]
"'x'" = "Token::X"
`)
	cfg, err = loadConfig("", gpath)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("gen", cfg.OutDir)
	assert.True(cfg.LR0)
	assert.Equal("actions.dump", cfg.Files.Action)
	assert.Equal(defaultConfig().Files.Goto, cfg.Files.Goto)
	assert.False(cfg.Emit.Goto)
	assert.True(cfg.Emit.Action)
	assert.True(cfg.Emit.Graph)
	assert.Equal(map[string]string{"'x'": "Token::X"}, cfg.Tokens)

	_, err = loadConfig(filepath.Join(dir, "missing.toml"), gpath)
	assert.Error(err, "explicit config file must exist")

	bad := writeFile(t, dir, "bad.toml", "outdir = \n")
	_, err = loadConfig(bad, gpath)
	assert.Error(err)
}

func Test_FlagsOverrideConfig(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	gpath := writeFile(t, dir, "g.grammar", "S -> 'x'\n")
	writeFile(t, dir, defaultConfigName, `
outdir = "gen"
[files]
action = "actions.dump"
goto = "gotos.dump"
`)

	gf := &generatorFlags{}
	flags := pflag.NewFlagSet("slrgen", pflag.ContinueOnError)
	gf.register(flags)
	err := flags.Parse([]string{"-o", "elsewhere", "--goto-file", "g.txt", "--no-productions", "--graph"})
	if !assert.NoError(err) {
		return
	}
	cfg, err := gf.resolve(flags, gpath)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("elsewhere", cfg.OutDir)
	assert.Equal("actions.dump", cfg.Files.Action)
	assert.Equal("g.txt", cfg.Files.Goto)
	assert.False(cfg.Emit.Productions)
	assert.True(cfg.Emit.Action)
	assert.True(cfg.Emit.Graph)
	assert.False(cfg.LR0)
	assert.Equal(filepath.Join("elsewhere", "g.txt"), cfg.path(cfg.Files.Goto))
}
