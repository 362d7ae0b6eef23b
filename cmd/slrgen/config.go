package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

const defaultConfigName = "slrgen.toml"

// config holds the settings for a generator run.
type config struct {
	OutDir string            `toml:"outdir"`
	Files  outputFiles       `toml:"files"`
	Emit   outputSwitches    `toml:"emit"`
	Tokens map[string]string `toml:"tokens"`
	LR0    bool              `toml:"lr0"`

	TokenFile string `toml:"-"` // token map given on the command line
}

type outputFiles struct {
	Action      string `toml:"action"`
	Goto        string `toml:"goto"`
	Productions string `toml:"productions"`
	Automaton   string `toml:"automaton"`
	Graph       string `toml:"graph"`
}

type outputSwitches struct {
	Action      bool `toml:"action"`
	Goto        bool `toml:"goto"`
	Productions bool `toml:"productions"`
	Automaton   bool `toml:"automaton"`
	Graph       bool `toml:"graph"`
}

func defaultConfig() config {
	return config{
		OutDir: ".",
		Files: outputFiles{
			Action:      "action_table.txt",
			Goto:        "goto_table.txt",
			Productions: "productions.txt",
			Automaton:   "automaton.bin",
			Graph:       "automaton.gv",
		},
		Emit: outputSwitches{
			Action:      true,
			Goto:        true,
			Productions: true,
			Automaton:   true,
		},
	}
}

// loadConfig reads a TOML config file over the defaults. If path is empty,
// slrgen.toml next to the grammar is used if it exists.
func loadConfig(path string, grammarPath string) (config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = filepath.Join(filepath.Dir(grammarPath), defaultConfigName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	tracer().Infof("read config from %s", path)
	return cfg, nil
}

// generatorFlags are the command line flags of the generator. Flags set by the
// user override the config file.
type generatorFlags struct {
	config        string
	cfg           config
	noAction      bool
	noGoto        bool
	noProductions bool
	noAutomaton   bool
}

func (gf *generatorFlags) register(flags *pflag.FlagSet) {
	def := defaultConfig()
	flags.StringVar(&gf.config, "config", "", "TOML config file (default: slrgen.toml next to the grammar)")
	flags.StringVarP(&gf.cfg.OutDir, "outdir", "o", def.OutDir, "output directory")
	flags.StringVar(&gf.cfg.Files.Action, "action-file", def.Files.Action, "file name of ACTION table dump")
	flags.StringVar(&gf.cfg.Files.Goto, "goto-file", def.Files.Goto, "file name of GOTO table dump")
	flags.StringVar(&gf.cfg.Files.Productions, "productions-file", def.Files.Productions, "file name of production list")
	flags.StringVar(&gf.cfg.Files.Automaton, "automaton-file", def.Files.Automaton, "file name of automaton cache")
	flags.StringVar(&gf.cfg.Files.Graph, "graph-file", def.Files.Graph, "file name of Graphviz drawing")
	flags.BoolVar(&gf.noAction, "no-action", false, "do not write the ACTION table")
	flags.BoolVar(&gf.noGoto, "no-goto", false, "do not write the GOTO table")
	flags.BoolVar(&gf.noProductions, "no-productions", false, "do not write the production list")
	flags.BoolVar(&gf.noAutomaton, "no-automaton", false, "do not read or write the automaton cache")
	flags.BoolVar(&gf.cfg.Emit.Graph, "graph", false, "write a Graphviz drawing of the automaton")
	flags.StringVar(&gf.cfg.TokenFile, "tokens", "", "TOML file mapping terminals to token tags")
	flags.BoolVar(&gf.cfg.LR0, "lr0", false, "create LR(0) instead of SLR(1) ACTION table")
}

// resolve merges the config file and the flags which have been set explicitly.
func (gf *generatorFlags) resolve(flags *pflag.FlagSet, grammarPath string) (config, error) {
	cfg, err := loadConfig(gf.config, grammarPath)
	if err != nil {
		return cfg, err
	}
	set := func(name string, dest *string, value string) {
		if flags.Changed(name) {
			*dest = value
		}
	}
	set("outdir", &cfg.OutDir, gf.cfg.OutDir)
	set("action-file", &cfg.Files.Action, gf.cfg.Files.Action)
	set("goto-file", &cfg.Files.Goto, gf.cfg.Files.Goto)
	set("productions-file", &cfg.Files.Productions, gf.cfg.Files.Productions)
	set("automaton-file", &cfg.Files.Automaton, gf.cfg.Files.Automaton)
	set("graph-file", &cfg.Files.Graph, gf.cfg.Files.Graph)
	cfg.TokenFile = gf.cfg.TokenFile
	if flags.Changed("graph") {
		cfg.Emit.Graph = gf.cfg.Emit.Graph
	}
	if flags.Changed("lr0") {
		cfg.LR0 = gf.cfg.LR0
	}
	cfg.Emit.Action = cfg.Emit.Action && !gf.noAction
	cfg.Emit.Goto = cfg.Emit.Goto && !gf.noGoto
	cfg.Emit.Productions = cfg.Emit.Productions && !gf.noProductions
	cfg.Emit.Automaton = cfg.Emit.Automaton && !gf.noAutomaton
	return cfg, nil
}

func (cfg config) path(name string) string {
	return filepath.Join(cfg.OutDir, name)
}
