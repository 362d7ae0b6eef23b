package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var tlevel string
	gf := &generatorFlags{}
	rootCmd := &cobra.Command{
		Use:           "slrgen [flags] GRAMMAR",
		Short:         "Generate SLR(1) parser tables from a grammar",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setTraceLevel(tlevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gf.resolve(cmd.Flags(), args[0])
			if err != nil {
				pterm.Error.Println(err.Error())
				return err
			}
			gen, err := generate(args[0], cfg)
			if gen != nil {
				for _, f := range gen.files {
					pterm.Info.Println("wrote " + f)
				}
			}
			if err != nil {
				pterm.Error.Println(err.Error())
				return err
			}
			pterm.Success.Println("generated tables for " + gen.g.Name)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&tlevel, "trace", "Error", "trace level [Debug|Info|Error]")
	gf.register(rootCmd.Flags())
	rootCmd.AddCommand(newInspectCmd())
	return rootCmd
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(l string) {
	level := tracing.TraceLevelFromString(l)
	gtrace.SyntaxTracer.SetTraceLevel(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("trace level is %s", l)
}
