package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mayalint/internal/analyze"
	"mayalint/internal/config"
	"mayalint/internal/fuzzy"
	"mayalint/internal/knowledge"
	"mayalint/internal/logging"
	"mayalint/internal/passes"
)

var (
	// Global flags
	cfgPath  string
	verbose  bool
	modeFlag string

	cfg config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mayalint",
	Short: "mayalint - diagnostics and assisted patching for Maya script-editor code",
	Long: `mayalint lints Maya script-editor source (maya.cmds Python and MEL)
against a knowledge base of known commands, and applies externally proposed
fix fragments into a live document with a before/after diff.

The engine is advisory: it reports likely command-usage errors and never
executes code.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
			cfg.Logging.Dev = true
		}
		return logging.Init(cfg.Logging)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "language mode: python or mel (default: inferred from extension)")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(commandsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mayalint.yaml"
	}
	return filepath.Join(home, ".mayalint.yaml")
}

// modeFor resolves the language mode from the --mode flag or the file
// extension (.mel selects the MEL dialect).
func modeFor(path string) (passes.Mode, error) {
	if modeFlag != "" {
		return passes.ParseMode(modeFlag)
	}
	if strings.EqualFold(filepath.Ext(path), ".mel") {
		return passes.ModeMEL, nil
	}
	return passes.ModePython, nil
}

// newAnalyzer builds the analyzer from the loaded config.
func newAnalyzer() *analyze.Analyzer {
	return analyze.New(passes.Default(), &passes.Env{
		KB:    knowledge.Default(),
		Fuzzy: fuzzy.New(cfg.Fuzzy.Floor, cfg.Fuzzy.MinTokenLength),
	}, analyze.Options{
		MaxDiagnostics: cfg.Analysis.MaxDiagnostics,
		MaxSweeps:      cfg.Analysis.MaxSweeps,
	})
}
