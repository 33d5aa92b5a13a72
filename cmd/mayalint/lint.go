package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mayalint/internal/analyze"
	"mayalint/internal/document"
	"mayalint/internal/knowledge"
)

// lintCmd runs the aggregator once over a file and prints its diagnostics.
var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Analyze a script and print diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	path := args[0]
	mode, err := modeFor(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc := document.New(string(data))
	res := newAnalyzer().Run(context.Background(), doc.Snapshot(), mode)
	printResult(cmd, path, res)

	if len(res.Diagnostics) > 0 {
		os.Exit(1)
	}
	return nil
}

func printResult(cmd *cobra.Command, path string, res analyze.Result) {
	for _, d := range res.Diagnostics {
		line := fmt.Sprintf("%s:%d:%d: %s: %s", path, d.Line+1, d.Column+1, d.Category, d.Message)
		if d.Suggestion != "" {
			line += fmt.Sprintf(" (suggestion: %s)", d.Suggestion)
		}
		cmd.Println(line)
	}
	if res.Truncated {
		cmd.Printf("%s: stopped after %d diagnostics; more errors may exist\n", path, len(res.Diagnostics))
	}
	if len(res.Diagnostics) == 0 {
		cmd.Printf("%s: no issues found\n", path)
	}
}

// commandsCmd lists the knowledge base, mainly for debugging typo reports.
var commandsCmd = &cobra.Command{
	Use:   "commands [namespace]",
	Short: "List known commands, optionally filtered by namespace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kb := knowledge.Default()
		names := kb.AllNames()
		if len(args) == 1 {
			ns, err := knowledge.ParseNamespace(args[0])
			if err != nil {
				return err
			}
			names = kb.NamesIn(ns)
		}
		for _, name := range names {
			entry, _ := kb.Lookup(name)
			suffix := ""
			if entry.Deprecated {
				suffix = " (deprecated)"
			}
			cmd.Printf("%s.%s%s\n", entry.Namespace, entry.Name, suffix)
		}
		return nil
	},
}
