package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mayalint/internal/diffview"
	"mayalint/internal/document"
	"mayalint/internal/patch"
)

var (
	proposalPath string
	writeFix     bool
)

// fixCmd relocates a proposed fix fragment in a file, shows the diff, and
// optionally commits the rewritten text. Showing and committing are
// separate on purpose: acceptance is the user's call, never the engine's.
var fixCmd = &cobra.Command{
	Use:   "fix [file]",
	Short: "Apply a proposed fix fragment to a script",
	Long: `Reads a fix proposal ({"hintLine": 12, "oldText": "...", "newText": "..."})
and relocates it in the current file content. The hint line is only trusted
for the first fix of a session; relocation falls back to a content search
when the hint fails. Without --write the diff is printed and nothing is
modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().StringVar(&proposalPath, "proposal", "", "path to the proposal JSON (- for stdin)")
	fixCmd.Flags().BoolVar(&writeFix, "write", false, "write the patched file back to disk")
	_ = fixCmd.MarkFlagRequired("proposal")
}

func runFix(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	proposal, err := readProposal(proposalPath)
	if err != nil {
		return err
	}

	doc := document.New(string(data))
	applier := patch.NewApplier()
	applied, err := applier.Apply(doc.Snapshot(), proposal)
	if err != nil {
		return fmt.Errorf("could not apply fix: %w", err)
	}

	before := doc.Text()
	doc.SetLines(applied.Lines)
	after := doc.Text()

	cmd.Print(diffview.Render(diffview.Present(before, after)))
	cmd.Printf("target line: %d\n", applied.Line+1)

	if !writeFix {
		cmd.Println("dry run; use --write to apply")
		return nil
	}
	if err := os.WriteFile(path, []byte(after), 0o644); err != nil {
		return fmt.Errorf("write patched file: %w", err)
	}
	cmd.Printf("wrote %s\n", path)
	return nil
}

func readProposal(path string) (patch.Proposal, error) {
	var p patch.Proposal
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return p, fmt.Errorf("read proposal: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse proposal: %w", err)
	}
	return p, nil
}
