package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mayalint/internal/analyze"
	"mayalint/internal/logging"
)

// watchCmd keeps a session open on a file and re-lints on every write.
// A disk write is a wholesale reload, so the session's patch state resets
// to first-fix mode each time.
var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-analyze a script whenever it changes on disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	mode, err := modeFor(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	session := analyze.NewSession(newAnalyzer(), mode, string(data),
		time.Duration(cfg.Analysis.DebounceMillis)*time.Millisecond)
	defer session.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	// Watch the directory: editors often replace files on save, which
	// drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	log := logging.Watch()
	log.Info("watching", zap.String("file", path), zap.String("session", session.ID()))
	cmd.Printf("watching %s (%s mode), ctrl-c to stop\n", path, mode)

	abs, _ := filepath.Abs(path)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			evAbs, _ := filepath.Abs(ev.Name)
			if evAbs != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			content, err := os.ReadFile(path)
			if err != nil {
				log.Warn("reload failed", zap.Error(err))
				continue
			}
			session.Reload(string(content))
		case res := <-session.Results():
			printResult(cmd, path, res)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-sig:
			cmd.Println("stopping")
			return nil
		}
	}
}
