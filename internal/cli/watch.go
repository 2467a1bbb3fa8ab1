package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/latticeforge/kbest/cube"
	"github.com/latticeforge/kbest/hgraph"
)

func (c *CLI) newWatchCommand() *cobra.Command {
	var (
		count  int
		sentID int
	)

	cmd := &cobra.Command{
		Use:   "watch <hypergraph.json>",
		Short: "Re-run extraction whenever the hypergraph file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer watcher.Close()

			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return fmt.Errorf("watch directory: %w", err)
			}

			extractOnce(path, count, sentID)
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) == filepath.Clean(path) &&
						event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
						slog.Info("hypergraph changed, re-extracting", "path", path)
						extractOnce(path, count, sentID)
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					slog.Error("watch error", "error", err)
				}
			}
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of hypotheses to extract")
	cmd.Flags().IntVar(&sentID, "sent-id", -1, "Sentence id to print in each line (-1 omits it)")
	return cmd
}

func extractOnce(path string, count, sentID int) {
	hg, symtab, err := hgraph.LoadFileWithVocab(path)
	if err != nil {
		slog.Error("reload failed", "error", err)
		return
	}
	if hg.Goal == nil {
		slog.Warn("hypergraph has no goal node")
		return
	}

	ex := cube.NewExtractor(cube.Options{AddCombinedScore: true}, symtab, nil)
	if err := ex.Extract(hg, count, sentID, cube.NewWriterConsumer(os.Stdout)); err != nil {
		slog.Error("extraction failed", "error", err)
	}
}
