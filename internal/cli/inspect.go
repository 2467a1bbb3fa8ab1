package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticeforge/kbest/cube"
	"github.com/latticeforge/kbest/hgraph"
	"github.com/latticeforge/kbest/internal/tui"
)

func (c *CLI) newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <hypergraph.json>",
		Short: "Browse a hypergraph's virtual nodes interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hg, symtab, err := hgraph.LoadFileWithVocab(args[0])
			if err != nil {
				return fmt.Errorf("load hypergraph: %w", err)
			}

			ex := cube.NewExtractor(cube.Options{AddCombinedScore: true}, symtab, nil)
			return tui.Run(hg, ex)
		},
	}
}
