package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/latticeforge/kbest/cube"
	"github.com/latticeforge/kbest/hgraph"
	"github.com/latticeforge/kbest/internal/config"
	"github.com/latticeforge/kbest/internal/server"
	"github.com/latticeforge/kbest/internal/telemetry"
)

func (c *CLI) newServeCommand() *cobra.Command {
	var (
		addr            string
		weightsPath     string
		enableTelemetry bool

		uniqueNbest, tree, alignment, combined, monolingual, sanityCheck bool
	)

	cmd := &cobra.Command{
		Use:   "serve <hypergraph.json>",
		Short: "Serve extraction over HTTP and websocket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hg, symtab, err := hgraph.LoadFileWithVocab(args[0])
			if err != nil {
				return fmt.Errorf("load hypergraph: %w", err)
			}

			opts := cube.Options{
				UniqueNbest:      uniqueNbest,
				ExtractTree:      tree,
				IncludeAlignment: alignment,
				AddCombinedScore: combined,
				Monolingual:      monolingual,
				SanityCheck:      sanityCheck,
			}

			var features []hgraph.FeatureFunction
			if weightsPath != "" {
				f, err := config.Load(weightsPath)
				if err != nil {
					return err
				}
				features = f.ToFeatures()
			}

			var newHooks func() *cube.Hooks
			if enableTelemetry {
				t, err := telemetry.New()
				if err != nil {
					return fmt.Errorf("start telemetry: %w", err)
				}
				newHooks = t.Hooks
			}

			srv := server.New(hg, symtab, features, opts, newHooks)
			slog.Info("listening", "addr", addr)
			return server.ListenAndServe(addr, srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "Feature weights YAML file")
	cmd.Flags().BoolVar(&uniqueNbest, "unique-nbest", false, "Deduplicate derivations by flat yield string")
	cmd.Flags().BoolVar(&tree, "tree", false, "Emit labeled parse trees")
	cmd.Flags().BoolVar(&alignment, "alignment", false, "Append {i-j} span annotations in tree mode")
	cmd.Flags().BoolVar(&combined, "combined", false, "Append the combined score")
	cmd.Flags().BoolVar(&monolingual, "monolingual", false, "Use source-side symbols instead of target-side")
	cmd.Flags().BoolVar(&sanityCheck, "sanity-check", false, "Enforce the cost-reconstruction sanity check")
	cmd.Flags().BoolVar(&enableTelemetry, "telemetry", false, "Enable tracing and /metrics")
	return cmd
}
