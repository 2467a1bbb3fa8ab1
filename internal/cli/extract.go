package cli

import (
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticeforge/kbest/cube"
	"github.com/latticeforge/kbest/hgraph"
	"github.com/latticeforge/kbest/internal/cache"
	"github.com/latticeforge/kbest/internal/config"
)

func (c *CLI) newExtractCommand() *cobra.Command {
	var (
		count                                                            int
		sentID                                                           int
		uniqueNbest, tree, alignment, combined, monolingual, sanityCheck bool
		weightsPath                                                      string
		cacheDir                                                         string
	)

	cmd := &cobra.Command{
		Use:   "extract <hypergraph.json>",
		Short: "Extract the N best derivations from a hypergraph dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hg, symtab, err := hgraph.LoadFileWithVocab(args[0])
			if err != nil {
				return fmt.Errorf("load hypergraph: %w", err)
			}
			if hg.Goal == nil {
				return fmt.Errorf("extract: hypergraph has no goal node")
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

			if cacheDir == "" {
				ex := cube.NewExtractor(opts, symtab, features)
				return ex.Extract(hg, count, sentID, cube.NewWriterConsumer(os.Stdout))
			}
			return extractWithCache(cacheDir, args[0], hg, count, sentID, opts, symtab, features)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of hypotheses to extract")
	cmd.Flags().IntVar(&sentID, "sent-id", -1, "Sentence id to print in each line (-1 omits it)")
	cmd.Flags().BoolVar(&uniqueNbest, "unique-nbest", false, "Deduplicate derivations by flat yield string")
	cmd.Flags().BoolVar(&tree, "tree", false, "Emit labeled parse trees")
	cmd.Flags().BoolVar(&alignment, "alignment", false, "Append {i-j} span annotations in tree mode")
	cmd.Flags().BoolVar(&combined, "combined", false, "Append the combined score")
	cmd.Flags().BoolVar(&monolingual, "monolingual", false, "Use source-side symbols instead of target-side")
	cmd.Flags().BoolVar(&sanityCheck, "sanity-check", false, "Enforce the cost-reconstruction sanity check")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "Feature weights YAML file")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Badger cache directory for memoized results")
	return cmd
}

func extractWithCache(
	cacheDir, path string,
	hg *hgraph.Hypergraph,
	count, sentID int,
	opts cube.Options,
	symtab hgraph.SymbolTable,
	features []hgraph.FeatureFunction,
) error {
	ch, err := cache.Open(cacheDir)
	if err != nil {
		return err
	}
	defer ch.Close()

	key := cache.Key(contentHash(path), hg.Goal.ID, count, sentID, opts)
	if lines, ok := ch.Get(key); ok {
		for _, l := range lines {
			fmt.Println(l)
		}
		return nil
	}

	var collected cube.SliceConsumer
	ex := cube.NewExtractor(opts, symtab, features)
	if err := ex.Extract(hg, count, sentID, &collected); err != nil {
		return err
	}
	for _, l := range collected.Lines {
		fmt.Println(l)
	}
	return ch.Put(key, collected.Lines)
}

// contentHash digests the hypergraph file's bytes, so the cache key tracks
// what the file says rather than its path or timestamps. Hypergraph dumps
// are small enough that hashing them is negligible next to extraction.
func contentHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
