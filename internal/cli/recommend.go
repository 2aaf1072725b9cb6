package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/ensemble/internal/adapters/catalog"
	"github.com/okian/ensemble/internal/app"
)

var (
	intentPath  string
	catalogPath string
	jsonOutput  bool
	topK        int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank outfits for an intent against a catalog",
	Long: `recommend reads a structured intent and a catalog snapshot from JSON
files, runs the scoring and assembly pipeline, and prints ranked outfits
with their score breakdowns.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVarP(&intentPath, "intent", "i", "", "path to intent JSON (required)")
	recommendCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to catalog JSON (required)")
	recommendCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the full RankedResult as JSON")
	recommendCmd.Flags().IntVarP(&topK, "top", "k", 0, "number of outfits to return (default from config)")
	_ = recommendCmd.MarkFlagRequired("intent")
	_ = recommendCmd.MarkFlagRequired("catalog")
}

func runRecommend(_ *cobra.Command, _ []string) error {
	if topK > 0 {
		cfg.ResultCount = topK
	}

	engine, err := app.New(app.WithConfig(cfg))
	if err != nil {
		return err
	}

	snap, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}
	intent, err := catalog.LoadIntent(intentPath)
	if err != nil {
		return err
	}

	res, err := engine.Recommend(rootCtx, intent, snap.Items())
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(os.Stdout, res)
	}
	return writeTable(os.Stdout, res)
}
