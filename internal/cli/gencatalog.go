package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/ensemble/internal/testcatalog"
)

var (
	genCount     int
	genSeed      int64
	genOut       string
	genIntentOut string
)

var genCatalogCmd = &cobra.Command{
	Use:   "gen-catalog",
	Short: "Generate a synthetic catalog (and optionally an intent) as JSON",
	RunE:  runGenCatalog,
}

func init() {
	genCatalogCmd.Flags().IntVarP(&genCount, "count", "n", 200, "number of items to generate")
	genCatalogCmd.Flags().Int64Var(&genSeed, "seed", 42, "random seed for reproducible output")
	genCatalogCmd.Flags().StringVarP(&genOut, "out", "o", "catalog.json", "catalog output path")
	genCatalogCmd.Flags().StringVar(&genIntentOut, "intent-out", "", "also write a generated intent to this path")
}

func runGenCatalog(_ *cobra.Command, _ []string) error {
	gen := testcatalog.New(testcatalog.WithSeed(genSeed))

	items := gen.Items(genCount)
	if err := writeJSONFile(genOut, items); err != nil {
		return err
	}
	fmt.Printf("wrote %d items to %s\n", len(items), genOut)

	if genIntentOut != "" {
		intent := gen.Intent()
		if err := writeJSONFile(genIntentOut, intent); err != nil {
			return err
		}
		fmt.Printf("wrote intent to %s\n", genIntentOut)
	}
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
