package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/gedcom"
	"github.com/agentstation/rootstock/pkg/reconcile"
)

// NewApplyCommand creates the apply command.
func (a *App) NewApplyCommand() *cobra.Command {
	var (
		mappedPath string
		strategy   string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile a mapped interchange file into the dataset",
		Long: `Apply reads a mapped interchange file and reconciles its people,
families, sources and citations into the dataset.

Records are matched against the dataset by their foreign record ids and
by source title heuristics. With --strategy=match-by-xref previously
imported records are enriched in place; with --strategy=create-all
(the default) matches are still merged but reported as created.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadOrNewDataset(a.config.DatasetPath)
			if err != nil {
				return err
			}

			mapped, err := gedcom.DecodeFile(mappedPath)
			if err != nil {
				return err
			}

			rec, err := reconcile.New(reconcile.WithStrategy(reconcile.Strategy(strategy)))
			if err != nil {
				return err
			}

			res, err := rec.Apply(cmd.Context(), ds, mapped)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = a.config.DatasetPath
			}
			if err := res.Dataset.Save(outPath); err != nil {
				return err
			}

			printResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mappedPath, "mapped", "m", "", "mapped interchange file (required)")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", string(reconcile.StrategyCreateAll), "import strategy: create-all or match-by-xref")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output dataset file (defaults to --dataset)")
	_ = cmd.MarkFlagRequired("mapped")

	return cmd
}

// loadOrNewDataset loads the dataset file, starting fresh when it does
// not exist yet.
func loadOrNewDataset(path string) (*dataset.Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return dataset.New(), nil
	}
	return dataset.Load(path)
}

// printResult writes the reconciliation summary to stdout.
func printResult(cmd *cobra.Command, res *reconcile.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "People:   %d created, %d updated\n", len(res.Created.People), len(res.Updated.People))
	fmt.Fprintf(out, "Families: %d created, %d updated\n", len(res.Created.Families), len(res.Updated.Families))
	fmt.Fprintf(out, "Sources:  %d created\n", len(res.Created.Sources))

	for _, u := range res.Diagnostics.Unresolved {
		fmt.Fprintf(out, "unresolved %s %s in family %s\n", u.Role, u.ForeignID, u.FamilyXRef)
	}
	if n := len(res.Diagnostics.Anomalies); n > 0 {
		fmt.Fprintf(out, "%d input anomalies (run with -v for details)\n", n)
	}
}
