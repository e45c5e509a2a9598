package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/gedcom"
	"github.com/agentstation/rootstock/pkg/staging"
)

// NewStagingCommand creates the staging command with its subcommands.
func (a *App) NewStagingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staging",
		Short: "Manage sources staged for review",
		Long: `Staging parks imported sources for manual review before they join
the canonical source catalog. Export stages the sources of a mapped
interchange file, list shows the queue, and commit merges one reviewed
entry into the catalog.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(a.newStagingExportCommand())
	cmd.AddCommand(a.newStagingListCommand())
	cmd.AddCommand(a.newStagingCommitCommand())

	return cmd
}

func (a *App) newStagingExportCommand() *cobra.Command {
	var mappedPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Stage the sources of a mapped interchange file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadOrNewDataset(a.config.DatasetPath)
			if err != nil {
				return err
			}

			mapped, err := gedcom.DecodeFile(mappedPath)
			if err != nil {
				return err
			}

			out, staged, anoms, err := staging.Export(ds, mapped)
			if err != nil {
				return err
			}
			if err := out.Save(a.config.DatasetPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d sources staged\n", len(staged))
			if len(anoms) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d input anomalies\n", len(anoms))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mappedPath, "mapped", "m", "", "mapped interchange file (required)")
	_ = cmd.MarkFlagRequired("mapped")

	return cmd
}

func (a *App) newStagingListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sources waiting for review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadOrNewDataset(a.config.DatasetPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tDATE\tTRUST\tSTAGED")
			for _, s := range ds.Staging.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					s.ID, s.Title, s.Date, s.Trust, s.StagedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}

func (a *App) newStagingCommitCommand() *cobra.Command {
	var relocateMedia bool

	cmd := &cobra.Command{
		Use:   "commit <staged-id>",
		Short: "Merge a reviewed staged source into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load(a.config.DatasetPath)
			if err != nil {
				return err
			}

			opts := staging.Options{}
			if relocateMedia {
				opts.RelocateMedia = true
				opts.Media = staging.NewFileStore(a.config.MediaDir)
			}

			out, res, err := staging.Commit(cmd.Context(), ds, dataset.StagedID(args[0]), opts)
			if err != nil {
				return err
			}
			if err := out.Save(a.config.DatasetPath); err != nil {
				return err
			}

			switch {
			case res.Created:
				fmt.Fprintf(cmd.OutOrStdout(), "created source %s\n", res.Source.ID)
			case res.Merged:
				fmt.Fprintf(cmd.OutOrStdout(), "merged into source %s\n", res.Source.ID)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "source %s already up to date\n", res.Source.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&relocateMedia, "relocate-media", false, "copy referenced images into the media directory")
	cmd.Flags().StringVar(&a.config.MediaDir, "media-dir", a.config.MediaDir, "managed media directory")

	return cmd
}
