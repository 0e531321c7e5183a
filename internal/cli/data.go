package cli

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func (c *CLI) newDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage the 20 Newsgroups dataset (download/status)",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	var force bool
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download the 20 Newsgroups archive and import it into the document store",
		Example: `  lexis data download
  lexis data download --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, closeStore, err := c.openFetcher()
			if err != nil {
				return err
			}
			defer closeStore()

			start := time.Now()
			if force {
				err = fetcher.Refresh(cmd.Context())
			} else {
				err = fetcher.EnsureImported(cmd.Context())
			}
			if err != nil {
				return err
			}
			n, err := fetcher.Store.Count(cmd.Context())
			if err != nil {
				return err
			}
			slog.Info("Dataset ready", "documents", n, "store", fetcher.Store.Path(), "duration", time.Since(start))
			return nil
		},
	}
	downloadCmd.Flags().BoolVar(&force, "force", false, "Download again and replace the imported documents")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show imported newsgroups and document counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, closeStore, err := c.openFetcher()
			if err != nil {
				return err
			}
			defer closeStore()

			ctx := cmd.Context()
			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Subset", "Newsgroup", "Documents"})
			for _, subset := range []string{"train", "test"} {
				groups, err := fetcher.Store.Groups(ctx, subset)
				if err != nil {
					return err
				}
				for _, g := range groups {
					docs, err := fetcher.Store.Documents(ctx, subset, []string{g})
					if err != nil {
						return err
					}
					tw.AppendRow(table.Row{subset, g, strconv.Itoa(len(docs))})
				}
			}
			n, err := fetcher.Store.Count(ctx)
			if err != nil {
				return err
			}
			tw.AppendFooter(table.Row{"", "Total", strconv.Itoa(n)})
			c.printf("%s\n", tw.Render())
			return nil
		},
	}

	dataCmd.AddCommand(downloadCmd, statusCmd)
	return dataCmd
}
