package cli

import (
	"github.com/spf13/cobra"

	"github.com/happyhackingspace/lexis"
)

func (c *CLI) newCategoriesCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the known categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSource, err := c.openSource(dir)
			if err != nil {
				return err
			}
			defer closeSource()

			cats, err := lexis.New(src).Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range cats {
				c.printf("%s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Read categories from subdirectories of this directory")
	return cmd
}
