package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the service catalog as yaml",
	Long: `Prints the built-in catalog, or the one given with --catalog after validation.
The output can be edited and passed back with services --catalog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		return c.Dump(os.Stdout)
	},
}

func init() {
	catalogCmd.Flags().String(flagCatalog, "", "yaml service catalog to validate and print")
	rootCmd.AddCommand(catalogCmd)
}
