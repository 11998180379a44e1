package cmd

import (
	"fmt"

	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with YAML catalog files",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a YAML catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := paymentprovider.FileLoader{Path: args[0]}.Load(cmd.Context())
		if err != nil {
			return err
		}
		countries, providers := catalog.Size()
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d countries, %d providers)\n", args[0], countries, providers)
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the built-in catalog as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := paymentprovider.WriteCatalogFile(args[0], paymentprovider.DefaultCatalog()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "built-in catalog written to %s\n", args[0])
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogExportCmd)
}
