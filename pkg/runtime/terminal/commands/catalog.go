package commands

import (
	"fmt"

	"github.com/de-tools/ga-atlas/pkg/services/catalog"
	"github.com/spf13/cobra"
)

type CatalogCmd struct{}

func NewCatalogCmd() *cobra.Command {
	cc := &CatalogCmd{}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the named metrics and dimensions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "metrics",
		Short: "List the catalog metrics",
		RunE:  cc.runMetrics,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "dimensions",
		Short: "List the catalog dimensions",
		RunE:  cc.runDimensions,
	})

	return cmd
}

func (cc *CatalogCmd) runMetrics(cmd *cobra.Command, args []string) error {
	for _, m := range catalog.Metrics() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", m.Alias, m.Expression)
	}
	return nil
}

func (cc *CatalogCmd) runDimensions(cmd *cobra.Command, args []string) error {
	for _, d := range catalog.Dimensions() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", d.Alias, d.Name)
	}
	return nil
}
