package commands

import (
	"fmt"
	"os/user"
	"path/filepath"

	"github.com/de-tools/ga-atlas/pkg/services/account"
	"github.com/spf13/cobra"
)

type ViewsCmd struct {
	configPath string
	factory    account.ExplorerFactory
}

func NewViewsCmd(factory account.ExplorerFactory) *cobra.Command {
	vc := &ViewsCmd{factory: factory}
	cmd := &cobra.Command{
		Use:   "views",
		Short: "List the configured reporting views",
		RunE:  vc.run,
	}

	cmd.Flags().StringVar(&vc.configPath, "config", DefaultConfigPath(), "Path to the profile config file")

	return cmd
}

func (vc *ViewsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	explorer, err := vc.factory(vc.configPath)
	if err != nil {
		return err
	}

	views, err := explorer.ListViews(ctx)
	if err != nil {
		return fmt.Errorf("failed to list views: %w", err)
	}

	if len(views) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No views configured.")
		return nil
	}

	for _, v := range views {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (view %s)\n", v.Name, v.ID)
	}

	return nil
}

// DefaultConfigPath is the profile config the commands fall back to when
// --config is not given.
func DefaultConfigPath() string {
	usr, err := user.Current()
	if err != nil {
		return ".gatlas.cfg"
	}
	return filepath.Join(usr.HomeDir, ".gatlas.cfg")
}
