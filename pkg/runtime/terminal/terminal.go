package terminal

import (
	"io"
	"os"

	"github.com/de-tools/ga-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/ga-atlas/pkg/services/account"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	factory account.ExplorerFactory
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Factory account.ExplorerFactory
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{factory: opts.Factory}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gatlas",
		Short: "Google Analytics reporting tool",
	}

	cmd.AddCommand(commands.NewReportCmd(cli.factory))
	cmd.AddCommand(commands.NewViewsCmd(cli.factory))
	cmd.AddCommand(commands.NewCatalogCmd())

	return cmd
}
