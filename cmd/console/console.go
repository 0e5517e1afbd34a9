package console

import (
	"fmt"
	"os"

	"github.com/jmehdipour/rc-admin/internal/config"
	"github.com/jmehdipour/rc-admin/internal/console"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	search    string
	assumeYes bool
	verbose   bool
)

// NewConsoleCmd returns the parent "console" command.
func NewConsoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Manage customers from the terminal through a running proxy",
	}
	cmd.PersistentFlags().StringVar(&serverURL, "server", "", "proxy base URL (default from config console.server_url)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print every status change")

	// attach subcommands
	cmd.AddCommand(listCmd)
	cmd.AddCommand(deleteCmd)
	cmd.AddCommand(deleteAllCmd)

	return cmd
}

func init() {
	listCmd.Flags().StringVar(&search, "search", "", "free-text search forwarded as ?search=")
	deleteAllCmd.Flags().StringVar(&search, "search", "", "only delete customers matching the search")
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	deleteAllCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
}

func newController(cmd *cobra.Command) (*console.Controller, error) {
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	base := cfg.Console.ServerURL
	if serverURL != "" {
		base = serverURL
	}

	api := console.NewAPI(base, cfg.Console.Timeout)
	view := console.WriterView{Out: os.Stderr, Verbose: verbose}
	ctl := console.NewController(api, console.PromptConfirmer{AssumeYes: assumeYes}, view)
	ctl.SetSearch(search)
	return ctl, nil
}
