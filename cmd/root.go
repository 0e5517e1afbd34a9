package cmd

import (
	"fmt"
	"os"

	"github.com/jmehdipour/rc-admin/cmd/console"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
)

var (
	cfgPath string
	envPath string
	rootCmd = &cobra.Command{
		Use:   "rc-admin",
		Short: "RevenueCat customer admin proxy and console",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envPath)
		},
		SilenceUsage: true,
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "dotenv file loaded before config (missing file is ignored)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(console.NewConsoleCmd())
}

// loadEnvFile exports variables from a dotenv file without overriding the real environment.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
