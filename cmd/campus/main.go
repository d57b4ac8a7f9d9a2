// Command campus serves the university administration list API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/enayetsyl/industry-grade-project-format/internal/config"
)

var (
	envName    string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "campus <command>",
	Short:         "Campus list API: search, filter, sort and paginate university records",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envName, "env", config.GetEnv(), "environment (local, dev, docker, prod)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default config/<env>.yaml)")

	rootCmd.AddCommand(serveCmd, explainCmd, seedCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
