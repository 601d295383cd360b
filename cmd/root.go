package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "iknowall",
	Short: "Terminal FAQ assistant backed by a remote Q&A document",
	Long: `iknowall keeps an in-memory knowledge base synced from a remotely edited
text document of Q:/A: pairs and answers free-text questions against it.

Running without a subcommand opens the interactive chat.`,
	RunE: runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("iknowall %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
