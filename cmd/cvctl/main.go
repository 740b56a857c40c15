// Command cvctl renders CV documents locally, talks to a cv-builder server
// and runs the terminal editor.
package main

import (
	"os"
	"time"

	"cv-builder/internal/logger"

	"github.com/spf13/cobra"
)

var (
	apiURL  string
	ownerID string
	timeout time.Duration
	verbose bool
	outPath string
	chrome  string
)

var rootCmd = &cobra.Command{
	Use:          "cvctl",
	Short:        "Build, preview and export CVs",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.InitWithWriter(logger.Config{Level: level, Format: "pretty"}, os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "cv-builder server URL (or set CV_API_URL)")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", "", "owner id for list and save")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "operation timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(renderCmd, previewCmd, pdfCmd)
	rootCmd.AddCommand(listCmd, getCmd, deleteCmd, duplicateCmd)
	rootCmd.AddCommand(editCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
