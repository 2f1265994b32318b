package cmd

import (
	"github.com/spf13/cobra"

	"appup/internal/output"
)

var (
	// Global flags
	outputFormat string
	configPath   string
	verbose      bool
	quiet        bool
)

func Execute(version, commit, date string) error {
	appupVersion = version

	rootCmd := &cobra.Command{
		Use:   "appup",
		Short: "Background update checks and downloads for desktop applications",
		Long: `appup fetches a plain-text version descriptor, reports the newest release
and experimental builds, and downloads update artifacts in the background.

Point it at a descriptor with version_url in appup.toml or --url.`,
		Version:      version,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to appup.toml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd(commit, date))
	rootCmd.AddCommand(newCompletionCmd())

	// Register completion function for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return output.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd.Execute()
}
