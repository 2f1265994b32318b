package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"appup/internal/cache"
	"appup/internal/interactive"
	"appup/internal/output"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage downloaded artifacts",
		Long: `Cache manages the folder downloaded artifacts land in.

Downloads accumulate across releases, and interrupted downloads leave
.download staging files behind. Use 'appup cache list' to inspect the
folder and 'appup cache prune' to clean it up.`,
	}

	cmd.AddCommand(newCacheListCmd())
	cmd.AddCommand(newCachePruneCmd())

	return cmd
}

func newCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached artifacts",
		Long:  `List displays the artifacts in the cache folder with their size and age.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheList()
		},
	}
}

func newCachePruneCmd() *cobra.Command {
	var keep int
	var force bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old artifacts",
		Long: `Prune deletes staging leftovers and old artifacts, keeping only the most
recent N completed downloads.

By default, keeps the 5 most recent artifacts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCachePrune(keep, force)
		},
	}

	cmd.Flags().IntVar(&keep, "keep", cache.DefaultKeepCount, "Number of artifacts to keep")
	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

// runCacheList lists the cache folder contents.
func runCacheList() error {
	manager, err := newCacheManager()
	if err != nil {
		return err
	}

	artifacts, err := manager.List()
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	if format != output.FormatText {
		writer := output.NewWriter(os.Stdout, format)
		return writer.Write(artifacts)
	}

	if len(artifacts) == 0 {
		fmt.Println("Cache is empty.")
		fmt.Printf("Cache folder: %s\n", manager.Dir())
		return nil
	}

	fmt.Printf("Artifacts in %s:\n\n", manager.Dir())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "Name\tModified\tSize\t")
	for _, a := range artifacts {
		marker := ""
		if a.Staging {
			marker = "(interrupted)"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			a.Name,
			a.ModTime.Format("2006-01-02 15:04:05"),
			formatSize(a.Size),
			marker,
		)
	}
	_ = w.Flush()

	return nil
}

// runCachePrune prunes the cache folder.
func runCachePrune(keep int, force bool) error {
	manager, err := newCacheManager()
	if err != nil {
		return err
	}

	if !force {
		if !interactive.IsTerminal() {
			return fmt.Errorf("refusing to prune without confirmation: pass --force")
		}
		prompter := interactive.NewPrompter()
		if !prompter.Confirm("Prune %s, keeping the %d newest artifacts?", manager.Dir(), keep) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	result, err := manager.Prune(keep)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	if format != output.FormatText {
		writer := output.NewWriter(os.Stdout, format)
		return writer.Write(result)
	}

	if len(result.Deleted) == 0 {
		fmt.Printf("Nothing to prune, %d artifacts kept.\n", result.Kept)
		return nil
	}

	for _, a := range result.Deleted {
		fmt.Printf("Deleted %s (%s)\n", a.Name, formatSize(a.Size))
	}
	fmt.Printf("Kept %d artifacts.\n", result.Kept)

	return nil
}

// newCacheManager builds a cache manager for the configured cache folder.
func newCacheManager() (*cache.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	dir, err := cfg.ResolveCacheDir()
	if err != nil {
		return nil, err
	}

	return cache.NewManager(dir), nil
}

// formatSize formats a byte size as a human-readable string.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
