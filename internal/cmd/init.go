package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"appup/internal/config"
	"appup/internal/interactive"
	"appup/internal/templates"
)

// Remote templates larger than this are rejected outright.
const maxTemplateBytes = 1 << 20

func newInitCmd() *cobra.Command {
	var templateName string
	var outputPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new appup.toml from a template",
		Long: `Create a new appup.toml from a built-in or custom template.

Available templates:
  minimal - Descriptor URL and log level only
  full    - Every setting, commented

Examples:
  appup init                             # Interactive mode
  appup init --template=minimal          # Direct template selection
  appup init --template=https://...      # Custom template URL
  appup init --config ~/path/appup.toml  # Custom output location`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.InOrStdin(), cmd.OutOrStdout(), templateName, outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "Template name or URL")
	cmd.Flags().StringVar(&outputPath, "config", "", "Output path for appup.toml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing appup.toml")

	_ = cmd.RegisterFlagCompletionFunc("template", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := templates.List()
		completions := make([]string, 0, len(names))
		for _, name := range names {
			completions = append(completions, name+"\t"+templates.GetDescription(name))
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runInit executes the init workflow.
func runInit(stdin io.Reader, stdout io.Writer, templateName, outputPath string, force bool) error {
	prompter := interactive.NewPrompterWithIO(stdin, stdout)

	if outputPath == "" {
		var err error
		outputPath, err = defaultConfigPath()
		if err != nil {
			return err
		}
	}
	outputPath = expandHomePath(outputPath)

	if _, err := os.Stat(outputPath); err == nil && !force {
		if !interactive.IsTerminal() {
			return fmt.Errorf("config already exists at %s: pass --force to overwrite", outputPath)
		}
		if !prompter.Confirm("Config already exists at %s. Overwrite?", outputPath) {
			_, _ = fmt.Fprintln(stdout, "Aborted.")
			return nil
		}
	}

	if templateName == "" {
		if interactive.IsTerminal() {
			selected, err := selectTemplate(prompter)
			if err != nil {
				return err
			}
			templateName = selected
		} else {
			templateName = "minimal"
		}
	}

	var content []byte
	if strings.HasPrefix(templateName, "http://") || strings.HasPrefix(templateName, "https://") {
		var err error
		content, err = fetchRemoteTemplate(templateName)
		if err != nil {
			return fmt.Errorf("failed to fetch template: %w", err)
		}
	} else {
		tmpl, err := templates.GetExpanded(templateName)
		if err != nil {
			return fmt.Errorf("failed to load template: %w", err)
		}
		content = tmpl.Content
	}

	// Reject templates the config loader would choke on later
	if _, err := config.Parse(content); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	parentDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", parentDir, err)
	}

	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "Created %s\n", outputPath)
	_, _ = fmt.Fprintln(stdout, "\nNext steps:")
	_, _ = fmt.Fprintln(stdout, "  1. Set version_url to your descriptor")
	_, _ = fmt.Fprintln(stdout, "  2. Run 'appup check' to query it")

	return nil
}

// selectTemplate presents the built-in templates as a numbered menu.
func selectTemplate(prompter *interactive.Prompter) (string, error) {
	names := templates.List()

	var menu strings.Builder
	menu.WriteString("\nSelect a template:\n")
	for i, name := range names {
		fmt.Fprintf(&menu, "  %d. %-10s - %s\n", i+1, name, templates.GetDescription(name))
	}
	fmt.Fprintf(&menu, "\nSelect [1-%d]: ", len(names))

	answer, err := prompter.Ask("%s", menu.String())
	if err != nil {
		return "", fmt.Errorf("failed to read selection: %w", err)
	}

	num, err := strconv.Atoi(answer)
	if err != nil || num < 1 || num > len(names) {
		return "", fmt.Errorf("invalid selection: %s", answer)
	}
	return names[num-1], nil
}

// fetchRemoteTemplate retrieves template content over HTTP.
func fetchRemoteTemplate(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getting %s: %s", url, resp.Status)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxTemplateBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if len(content) > maxTemplateBytes {
		return nil, fmt.Errorf("template at %s exceeds %d bytes", url, maxTemplateBytes)
	}

	return content, nil
}

// defaultConfigPath returns the data-directory config location.
func defaultConfigPath() (string, error) {
	dir, err := config.DataDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config location: %w", err)
	}
	return filepath.Join(dir, "appup.toml"), nil
}

// expandHomePath expands a leading ~ to the user's home directory.
func expandHomePath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
