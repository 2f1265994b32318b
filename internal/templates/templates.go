// Package templates holds the embedded starter configs for appup init.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

//go:embed *.toml
var builtin embed.FS

// Template is a named starter config.
type Template struct {
	Name        string
	Description string
	Content     []byte
}

var descriptions = map[string]string{
	"minimal": "Descriptor URL and log level only",
	"full":    "Every setting, commented",
}

// List returns the built-in template names in alphabetical order.
func List() []string {
	matches, err := fs.Glob(builtin, "*.toml")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, strings.TrimSuffix(match, ".toml"))
	}
	sort.Strings(names)
	return names
}

// Get looks up a built-in template by name.
func Get(name string) (*Template, error) {
	data, err := builtin.ReadFile(name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("no built-in template named %q", name)
	}

	return &Template{
		Name:        name,
		Description: GetDescription(name),
		Content:     data,
	}, nil
}

// GetDescription returns a one-line summary of a built-in template and
// a generic label for everything else.
func GetDescription(name string) string {
	if desc, ok := descriptions[name]; ok {
		return desc
	}
	return "Custom template"
}

// ExpandEnvVars substitutes ${VAR} and ${VAR:-default} references with
// values from the environment. Unset variables without a default expand
// to the empty string.
func ExpandEnvVars(content []byte) []byte {
	expanded := os.Expand(string(content), func(ref string) string {
		name, fallback, _ := strings.Cut(ref, ":-")
		if value := os.Getenv(name); value != "" {
			return value
		}
		return fallback
	})
	return []byte(expanded)
}

// GetExpanded is Get followed by ExpandEnvVars on the content.
func GetExpanded(name string) (*Template, error) {
	tmpl, err := Get(name)
	if err != nil {
		return nil, err
	}

	tmpl.Content = ExpandEnvVars(tmpl.Content)
	return tmpl, nil
}
