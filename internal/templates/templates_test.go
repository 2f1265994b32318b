package templates

import (
	"strings"
	"testing"
)

func TestList(t *testing.T) {
	names := List()

	if len(names) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(names))
	}
	if names[0] != "full" || names[1] != "minimal" {
		t.Errorf("List() = %v, want [full minimal]", names)
	}
}

func TestGet(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			tmpl, err := Get(name)
			if err != nil {
				t.Fatalf("Get(%s) error = %v", name, err)
			}

			if tmpl.Name != name {
				t.Errorf("Name = %s, want %s", tmpl.Name, name)
			}
			if tmpl.Description == "" {
				t.Errorf("template %s has no description", name)
			}
			if !strings.Contains(string(tmpl.Content), "version_url") {
				t.Errorf("template %s missing version_url", name)
			}
		})
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Error("Get() should fail for an unknown template")
	}
}

func TestGetDescription(t *testing.T) {
	if desc := GetDescription("minimal"); desc == "" || desc == "Custom template" {
		t.Errorf("GetDescription(minimal) = %q", desc)
	}
	if desc := GetDescription("https://example.com/mine.toml"); desc != "Custom template" {
		t.Errorf("GetDescription(url) = %q, want Custom template", desc)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("APPUP_TEST_URL", "https://example.com/version")

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "set variable",
			content: `version_url = "${APPUP_TEST_URL}"`,
			want:    `version_url = "https://example.com/version"`,
		},
		{
			name:    "unset variable",
			content: `version_url = "${APPUP_TEST_UNSET}"`,
			want:    `version_url = ""`,
		},
		{
			name:    "unset with default",
			content: `version_url = "${APPUP_TEST_UNSET:-https://fallback.example}"`,
			want:    `version_url = "https://fallback.example"`,
		},
		{
			name:    "set wins over default",
			content: `version_url = "${APPUP_TEST_URL:-https://fallback.example}"`,
			want:    `version_url = "https://example.com/version"`,
		},
		{
			name:    "no variables",
			content: `log_level = "info"`,
			want:    `log_level = "info"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(ExpandEnvVars([]byte(tt.content))); got != tt.want {
				t.Errorf("ExpandEnvVars() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetExpanded(t *testing.T) {
	t.Setenv("APPUP_VERSION_URL", "https://example.com/version")

	tmpl, err := GetExpanded("minimal")
	if err != nil {
		t.Fatalf("GetExpanded() error = %v", err)
	}

	if !strings.Contains(string(tmpl.Content), `version_url = "https://example.com/version"`) {
		t.Errorf("expanded template missing the env value:\n%s", tmpl.Content)
	}
	if strings.Contains(string(tmpl.Content), "${") {
		t.Errorf("expanded template still contains placeholders:\n%s", tmpl.Content)
	}
}
