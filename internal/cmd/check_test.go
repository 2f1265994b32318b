package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"appup/internal/config"
)

func TestCheckResultString(t *testing.T) {
	tests := []struct {
		name   string
		result CheckResult
		want   string
	}{
		{
			name:   "release only",
			result: CheckResult{Release: "2.4.2"},
			want:   "newest release: 2.4.2",
		},
		{
			name:   "release and experimental",
			result: CheckResult{Release: "2.4.2", Experimental: "2.5.0-beta.1"},
			want:   "newest release: 2.4.2\nnewest experimental: 2.5.0-beta.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchVersions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("2.4.2\nbeta=2.5.0-beta.1\n"))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.CacheDir = t.TempDir()
	cfg.LogLevel = "error"

	result, err := fetchVersions(cfg, srv.URL)
	if err != nil {
		t.Fatalf("fetchVersions() error = %v", err)
	}

	if result.Release != "2.4.2" {
		t.Errorf("Release = %s, want 2.4.2", result.Release)
	}
	if result.Experimental != "2.5.0-beta.1" {
		t.Errorf("Experimental = %s, want 2.5.0-beta.1", result.Experimental)
	}
}

func TestFetchVersionsReleaseOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("2.4.2\n"))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.CacheDir = t.TempDir()
	cfg.LogLevel = "error"

	result, err := fetchVersions(cfg, srv.URL)
	if err != nil {
		t.Fatalf("fetchVersions() error = %v", err)
	}

	if result.Release != "2.4.2" {
		t.Errorf("Release = %s, want 2.4.2", result.Release)
	}
	if result.Experimental != "" {
		t.Errorf("Experimental = %s, want empty", result.Experimental)
	}
}

func TestFetchVersionsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.CacheDir = t.TempDir()
	cfg.LogLevel = "error"

	if _, err := fetchVersions(cfg, srv.URL); err == nil {
		t.Error("fetchVersions() should fail on a missing descriptor")
	}
}
