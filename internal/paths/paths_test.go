package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if !strings.HasSuffix(p.UserConfigDir, AppName) {
		t.Errorf("UserConfigDir should end with '%s', got: %s", AppName, p.UserConfigDir)
	}

	if !strings.HasSuffix(p.UserConfigFile(), filepath.Join(AppName, ConfigFileName)) {
		t.Errorf("UserConfigFile should end with '%s', got: %s", ConfigFileName, p.UserConfigFile())
	}
}

func TestNewWithProject(t *testing.T) {
	projectRoot := "/path/to/project"
	p, err := NewWithProject(projectRoot)
	if err != nil {
		t.Fatalf("NewWithProject() failed: %v", err)
	}

	if p.ProjectRoot != projectRoot {
		t.Errorf("ProjectRoot = %s, want %s", p.ProjectRoot, projectRoot)
	}

	expected := filepath.Join(projectRoot, ".github", RepoConfigFileName)
	if p.RepoDefaultConfigPath != expected {
		t.Errorf("RepoDefaultConfigPath = %s, want %s", p.RepoDefaultConfigPath, expected)
	}
}

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	p := &Paths{UserConfigDir: filepath.Join(tmpDir, "config", AppName)}

	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() failed: %v", err)
	}

	info, err := os.Stat(p.UserConfigDir)
	if err != nil {
		t.Fatalf("config dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("config path is not a directory")
	}
}

func TestGetConfigPaths(t *testing.T) {
	tmpDir := t.TempDir()
	p := &Paths{
		UserConfigDir:         filepath.Join(tmpDir, "config"),
		RepoDefaultConfigPath: filepath.Join(tmpDir, ".github", RepoConfigFileName),
	}

	if got := p.GetConfigPaths(); len(got) != 0 {
		t.Fatalf("expected no config paths, got %v", got)
	}

	for _, path := range []string{p.RepoDefaultConfigPath, p.UserConfigFile()} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("width: 100\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got := p.GetConfigPaths()
	if len(got) != 2 {
		t.Fatalf("expected 2 config paths, got %v", got)
	}
	if got[0] != p.RepoDefaultConfigPath || got[1] != p.UserConfigFile() {
		t.Errorf("paths not in precedence order: %v", got)
	}
}

func TestGetConfigSource(t *testing.T) {
	p := &Paths{
		UserConfigDir:         "/home/u/.config/timeline",
		RepoDefaultConfigPath: "/repo/.github/.timeline.yaml",
	}

	tests := []struct {
		path string
		want ConfigSource
	}{
		{p.UserConfigFile(), SourceUserConfig},
		{p.RepoDefaultConfigPath, SourceRepoDefault},
		{"/elsewhere.yaml", SourceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := p.GetConfigSource(tt.path); got != tt.want {
				t.Errorf("GetConfigSource(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestConfigSourceString(t *testing.T) {
	if SourceRepoDefault.String() != "repository default" {
		t.Errorf("unexpected string %q", SourceRepoDefault.String())
	}
	if ConfigSource(99).String() != "unknown" {
		t.Errorf("unexpected string %q", ConfigSource(99).String())
	}
}
