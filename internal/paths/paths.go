package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppName is the application name used in config paths
	AppName = "timeline"

	// ConfigFileName is the name of the user config file
	ConfigFileName = "config.yaml"

	// RepoConfigFileName is the name of the team config checked into a repository
	RepoConfigFileName = ".timeline.yaml"
)

// ConfigSource indicates where a config file came from
type ConfigSource int

const (
	SourceUnknown ConfigSource = iota
	SourceUserConfig
	SourceRepoDefault
	SourceCLIFlag
)

func (s ConfigSource) String() string {
	switch s {
	case SourceUserConfig:
		return "user config"
	case SourceRepoDefault:
		return "repository default"
	case SourceCLIFlag:
		return "CLI flag"
	default:
		return "unknown"
	}
}

// Paths locates configuration files following the XDG Base Directory layout
type Paths struct {
	// UserConfigDir is the user's config directory (~/.config/timeline)
	UserConfigDir string

	// ProjectRoot is the root of the current git repository (if any)
	ProjectRoot string

	// RepoDefaultConfigPath is the repository's shared config (.github/.timeline.yaml)
	RepoDefaultConfigPath string
}

// New resolves the user config directory (XDG_CONFIG_HOME or ~/.config on
// Unix, %AppData% on Windows)
func New() (*Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config directory: %w", err)
	}
	return &Paths{UserConfigDir: filepath.Join(configDir, AppName)}, nil
}

// NewWithProject also locates the config shared through projectRoot
func NewWithProject(projectRoot string) (*Paths, error) {
	p, err := New()
	if err != nil {
		return nil, err
	}

	p.ProjectRoot = projectRoot
	p.RepoDefaultConfigPath = filepath.Join(projectRoot, ".github", RepoConfigFileName)
	return p, nil
}

func (p *Paths) UserConfigFile() string {
	return filepath.Join(p.UserConfigDir, ConfigFileName)
}

// EnsureDirs creates the user config directory with XDG permissions (0700)
func (p *Paths) EnsureDirs() error {
	if err := os.MkdirAll(p.UserConfigDir, 0700); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf(
				"permission denied: cannot create configuration directory %s\n\n"+
					"Possible solutions:\n"+
					"  1. Fix permissions: sudo chown -R $USER %s\n"+
					"  2. Set custom location: export XDG_CONFIG_HOME=/tmp/%s-config\n\n"+
					"Original error: %v",
				p.UserConfigDir, filepath.Dir(p.UserConfigDir), AppName, err)
		}
		return fmt.Errorf("failed to create configuration directory %s: %w", p.UserConfigDir, err)
	}
	return nil
}

// GetConfigPaths returns the existing config files, lowest priority first
func (p *Paths) GetConfigPaths() []string {
	var paths []string

	if p.RepoDefaultConfigPath != "" && fileExists(p.RepoDefaultConfigPath) {
		paths = append(paths, p.RepoDefaultConfigPath)
	}
	if userConfig := p.UserConfigFile(); fileExists(userConfig) {
		paths = append(paths, userConfig)
	}

	return paths
}

// GetConfigSource determines which source a config path corresponds to
func (p *Paths) GetConfigSource(path string) ConfigSource {
	switch path {
	case p.UserConfigFile():
		return SourceUserConfig
	case p.RepoDefaultConfigPath:
		return SourceRepoDefault
	default:
		return SourceUnknown
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
