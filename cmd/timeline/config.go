package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Cloudsky01/gh-timeline/internal/config"
	"github.com/Cloudsky01/gh-timeline/internal/paths"
	"github.com/Cloudsky01/gh-timeline/internal/theme"
)

type saveLocation int

const (
	saveLocationUser saveLocation = iota
	saveLocationTeam
	saveLocationExplicit
)

func (l saveLocation) String() string {
	switch l {
	case saveLocationTeam:
		return "team"
	case saveLocationExplicit:
		return "explicit"
	default:
		return "user"
	}
}

var (
	initScope string
	initForce bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage timeline configuration",
		Long: `Manage timeline configuration files.

Configuration Locations:
  Repo default:    .github/.timeline.yaml (team-shared defaults, optional)
  User config:     ~/.config/timeline/config.yaml (user-specific settings)

Configuration Precedence (lowest to highest):
  1. Repository default
  2. User config
  3. File given with --config
  4. Environment variables (TIMELINE_*)
  5. CLI flags`,
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show configuration file locations",
		RunE:  runConfigPath,
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Display merged configuration",
		RunE:  runConfigShow,
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Long: `Write a configuration file holding the defaults and the detected
repository. By default the user config is written; --scope team writes the
repository's .github/.timeline.yaml instead, and --config writes to the
given path.`,
		RunE: runConfigInit,
	}
)

func init() {
	configInitCmd.Flags().StringVar(&initScope, "scope", "user", "Where to write the file: user or team")
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	p, err := resolvePaths()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}
	printConfigPaths(cmd.OutOrStdout(), p, opts.configPath)
	return nil
}

func printConfigPaths(w io.Writer, p *paths.Paths, explicitPath string) {
	t := theme.Current

	fmt.Fprintln(w, t.Header.Render("Configuration File Locations"))
	fmt.Fprintln(w, t.Divider.Render("════════════════════════════════════════════════════════════"))
	fmt.Fprintln(w)

	userConfigPath := p.UserConfigFile()
	fmt.Fprintf(w, "User Config:        %s %s\n", userConfigPath, t.Exists(fileExists(userConfigPath)))

	if p.ProjectRoot != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Project Root:       %s\n", p.ProjectRoot)
		fmt.Fprintf(w, "Repo Default:       %s %s\n", p.RepoDefaultConfigPath, t.Exists(fileExists(p.RepoDefaultConfigPath)))
	}

	if explicitPath != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-20s%s %s\n", paths.SourceCLIFlag.String()+":", explicitPath, t.Exists(fileExists(explicitPath)))
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	p, err := resolvePaths()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}

	cfg, err := config.Load(p, opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Merged Configuration")
	fmt.Fprintln(w, "════════════════════════════════════════════════════════════")
	fmt.Fprintln(w, string(data))

	fmt.Fprintln(w, "Active Configuration Files:")
	if len(cfg.Sources()) == 0 {
		fmt.Fprintln(w, "  (none, using defaults)")
	}
	for _, path := range cfg.Sources() {
		source := p.GetConfigSource(path)
		if path == opts.configPath {
			source = paths.SourceCLIFlag
		}
		fmt.Fprintf(w, "  • %s (%s)\n", path, source)
	}

	return nil
}

// determineConfigSaveTarget picks the file config init writes: an explicit
// --config path wins, then the requested scope.
func determineConfigSaveTarget(p *paths.Paths, explicit bool, explicitPath, scope string) (string, saveLocation, error) {
	if explicit && explicitPath != "" {
		return explicitPath, saveLocationExplicit, nil
	}

	switch scope {
	case "", "user":
		return p.UserConfigFile(), saveLocationUser, nil
	case "team":
		if p.RepoDefaultConfigPath == "" {
			return "", saveLocationTeam, fmt.Errorf("team config requires running inside a git repository")
		}
		return p.RepoDefaultConfigPath, saveLocationTeam, nil
	default:
		return "", saveLocationUser, fmt.Errorf("unknown scope %q (expected user or team)", scope)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	p, err := resolvePaths()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}

	target, location, err := determineConfigSaveTarget(p, cmd.Flags().Changed("config"), opts.configPath, initScope)
	if err != nil {
		return err
	}

	cfg, err := writeDefaultConfig(cmd.ErrOrStderr(), p, target, location, initForce)
	if err != nil {
		return err
	}

	printSuccessSummary(cmd.OutOrStdout(), target, location, cfg)
	return nil
}

// writeDefaultConfig saves the defaults to target. The detected repository
// is pinned only in team and explicit files; a user config applies to every
// checkout and must leave detection to each run.
func writeDefaultConfig(warn io.Writer, p *paths.Paths, target string, location saveLocation, force bool) (*config.Config, error) {
	if fileExists(target) && !force {
		return nil, fmt.Errorf("configuration file %s already exists. Use --force to overwrite", target)
	}

	if location == saveLocationUser {
		if err := p.EnsureDirs(); err != nil {
			return nil, err
		}
	}

	cfg := config.Default()
	if location != saveLocationUser {
		if repo, err := resolveRepository(""); err == nil {
			cfg.Repository = repo
		} else {
			fmt.Fprintln(warn, theme.Current.WarningLine("Could not detect the repository; it will be resolved on each run"))
		}
	}

	if err := cfg.Save(target); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}
	return cfg, nil
}

func printSuccessSummary(w io.Writer, path string, location saveLocation, cfg *config.Config) {
	t := theme.Current
	divider := t.Divider.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	repo := cfg.Repository
	if repo == "" {
		repo = "(detected at run time)"
	}

	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, t.Success.Render(t.Icons.Success+" Configuration created"))
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.Label.Render("Config file: ")+t.Info.Render(path)+t.Muted.Render(" ("+location.String()+")"))
	fmt.Fprintln(w, t.Label.Render("Repository:  ")+t.Info.Render(repo))
	fmt.Fprintln(w, t.Label.Render("Transport:   ")+t.Info.Render(cfg.Transport))
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.Header.Render("Next steps:"))
	fmt.Fprintln(w, t.Info.Render("   timeline --list       # Recent runs"))
	fmt.Fprintln(w, t.Info.Render("   timeline <run-id>     # Timeline of one run"))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
