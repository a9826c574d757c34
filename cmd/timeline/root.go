package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cloudsky01/gh-timeline/internal/config"
	"github.com/Cloudsky01/gh-timeline/internal/git"
	"github.com/Cloudsky01/gh-timeline/internal/github"
	"github.com/Cloudsky01/gh-timeline/internal/paths"
	"github.com/Cloudsky01/gh-timeline/internal/progress"
	"github.com/Cloudsky01/gh-timeline/internal/theme"
)

type options struct {
	configPath string
	repo       string
	pr         int
	branch     string
	commit     string
	width      int
	limit      int
	list       bool
	compare    bool
	history    bool
	pick       bool
	diff       int64
	transport  string
	timeout    time.Duration
}

var (
	opts options

	rootCmd = &cobra.Command{
		Use:   "timeline [run-id | run-id...]",
		Short: "Visualize GitHub Actions workflow runs as text timelines",
		Long: `Timeline renders GitHub Actions workflow runs as fixed-width text reports:
a per-job queue/run timeline for one run, a side-by-side diff of two runs,
a history table across many runs, or a listing of recent runs.

Data is read through the GitHub CLI (gh), which must be installed and
authenticated, or directly from the REST API with --transport rest.

Examples:
  timeline 123456789                    # Timeline of one run
  timeline 123456789 --diff 123456790   # Compare two runs
  timeline --pr 42                      # Every run for a pull request
  timeline --history --branch main      # Recent runs on a branch, oldest first
  timeline --list --branch main         # List run ids to feed back in`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	flags := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to an additional configuration file")
	flags.StringVarP(&opts.repo, "repo", "R", "", "Repository in OWNER/REPO format (defaults to the current directory)")
	flags.IntVar(&opts.pr, "pr", 0, "Pull request number to find runs for")
	flags.StringVar(&opts.branch, "branch", "", "Branch name to find runs for")
	flags.StringVar(&opts.commit, "commit", "", "Commit SHA to find runs for")
	flags.IntVar(&opts.width, "width", config.DefaultWidth, "Width of report rules")
	flags.IntVar(&opts.limit, "limit", config.DefaultLimit, "Number of runs to list or include in history")
	flags.BoolVar(&opts.list, "list", false, "List runs instead of visualizing them")
	flags.BoolVar(&opts.compare, "compare", false, "Show the comparison view for the selected runs")
	flags.BoolVar(&opts.history, "history", false, "Show one row per run; run ids come from the arguments, --branch or --pr")
	flags.BoolVar(&opts.pick, "pick", false, "Choose a run interactively")
	flags.Int64Var(&opts.diff, "diff", 0, "Compare the selected run with this run id")
	flags.StringVar(&opts.transport, "transport", config.DefaultTransport, "How to reach GitHub: cli (through gh) or rest")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "Timeout for each API request")

	rootCmd.SetVersionTemplate(`{{printf "timeline %s\n" .Version}}`)
}

// newSource and resolveRepository are replaced in tests.
var (
	newSource         = defaultSource
	resolveRepository = github.ResolveRepository
)

func defaultSource(cfg *config.Config, repo string) (github.Source, error) {
	var transport github.Transport
	switch cfg.Transport {
	case config.TransportREST:
		t, err := github.NewRESTTransport(cfg.RequestTimeout())
		if err != nil {
			return nil, err
		}
		transport = t
	default:
		if err := github.CheckGitHubCLI(); err != nil {
			return nil, err
		}
		transport = github.NewCLITransport()
	}
	return github.NewClientWithTimeout(repo, transport, cfg.RequestTimeout()), nil
}

// resolvePaths locates config files relative to the enclosing git
// repository, if any.
func resolvePaths() (*paths.Paths, error) {
	if root, err := git.GetGitRepositoryRoot(); err == nil {
		return paths.NewWithProject(root)
	}
	return paths.New()
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cfg *config.Config, o options, changed func(name string) bool) {
	if changed("repo") {
		cfg.Repository = o.repo
	}
	if changed("width") {
		cfg.Width = o.width
	}
	if changed("limit") {
		cfg.Limit = o.limit
	}
	if changed("transport") {
		cfg.Transport = o.transport
	}
	if changed("timeout") {
		cfg.Timeout = o.timeout.String()
	}
}

// parseRunIDs converts positional arguments to run ids. Only history mode
// accepts more than one.
func parseRunIDs(args []string, history bool) ([]int64, error) {
	if !history && len(args) > 1 {
		return nil, fmt.Errorf("expected at most one run ID, got %d (use --history for several)", len(args))
	}
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid run ID %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	ids, err := parseRunIDs(args, opts.history)
	if err != nil {
		return err
	}

	p, err := resolvePaths()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}
	cfg, err := config.Load(p, opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cfg, opts, cmd.Flags().Changed)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	repo, err := resolveRepository(cfg.Repository)
	if err != nil {
		return err
	}

	src, err := newSource(cfg, repo)
	if err != nil {
		return err
	}

	a := &app{
		cfg:      cfg,
		repo:     repo,
		src:      src,
		out:      cmd.OutOrStdout(),
		reporter: reporterFor(cmd.ErrOrStderr()),
		usage:    cmd.Usage,
	}
	return a.run(cmd.Context(), opts, ids)
}

func reporterFor(w io.Writer) *progress.Reporter {
	if f, ok := w.(*os.File); ok {
		return progress.New(f)
	}
	return progress.NewPlain(w)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, theme.Current.ErrorLine(err.Error()))
		os.Exit(1)
	}
}
