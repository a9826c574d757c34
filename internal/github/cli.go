package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// commandRunner runs a command and returns its stdout.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CLITransport calls the API through `gh api`, reusing whatever auth the
// GitHub CLI is configured with.
type CLITransport struct {
	run commandRunner
}

func NewCLITransport() *CLITransport {
	return &CLITransport{run: execRunner}
}

func (t *CLITransport) Get(ctx context.Context, path string, v any) error {
	output, err := t.run(ctx, "gh", "api", path)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("gh api failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return fmt.Errorf("gh api failed: %w", err)
	}

	if len(strings.TrimSpace(string(output))) == 0 {
		return nil
	}
	if err := json.Unmarshal(output, v); err != nil {
		return fmt.Errorf("failed to parse gh api response: %w", err)
	}
	return nil
}

// CheckGitHubCLI verifies that gh is installed and authenticated.
func CheckGitHubCLI() error {
	if _, err := exec.LookPath("gh"); err != nil {
		return fmt.Errorf("GitHub CLI (gh) is not installed.\n\nInstall it from: https://cli.github.com/")
	}

	cmd := exec.Command("gh", "auth", "status")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("GitHub CLI is not authenticated.\n\nRun: gh auth login")
	}

	return nil
}
