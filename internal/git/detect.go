package git

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxParentDepth bounds the upward search for a .git directory
const maxParentDepth = 10

// GetGitRepositoryRoot returns the closest directory at or above the
// working directory that contains .git
func GetGitRepositoryRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return findRoot(cwd)
}

func findRoot(dir string) (string, error) {
	for range maxParentDepth {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("not in a git repository")
}

// DetectRepository reads owner/repo from the remotes of the enclosing git
// checkout. The origin remote is preferred; otherwise the first GitHub
// remote is used.
func DetectRepository() (string, error) {
	root, err := GetGitRepositoryRoot()
	if err != nil {
		return "", err
	}
	return parseGitConfig(filepath.Join(root, ".git", "config"))
}

func parseGitConfig(configPath string) (string, error) {
	f, err := os.Open(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}
	defer f.Close()

	var (
		remote  string
		order   []string
		remotes = map[string]string{}
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			remote = remoteName(line)
			continue
		}
		if remote == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) != "url" {
			continue
		}
		if _, seen := remotes[remote]; !seen {
			order = append(order, remote)
		}
		remotes[remote] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}

	if url, ok := remotes["origin"]; ok {
		if repo := extractRepoFromURL(url); repo != "" {
			return repo, nil
		}
		return "", fmt.Errorf("failed to extract owner/repo from URL: %s", url)
	}
	for _, name := range order {
		if repo := extractRepoFromURL(remotes[name]); repo != "" {
			return repo, nil
		}
	}
	return "", fmt.Errorf("no GitHub remote found in git config")
}

// remoteName returns "origin" for a `[remote "origin"]` header and "" for
// any other section.
func remoteName(header string) string {
	header = strings.TrimSuffix(strings.TrimPrefix(header, "["), "]")
	kind, name, ok := strings.Cut(header, " ")
	if !ok || kind != "remote" {
		return ""
	}
	return strings.Trim(strings.TrimSpace(name), `"`)
}

// extractRepoFromURL converts a GitHub remote URL to owner/repo:
//   - https://github.com/owner/repo(.git)
//   - git@github.com:owner/repo(.git)
//   - ssh://git@github.com/owner/repo(.git)
func extractRepoFromURL(url string) string {
	var rest string
	switch {
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "ssh://"):
		_, after, ok := strings.Cut(url, "github.com/")
		if !ok {
			return ""
		}
		rest = after
	case strings.HasPrefix(url, "git@github.com:"):
		rest = strings.TrimPrefix(url, "git@github.com:")
	default:
		return ""
	}

	rest = strings.TrimSuffix(rest, "/")
	rest = strings.TrimSuffix(rest, ".git")
	if !isValidRepoFormat(rest) {
		return ""
	}
	return rest
}
