package git

import (
	"fmt"
	"regexp"
)

var repoFormat = regexp.MustCompile(`^[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+$`)

func isValidRepoFormat(repo string) bool {
	return repoFormat.MatchString(repo)
}

// ValidateRepositoryFormat validates that a repository string is in the correct owner/repo format
func ValidateRepositoryFormat(repo string) error {
	if !isValidRepoFormat(repo) {
		return fmt.Errorf("invalid repository format: %q - expected format: owner/repo", repo)
	}
	return nil
}
