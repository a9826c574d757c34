package github

import (
	"errors"
	"fmt"

	"github.com/cli/go-gh/v2/pkg/repository"

	"github.com/Cloudsky01/gh-timeline/internal/git"
)

// ErrNoRepository is returned when no repository is given and none can be
// inferred from the environment.
var ErrNoRepository = errors.New("could not determine repository")

// currentRepository and detectRepository are swapped out in tests.
var (
	currentRepository = func() (string, error) {
		r, err := repository.Current()
		if err != nil {
			return "", err
		}
		return r.Owner + "/" + r.Name, nil
	}
	detectRepository = git.DetectRepository
)

// ResolveRepository returns explicit when set, otherwise the repository gh
// would use here (GH_REPO or the git remotes), otherwise the origin remote
// found in .git/config.
func ResolveRepository(explicit string) (string, error) {
	repo := explicit
	if repo == "" {
		if r, err := currentRepository(); err == nil {
			repo = r
		} else if r, err := detectRepository(); err == nil {
			repo = r
		}
	}
	if repo == "" {
		return "", fmt.Errorf("%w. Use --repo owner/repo", ErrNoRepository)
	}
	if err := git.ValidateRepositoryFormat(repo); err != nil {
		return "", err
	}
	return repo, nil
}
