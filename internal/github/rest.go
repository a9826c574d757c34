package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

// RESTTransport talks to the REST API directly over HTTP with the token the
// GitHub CLI stores.
type RESTTransport struct {
	rest *ghAPI.RESTClient
}

func NewRESTTransport(timeout time.Duration) (*RESTTransport, error) {
	return newRESTTransport(ghAPI.ClientOptions{Timeout: timeout})
}

func newRESTTransport(opts ghAPI.ClientOptions) (*RESTTransport, error) {
	rest, err := ghAPI.NewRESTClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client (is gh authenticated?): %w", err)
	}
	return &RESTTransport{rest: rest}, nil
}

func (t *RESTTransport) Get(ctx context.Context, path string, v any) error {
	err := t.rest.DoWithContext(ctx, http.MethodGet, path, nil, v)
	if err == nil {
		return nil
	}
	var httpErr *ghAPI.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("GitHub API returned %d: %s", httpErr.StatusCode, httpErr.Message)
	}
	return err
}
