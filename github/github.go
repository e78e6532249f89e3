// Package github is the best-effort third-party profile lookup. Failures
// surface as store.ErrUnavailable and never touch core state.
package github

import (
	"context"
	"net/http"
	"time"

	"github.com/devworkshq/devworks/store"
	gh "github.com/google/go-github/github"
	"github.com/pkg/errors"
)

const recentRepoCount = 5

// Repo is the slim view of a public repository the profile page renders.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HtmlUrl     string `json:"html_url"`
	Stars       int    `json:"stars"`
}

// Client wraps the go-github API client.
type Client struct {
	inner *gh.Client
}

func NewClient() *Client {
	httpClient := &http.Client{Timeout: 10 * time.Second}
	return &Client{inner: gh.NewClient(httpClient)}
}

// RecentRepos fetches the user's latest public repositories. Any API failure
// is reported as unavailable, the caller must treat it as best-effort.
func (c *Client) RecentRepos(ctx context.Context, username string) ([]Repo, error) {
	opts := &gh.RepositoryListOptions{
		Sort:        "created",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: recentRepoCount},
	}
	repos, _, err := c.inner.Repositories.List(ctx, username, opts)
	if err != nil {
		return nil, errors.Wrap(store.ErrUnavailable, "github profile lookup failed")
	}
	out := make([]Repo, 0, len(repos))
	for _, repo := range repos {
		out = append(out, Repo{
			Name:        repo.GetName(),
			Description: repo.GetDescription(),
			HtmlUrl:     repo.GetHTMLURL(),
			Stars:       repo.GetStargazersCount(),
		})
	}
	return out, nil
}
