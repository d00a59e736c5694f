// Package ghclient fetches a pull request's changed files from GitHub
// and assembles them into differ.FilePairs for AnalyzeRemote. It
// contributes no algorithmic content; the risk analysis lives entirely
// in internal/triage.
package ghclient

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"

	"github.com/entitytriage/triage/internal/differ"
	"github.com/entitytriage/triage/internal/noise"
)

// Client wraps the GitHub API client used to fetch pull request diffs.
type Client struct {
	gh *github.Client
}

// NewClient creates a client authenticated with a personal access token
// or GitHub App installation token. An empty token creates an
// unauthenticated client, subject to GitHub's lower rate limits.
func NewClient(token string) *Client {
	gh := github.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	return &Client{gh: gh}
}

// FilePairs fetches every changed file in a pull request and resolves
// each into a differ.FilePair, fetching before/after blob content as
// needed. Files covered by the noise policy are dropped before the
// caller ever sees them, matching the boundary-level noise filtering
// every external collaborator applies.
func (c *Client) FilePairs(ctx context.Context, owner, repo string, number int) ([]differ.FilePair, error) {
	var pairs []differ.FilePair

	opts := &github.ListOptions{PerPage: 100}
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing PR files: %w", err)
		}

		for _, f := range files {
			path := f.GetFilename()
			if noise.IsNoise(path) {
				continue
			}

			pair, err := c.buildPair(ctx, owner, repo, number, f)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return pairs, nil
}

func (c *Client) buildPair(ctx context.Context, owner, repo string, number int, f *github.CommitFile) (differ.FilePair, error) {
	path := f.GetFilename()
	status := statusFromGitHub(f.GetStatus())

	pair := differ.FilePair{
		Path:    path,
		OldPath: f.GetPreviousFilename(),
		Status:  status,
	}

	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return differ.FilePair{}, fmt.Errorf("fetching PR metadata: %w", err)
	}

	if status != differ.StatusAdded {
		beforePath := path
		if status == differ.StatusRenamed && pair.OldPath != "" {
			beforePath = pair.OldPath
		}
		before, err := c.blob(ctx, owner, repo, beforePath, pr.GetBase().GetSHA())
		if err == nil {
			pair.Before = before
		}
	}
	if status != differ.StatusRemoved {
		after, err := c.blob(ctx, owner, repo, path, pr.GetHead().GetSHA())
		if err == nil {
			pair.After = after
		}
	}

	return pair, nil
}

func (c *Client) blob(ctx context.Context, owner, repo, path, ref string) ([]byte, error) {
	content, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, &github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return nil, err
	}
	decoded, err := content.GetContent()
	if err != nil {
		return nil, err
	}
	return []byte(decoded), nil
}

func statusFromGitHub(status string) differ.FileStatus {
	switch status {
	case "added":
		return differ.StatusAdded
	case "removed":
		return differ.StatusRemoved
	case "renamed":
		return differ.StatusRenamed
	default:
		return differ.StatusModified
	}
}
