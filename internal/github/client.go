// Package github fetches the two GitHub API surfaces the dashboard reads:
// the per-user events feed (discrete recent actions, tagged with their
// event type) and the issue/PR search feed (current state, window-filtered,
// no event tag). Both convert into activity.Record; everything downstream
// is source-agnostic.
package github

import (
	"github.com/google/go-github/v69/github"
)

const (
	perPage = 100

	// The events API exposes at most 300 recent events.
	maxEventPages = 3
)

// Client wraps an authenticated GitHub API client.
type Client struct {
	gh *github.Client
}

// NewClient builds a client. An empty token means unauthenticated requests,
// which work for public activity at a much lower rate limit.
func NewClient(token string) *Client {
	c := github.NewClient(nil)
	if token != "" {
		c = c.WithAuthToken(token)
	}
	return &Client{gh: c}
}
