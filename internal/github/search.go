package github

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v69/github"

	"github.com/kertal/git-vegas/internal/activity"
)

const dateFormat = "2006-01-02"

// Issues runs the search feed for a user and window: every issue and PR the
// user authored with activity in range. Results carry full metadata but no
// event tag, so they classify by structure downstream.
func (c *Client) Issues(ctx context.Context, username string, win activity.Window) ([]activity.Record, error) {
	q := fmt.Sprintf("author:%s updated:%s..%s",
		username, win.Start.Format(dateFormat), win.End.Format(dateFormat))
	return c.search(ctx, q, "")
}

// Merged runs a dedicated query for PRs merged inside the window. The
// events feed only retains a few weeks of activity; this query is how
// merges older than that still make it into the merged bucket.
func (c *Client) Merged(ctx context.Context, username string, win activity.Window) ([]activity.Record, error) {
	q := fmt.Sprintf("author:%s type:pr is:merged merged:%s..%s",
		username, win.Start.Format(dateFormat), win.End.Format(dateFormat))
	return c.search(ctx, q, "")
}

// Reviewed runs the dedicated reviewed-by query: one result per PR the user
// reviewed in range, excluding their own. Each record is wrapped in the
// review title convention and attributed to the reviewer, so the pipeline
// treats it exactly like an events-feed review.
func (c *Client) Reviewed(ctx context.Context, username string, win activity.Window) ([]activity.Record, error) {
	q := fmt.Sprintf("type:pr reviewed-by:%s -author:%s updated:%s..%s",
		username, username, win.Start.Format(dateFormat), win.End.Format(dateFormat))
	return c.search(ctx, q, username)
}

func (c *Client) search(ctx context.Context, query, reviewer string) ([]activity.Record, error) {
	opt := &github.SearchOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	var out []activity.Record
	for {
		result, resp, err := c.gh.Search.Issues(ctx, query, opt)
		if err != nil {
			return nil, fmt.Errorf("searching %q: %w", query, err)
		}
		for _, iss := range result.Issues {
			out = append(out, convertIssue(iss, reviewer))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return out, nil
}

func convertIssue(iss *github.Issue, reviewer string) activity.Record {
	r := activity.Record{
		ID:            iss.GetID(),
		Title:         iss.GetTitle(),
		URL:           iss.GetHTMLURL(),
		State:         iss.GetState(),
		CreatedAt:     iss.GetCreatedAt().Format(time.RFC3339),
		UpdatedAt:     iss.GetUpdatedAt().Format(time.RFC3339),
		IsPullRequest: iss.IsPullRequest(),
		User:          activity.User{Login: iss.GetUser().GetLogin()},
		RepositoryURL: iss.GetRepositoryURL(),
		Labels:        convertLabels(iss.Labels),
	}
	if t := iss.GetClosedAt(); !t.IsZero() {
		r.ClosedAt = t.Format(time.RFC3339)
	}
	if links := iss.GetPullRequestLinks(); links != nil && links.MergedAt != nil {
		r.MergedAt = links.MergedAt.Format(time.RFC3339)
	}
	if reviewer != "" {
		r.Title = activity.PrefixReview + " " + r.Title
		r.User = activity.User{Login: reviewer}
	}
	return r
}
