package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v69/github"

	"github.com/kertal/git-vegas/internal/activity"
)

// Events fetches the user's events feed and converts each event into zero
// or more activity records. Every record keeps the original event type tag,
// which the classifier treats as authoritative, plus the convention title
// for actions on other things ("Comment on:", "Review on:", "Committed",
// "Starred", ...). Events with payloads we cannot parse are skipped.
func (c *Client) Events(ctx context.Context, username string) ([]activity.Record, error) {
	var records []activity.Record
	opt := &github.ListOptions{PerPage: perPage}
	for page := 1; page <= maxEventPages; page++ {
		opt.Page = page
		events, resp, err := c.gh.Activity.ListEventsPerformedByUser(ctx, username, false, opt)
		if err != nil {
			return nil, fmt.Errorf("listing events for %s: %w", username, err)
		}
		for _, e := range events {
			records = append(records, convertEvent(e)...)
		}
		if resp.NextPage == 0 {
			break
		}
	}
	return records, nil
}

func convertEvent(e *github.Event) []activity.Record {
	payload, err := e.ParsePayload()
	if err != nil {
		return nil
	}

	eventTime := e.GetCreatedAt().Format(time.RFC3339)
	base := activity.Record{
		EventID:           e.GetID(),
		OriginalEventType: e.GetType(),
		CreatedAt:         eventTime,
		UpdatedAt:         eventTime,
		User:              activity.User{Login: e.GetActor().GetLogin()},
		RepositoryURL:     e.GetRepo().GetURL(),
	}
	repoURL := "https://github.com/" + e.GetRepo().GetName()

	switch p := payload.(type) {
	case *github.IssuesEvent:
		iss := p.GetIssue()
		r := base
		r.ID = iss.GetID()
		r.Title = iss.GetTitle()
		r.URL = iss.GetHTMLURL()
		r.State = iss.GetState()
		r.EventAction = p.GetAction()
		r.CreatedAt = iss.GetCreatedAt().Format(time.RFC3339)
		r.UpdatedAt = iss.GetUpdatedAt().Format(time.RFC3339)
		if t := iss.GetClosedAt(); !t.IsZero() {
			r.ClosedAt = t.Format(time.RFC3339)
		}
		r.IsPullRequest = iss.IsPullRequest()
		r.Labels = convertLabels(iss.Labels)
		return []activity.Record{r}

	case *github.PullRequestEvent:
		pr := p.GetPullRequest()
		r := base
		r.ID = pr.GetID()
		r.Title = pr.GetTitle()
		r.URL = pr.GetHTMLURL()
		r.State = pr.GetState()
		r.EventAction = p.GetAction()
		r.IsPullRequest = true
		r.Draft = pr.GetDraft()
		r.CreatedAt = pr.GetCreatedAt().Format(time.RFC3339)
		r.UpdatedAt = pr.GetUpdatedAt().Format(time.RFC3339)
		if t := pr.GetClosedAt(); !t.IsZero() {
			r.ClosedAt = t.Format(time.RFC3339)
		}
		if t := pr.GetMergedAt(); !t.IsZero() {
			r.MergedAt = t.Format(time.RFC3339)
		}
		r.Labels = convertLabels(pr.Labels)
		return []activity.Record{r}

	case *github.PullRequestReviewEvent:
		pr := p.GetPullRequest()
		r := base
		r.ID = pr.GetID()
		r.Title = activity.PrefixReview + " " + pr.GetTitle()
		// Review identity keys on reviewer + PR URL, so the record points
		// at the PR itself rather than the review sub-resource.
		r.URL = pr.GetHTMLURL()
		r.State = pr.GetState()
		r.IsPullRequest = true
		if t := pr.GetMergedAt(); !t.IsZero() {
			r.MergedAt = t.Format(time.RFC3339)
		}
		return []activity.Record{r}

	case *github.PullRequestReviewCommentEvent:
		pr := p.GetPullRequest()
		r := base
		r.ID = pr.GetID()
		r.Title = activity.PrefixReviewComment + " " + pr.GetTitle()
		r.URL = p.GetComment().GetHTMLURL()
		r.State = pr.GetState()
		r.IsPullRequest = true
		return []activity.Record{r}

	case *github.IssueCommentEvent:
		iss := p.GetIssue()
		r := base
		r.ID = iss.GetID()
		r.Title = activity.PrefixComment + " " + iss.GetTitle()
		r.URL = p.GetComment().GetHTMLURL()
		r.State = iss.GetState()
		r.IsPullRequest = iss.IsPullRequest()
		return []activity.Record{r}

	case *github.PushEvent:
		records := make([]activity.Record, 0, len(p.Commits))
		for _, commit := range p.Commits {
			r := base
			r.Title = activity.PrefixCommit + ": " + firstLine(commit.GetMessage())
			r.URL = repoURL + "/commit/" + commit.GetSHA()
			records = append(records, r)
		}
		return records

	case *github.CreateEvent:
		r := base
		switch p.GetRefType() {
		case "repository":
			r.Title = "Created repository " + e.GetRepo().GetName()
		default:
			r.Title = fmt.Sprintf("Created %s %s", p.GetRefType(), p.GetRef())
		}
		r.URL = repoURL
		return []activity.Record{r}

	case *github.DeleteEvent:
		r := base
		r.Title = fmt.Sprintf("Deleted %s %s", p.GetRefType(), p.GetRef())
		r.URL = repoURL
		return []activity.Record{r}

	case *github.ForkEvent:
		r := base
		r.Title = "Forked " + e.GetRepo().GetName()
		r.URL = p.GetForkee().GetHTMLURL()
		return []activity.Record{r}

	case *github.WatchEvent:
		r := base
		r.Title = "Starred " + e.GetRepo().GetName()
		r.URL = repoURL
		return []activity.Record{r}

	case *github.PublicEvent:
		r := base
		r.Title = "Made repository public"
		r.URL = repoURL
		return []activity.Record{r}

	case *github.GollumEvent:
		r := base
		r.Title = "Edited wiki"
		r.URL = repoURL + "/wiki"
		return []activity.Record{r}
	}

	return nil
}

func convertLabels(labels []*github.Label) []activity.Label {
	if len(labels) == 0 {
		return nil
	}
	out := make([]activity.Label, 0, len(labels))
	for _, l := range labels {
		out = append(out, activity.Label{Name: l.GetName(), Color: l.GetColor()})
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
