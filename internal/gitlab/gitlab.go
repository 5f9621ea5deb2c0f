// Package gitlab is the optional secondary activity source. GitLab's
// contribution events carry no tag the classifier knows, so every record is
// titled with the same conventions the GitHub fetcher uses and
// classification rides the title-prefix fallback tier.
package gitlab

import (
	"context"
	"fmt"
	"strings"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/kertal/git-vegas/internal/activity"
)

const perPage = 100

// Events fetches the token owner's contribution events around the window
// and converts them to activity records. Project web URLs are resolved
// through a per-call cache so one busy project costs one lookup.
func Events(ctx context.Context, token, baseURL string, win activity.Window) ([]activity.Record, error) {
	var opts []gitlab.ClientOptionFunc
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(strings.TrimRight(baseURL, "/")+"/api/v4"))
	}
	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}

	cu, _, err := client.Users.CurrentUser(gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	// The events API filters by date exclusively on both sides, so widen
	// by a day each way and let the window checks downstream decide.
	after := gitlab.ISOTime(win.Start.AddDate(0, 0, -1))
	before := gitlab.ISOTime(win.End.AddDate(0, 0, 1))
	opt := &gitlab.ListContributionEventsOptions{
		After:       &after,
		Before:      &before,
		ListOptions: gitlab.ListOptions{PerPage: perPage},
	}

	projects := make(map[int]string)
	var records []activity.Record
	for {
		events, resp, err := client.Users.ListUserContributionEvents(cu.ID, opt, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing events for %s: %w", cu.Username, err)
		}
		for _, e := range events {
			records = append(records, convertEvent(e, cu.Username, projectURL(client, projects, int(e.ProjectID)))...)
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return records, nil
}

func projectURL(client *gitlab.Client, cache map[int]string, projectID int) string {
	if url, ok := cache[projectID]; ok {
		return url
	}
	url := ""
	if p, _, err := client.Projects.GetProject(projectID, nil); err == nil {
		url = p.WebURL
	}
	cache[projectID] = url
	return url
}

func convertEvent(e *gitlab.ContributionEvent, username, projURL string) []activity.Record {
	created := ""
	if e.CreatedAt != nil {
		created = e.CreatedAt.Format(time.RFC3339)
	}
	base := activity.Record{
		ID:            int64(e.TargetID),
		EventID:       fmt.Sprintf("gitlab-%d", e.ID),
		CreatedAt:     created,
		UpdatedAt:     created,
		State:         "open",
		User:          activity.User{Login: username},
		RepositoryURL: projURL,
	}

	switch {
	case e.PushData.CommitCount > 0:
		r := base
		title := e.PushData.CommitTitle
		if title == "" {
			title = fmt.Sprintf("%d commit(s) to %s", e.PushData.CommitCount, e.PushData.Ref)
		}
		r.Title = activity.PrefixCommit + ": " + title
		if projURL != "" && e.PushData.CommitTo != "" {
			r.URL = projURL + "/-/commit/" + e.PushData.CommitTo
		}
		return []activity.Record{r}

	case e.Note != nil:
		r := base
		if e.Note.NoteableType == "MergeRequest" {
			r.Title = activity.PrefixReviewComment + " " + e.TargetTitle
			r.IsPullRequest = true
		} else {
			r.Title = activity.PrefixComment + " " + e.TargetTitle
		}
		if projURL != "" {
			r.URL = fmt.Sprintf("%s/-/%s/%d#note_%d",
				projURL, noteablePath(e.Note.NoteableType), e.Note.NoteableIID, e.Note.ID)
		}
		return []activity.Record{r}

	case e.TargetType == "MergeRequest":
		r := base
		r.IsPullRequest = true
		if projURL != "" {
			r.URL = fmt.Sprintf("%s/-/merge_requests/%d", projURL, e.TargetIID)
		}
		switch e.ActionName {
		case "approved":
			r.Title = activity.PrefixReview + " " + e.TargetTitle
		case "accepted":
			r.Title = e.TargetTitle
			r.State = "closed"
			r.MergedAt = created
		case "closed":
			r.Title = e.TargetTitle
			r.State = "closed"
			r.ClosedAt = created
		default:
			r.Title = e.TargetTitle
		}
		return []activity.Record{r}

	case e.TargetType == "Issue":
		r := base
		r.Title = e.TargetTitle
		r.EventAction = e.ActionName
		if projURL != "" {
			r.URL = fmt.Sprintf("%s/-/issues/%d", projURL, e.TargetIID)
		}
		if e.ActionName == "closed" {
			r.State = "closed"
			r.ClosedAt = created
		}
		return []activity.Record{r}

	case e.ActionName == "created":
		r := base
		r.Title = "Created repository"
		r.URL = projURL
		return []activity.Record{r}
	}

	return nil
}

func noteablePath(noteableType string) string {
	if noteableType == "MergeRequest" {
		return "merge_requests"
	}
	return "issues"
}
