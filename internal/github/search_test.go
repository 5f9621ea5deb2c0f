package github

import (
	"testing"
	"time"

	"github.com/google/go-github/v69/github"

	"github.com/kertal/git-vegas/internal/activity"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return parsed
}

func searchIssue(t *testing.T) *github.Issue {
	t.Helper()
	return &github.Issue{
		ID:        github.Ptr(int64(42)),
		Title:     github.Ptr("Add feature"),
		HTMLURL:   github.Ptr("https://github.com/kertal/demo/pull/9"),
		State:     github.Ptr("closed"),
		CreatedAt: &github.Timestamp{Time: mustTime(t, "2023-12-20T10:00:00Z")},
		UpdatedAt: &github.Timestamp{Time: mustTime(t, "2024-01-15T10:00:00Z")},
		ClosedAt:  &github.Timestamp{Time: mustTime(t, "2024-01-15T10:00:00Z")},
		User:      &github.User{Login: github.Ptr("someone")},
		PullRequestLinks: &github.PullRequestLinks{
			URL:      github.Ptr("https://api.github.com/repos/kertal/demo/pulls/9"),
			MergedAt: &github.Timestamp{Time: mustTime(t, "2024-01-15T10:00:00Z")},
		},
	}
}

func TestConvertIssueSearchRecord(t *testing.T) {
	r := convertIssue(searchIssue(t), "")

	if r.EventID != "" {
		t.Error("search records carry no event ID")
	}
	if r.OriginalEventType != "" {
		t.Error("search records carry no event tag")
	}
	if !r.IsPullRequest {
		t.Error("pull_request sub-object should mark the record as a PR")
	}
	if r.MergedAt != "2024-01-15T10:00:00Z" {
		t.Errorf("merged_at = %q", r.MergedAt)
	}
	if got := activity.Classify(r); got != activity.TypePullRequest {
		t.Errorf("Classify = %s, want pull_request", got)
	}
}

func TestConvertIssueReviewedRecord(t *testing.T) {
	r := convertIssue(searchIssue(t), "kertal")

	if r.Title != "Review on: Add feature" {
		t.Errorf("title = %q, want the review convention", r.Title)
	}
	if r.User.Login != "kertal" {
		t.Errorf("reviewed records are attributed to the reviewer, got %q", r.User.Login)
	}
	if !r.IsReview() {
		t.Error("record should read as a review")
	}
}
