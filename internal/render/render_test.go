package render

import (
	"strings"
	"testing"

	"github.com/kertal/git-vegas/internal/activity"
)

func sampleSummary() activity.Summary {
	sum := activity.NewSummary()
	sum[activity.PRsMerged] = []activity.Record{
		{Title: "Add feature", URL: "https://x/pull/1", State: "closed", MergedAt: "2024-01-05T10:00:00Z", UpdatedAt: "2024-01-05T10:00:00Z"},
	}
	sum[activity.Comments] = []activity.Record{
		{Title: "Comment on: Flaky test", URL: "https://x/issues/2#issuecomment-1", UpdatedAt: "2024-01-02T10:00:00Z"},
		{Title: "Comment on: Flaky test", URL: "https://x/issues/2#issuecomment-5", UpdatedAt: "2024-01-04T10:00:00Z"},
	}
	return sum
}

func TestSummarySkipsEmptyBuckets(t *testing.T) {
	var b strings.Builder
	Summary(&b, sampleSummary())
	out := b.String()

	if !strings.Contains(out, string(activity.PRsMerged)) {
		t.Errorf("missing merged bucket row:\n%s", out)
	}
	if strings.Contains(out, string(activity.IssuesOpened)) {
		t.Errorf("empty bucket should not render:\n%s", out)
	}
}

func TestBucketsCollapsesGroups(t *testing.T) {
	var b strings.Builder
	Buckets(&b, sampleSummary())
	out := b.String()

	// Two comments on the same thread collapse into one badged row.
	if got := strings.Count(out, "Comment on: Flaky test"); got != 1 {
		t.Errorf("thread rendered %d times, want 1:\n%s", got, out)
	}
	if !strings.Contains(out, "×2") {
		t.Errorf("missing group size badge:\n%s", out)
	}
	// The representative is the most recently updated record.
	if !strings.Contains(out, "https://x/issues/2#issuecomment-5") {
		t.Errorf("representative URL wrong:\n%s", out)
	}
}
