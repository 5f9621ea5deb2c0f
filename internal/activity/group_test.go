package activity

import "testing"

func TestGroupByURLCollapsesFragments(t *testing.T) {
	records := []Record{
		{Title: "Flaky test", URL: "https://x/issues/1", UpdatedAt: "2024-01-01T10:00:00Z"},
		{Title: "Comment on: Flaky test", URL: "https://x/issues/1#issuecomment-2", UpdatedAt: "2024-01-03T10:00:00Z"},
		{Title: "Comment on: Flaky test", URL: "https://x/issues/1#issuecomment-9", UpdatedAt: "2024-01-02T10:00:00Z"},
		{Title: "Unrelated", URL: "https://x/issues/2", UpdatedAt: "2024-01-01T10:00:00Z"},
	}
	groups := GroupByURL(records)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	thread := groups["https://x/issues/1"]
	if len(thread) != 3 {
		t.Fatalf("thread group has %d records, want 3", len(thread))
	}
	rep := Representative(thread)
	if rep.URL != "https://x/issues/1#issuecomment-2" {
		t.Errorf("representative = %s, want the most recently updated record", rep.URL)
	}
}

func TestGroupByURLKeysReviewsPerReviewer(t *testing.T) {
	records := []Record{
		{Title: "Review on: Fix bug", URL: "https://x/pull/5", User: User{Login: "alice"}, IsPullRequest: true},
		{Title: "Review on: Fix bug", URL: "https://x/pull/5", User: User{Login: "bob"}, IsPullRequest: true},
	}
	groups := GroupByURL(records)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (one per reviewer)", len(groups))
	}
	if len(groups["alice:https://x/pull/5"]) != 1 || len(groups["bob:https://x/pull/5"]) != 1 {
		t.Error("expected one group per reviewer keyed login:baseURL")
	}
}

func TestRepresentativeMalformedDates(t *testing.T) {
	group := []Record{
		{Title: "bad date", UpdatedAt: "garbage"},
		{Title: "good date", UpdatedAt: "2024-01-02T10:00:00Z"},
	}
	if rep := Representative(group); rep.Title != "good date" {
		t.Errorf("representative = %q, want the record with a valid date", rep.Title)
	}
	if rep := Representative(nil); rep.Title != "" {
		t.Error("empty group should yield the zero record")
	}
}
