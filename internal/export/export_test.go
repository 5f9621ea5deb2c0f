package export

import (
	"strings"
	"testing"

	"github.com/kertal/git-vegas/internal/activity"
)

func TestDeduplicateByTitleKeepsNewest(t *testing.T) {
	records := []activity.Record{
		{Title: "Flaky test", URL: "https://x/issues/1", UpdatedAt: "2024-01-01T10:00:00Z"},
		{Title: "Flaky test", URL: "https://x/issues/1#issuecomment-2", UpdatedAt: "2024-01-03T10:00:00Z"},
		{Title: "Other", URL: "https://x/issues/2", UpdatedAt: "2024-01-02T10:00:00Z"},
	}
	out := DeduplicateByTitle(records)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if out[0].URL != "https://x/issues/1#issuecomment-2" {
		t.Errorf("kept %s, want the 2024-01-03 record", out[0].URL)
	}
	if out[1].Title != "Other" {
		t.Errorf("order changed: second record is %q", out[1].Title)
	}
}

func TestCompactExportDedups(t *testing.T) {
	records := []activity.Record{
		{Title: "Flaky test", URL: "https://x/issues/1", State: "open", UpdatedAt: "2024-01-01T10:00:00Z"},
		{Title: "Flaky test", URL: "https://x/issues/1#issuecomment-2", State: "open", UpdatedAt: "2024-01-03T10:00:00Z"},
	}
	p := Format(records, Options{Compact: true})
	lines := strings.Split(strings.TrimRight(p.PlainText, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1:\n%s", len(lines), p.PlainText)
	}
	if !strings.Contains(lines[0], "https://x/issues/1#issuecomment-2") {
		t.Errorf("line references wrong record: %s", lines[0])
	}
}

func TestCompactLineFormat(t *testing.T) {
	records := []activity.Record{
		{Title: "Add feature", URL: "https://x/pull/1", State: "closed", MergedAt: "2024-01-05T10:00:00Z"},
		{Title: "Open issue", URL: "https://x/issues/2", State: "open"},
	}
	p := Format(records, Options{Compact: true})
	want := "Add feature (merged) - https://x/pull/1\nOpen issue (open) - https://x/issues/2\n"
	if p.PlainText != want {
		t.Errorf("plain text:\n%q\nwant:\n%q", p.PlainText, want)
	}
	if !strings.Contains(p.HTML, `<a href="https://x/pull/1">Add feature</a>`) {
		t.Errorf("HTML missing link: %s", p.HTML)
	}
	if !strings.Contains(p.HTML, colorMerged) {
		t.Error("merged status should be color-coded purple")
	}
}

func TestTruncationBound(t *testing.T) {
	long := strings.Repeat("left ", 30) + "|" + strings.Repeat(" right", 30)
	records := []activity.Record{{Title: long, URL: "https://x/1", State: "open"}}
	p := Format(records, Options{Compact: true})

	line := strings.TrimRight(p.PlainText, "\n")
	title := line[:strings.Index(line, " (open)")]
	if got := len([]rune(title)); got > maxTitleLen {
		t.Errorf("truncated title is %d runes, want <= %d", got, maxTitleLen)
	}
	if !strings.Contains(title, ellipsis) {
		t.Error("truncated title should contain the ellipsis separator")
	}
	// The start of the title carries the most meaning; it keeps the bigger share.
	if !strings.HasPrefix(title, "left left") {
		t.Errorf("prefix not preserved: %q", title)
	}
	if strings.Contains(title, " "+ellipsis) || strings.Contains(title, ellipsis+" ") {
		t.Errorf("whitespace should be trimmed at the cut points: %q", title)
	}
}

func TestDetailedExportNeverTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	records := []activity.Record{{
		Title:     long,
		URL:       "https://x/1",
		State:     "open",
		CreatedAt: "2024-01-02T10:00:00Z",
		UpdatedAt: "2024-01-03T10:00:00Z",
		Labels:    []activity.Label{{Name: "bug", Color: "d73a4a"}, {Name: "urgent"}},
	}}
	p := Format(records, Options{})
	if !strings.Contains(p.PlainText, long) {
		t.Error("detailed mode must not truncate titles")
	}
	if !strings.Contains(p.PlainText, "1. ") {
		t.Error("detailed mode should number records")
	}
	if !strings.Contains(p.PlainText, "Created: Jan 2, 2024") {
		t.Errorf("missing created date:\n%s", p.PlainText)
	}
	if !strings.Contains(p.PlainText, "Labels: bug, urgent") {
		t.Errorf("missing label list:\n%s", p.PlainText)
	}
	if !strings.Contains(p.HTML, "background-color: #d73a4a") {
		t.Errorf("label pill missing background color:\n%s", p.HTML)
	}
}

func TestDetailedStatusMergedSuffix(t *testing.T) {
	records := []activity.Record{{
		Title: "t", URL: "https://x/1", State: "closed",
		MergedAt: "2024-01-05T10:00:00Z", IsPullRequest: true,
		CreatedAt: "2024-01-01T10:00:00Z", UpdatedAt: "2024-01-05T10:00:00Z",
	}}
	p := Format(records, Options{})
	if !strings.Contains(p.PlainText, "Status: closed (merged)") {
		t.Errorf("want merged suffix:\n%s", p.PlainText)
	}
	if !strings.Contains(p.PlainText, "Type: Pull Request") {
		t.Errorf("want PR type:\n%s", p.PlainText)
	}
}

func TestInvalidDateRendering(t *testing.T) {
	records := []activity.Record{{
		Title: "t", URL: "https://x/1", State: "open",
		CreatedAt: "not-a-date", UpdatedAt: "also bad",
	}}
	p := Format(records, Options{})
	if !strings.Contains(p.PlainText, "Created: Invalid Date") {
		t.Errorf("malformed date should render literally:\n%s", p.PlainText)
	}
}

func TestFormatGroupsSkipsEmpty(t *testing.T) {
	groups := []Group{
		{Name: "Issues", Records: nil},
		{Name: "PRs", Records: []activity.Record{{Title: "t", URL: "https://x/1", State: "open"}}},
	}
	p := FormatGroups(groups, Options{Compact: true})
	if strings.Contains(p.PlainText, "Issues") {
		t.Errorf("empty group heading should be omitted:\n%s", p.PlainText)
	}
	if !strings.Contains(p.PlainText, "PRs") {
		t.Errorf("non-empty group heading missing:\n%s", p.PlainText)
	}
	if !strings.Contains(p.HTML, "<h3>PRs</h3>") {
		t.Errorf("HTML heading missing:\n%s", p.HTML)
	}
	if strings.Contains(p.HTML, "<h3>Issues</h3>") {
		t.Error("empty group heading present in HTML")
	}
}

func TestFormatGroupsUniqueSuppressesLaterDuplicates(t *testing.T) {
	shared := activity.Record{Title: "Shared thread", URL: "https://x/1", State: "open", UpdatedAt: "2024-01-02T10:00:00Z"}
	groups := []Group{
		{Name: "First", Records: []activity.Record{shared}},
		{Name: "Second", Records: []activity.Record{shared, {Title: "Own", URL: "https://x/2", State: "open"}}},
	}
	p := FormatGroupsUnique(groups, Options{Compact: true})
	if got := strings.Count(p.PlainText, "Shared thread"); got != 1 {
		t.Errorf("shared title appears %d times, want 1 (first group wins):\n%s", got, p.PlainText)
	}
	if !strings.Contains(p.PlainText, "Own") {
		t.Error("non-duplicate record in later group should survive")
	}
}

func TestFormatGroupsUniqueDropsFullyDuplicateGroup(t *testing.T) {
	shared := activity.Record{Title: "Shared", URL: "https://x/1", State: "open"}
	groups := []Group{
		{Name: "First", Records: []activity.Record{shared}},
		{Name: "Second", Records: []activity.Record{shared}},
	}
	p := FormatGroupsUnique(groups, Options{Compact: true})
	if strings.Contains(p.PlainText, "Second") {
		t.Errorf("group left empty by cross-group dedup should be skipped:\n%s", p.PlainText)
	}
}
