package activity

// ReviewKey is the dedup key for review events: one review per reviewer per
// PR. The events feed emits a fresh event for every review round, so
// repeats on the same PR must collapse.
func ReviewKey(r Record) string {
	return r.User.Login + "|" + BaseURL(r.URL)
}

// Categorize assigns a record to at most one bucket for the given window.
//
// seen is the caller-owned review accumulator threaded through a single
// categorization pass. The first review per (reviewer, PR) wins; repeats
// are dropped so one PR reviewed three times counts once.
//
// strict selects the date fallback. The primary events-feed pass runs
// strict: the feed spans a fixed recent period rather than the requested
// window, so a record matching no window check is dropped. The lenient pass
// is for supplementary search results that were already window-filtered by
// their query and must never be lost to a missed date check; they fall back
// to the "updated" bucket instead.
func Categorize(r Record, seen map[string]bool, win Window, strict bool) (Bucket, bool) {
	if r.IsReview() {
		key := ReviewKey(r)
		if seen[key] {
			return "", false
		}
		seen[key] = true
		return PRsReviewed, true
	}
	if r.IsReviewComment() {
		// The review record itself already counts; its inline comments
		// would double-report the same act.
		return "", false
	}

	switch Classify(r) {
	case TypeComment:
		return Comments, true
	case TypeCommit:
		return Commits, true
	case TypeOther:
		return OtherEvents, true
	case TypePullRequest:
		return categorizePullRequest(r, win, strict)
	default:
		return categorizeIssue(r, win, strict)
	}
}

func categorizePullRequest(r Record, win Window, strict bool) (Bucket, bool) {
	switch {
	case win.Contains(r.MergedAt):
		return PRsMerged, true
	case win.Contains(r.ClosedAt) && r.MergedAt == "":
		return PRsClosed, true
	case win.Contains(r.CreatedAt):
		return PRsOpened, true
	case !strict:
		return PRsUpdated, true
	case win.Contains(r.UpdatedAt):
		return PRsUpdated, true
	}
	return "", false
}

func categorizeIssue(r Record, win Window, strict bool) (Bucket, bool) {
	switch {
	case win.Contains(r.ClosedAt):
		return IssuesClosed, true
	case win.Contains(r.CreatedAt) && (r.EventAction == "" || r.EventAction == "opened"):
		return IssuesOpened, true
	case !strict:
		return IssuesUpdated, true
	case win.Contains(r.UpdatedAt):
		return IssuesUpdated, true
	}
	return "", false
}

// Summarize runs one categorization pass over records into a fresh Summary.
// This is the primary (strict) or supplementary (lenient) pass depending on
// the flag; the review accumulator lives and dies with the call.
func Summarize(records []Record, win Window, strict bool) Summary {
	sum := NewSummary()
	seen := make(map[string]bool)
	for _, r := range records {
		if b, ok := Categorize(r, seen, win, strict); ok {
			sum[b] = append(sum[b], r)
		}
	}
	return sum
}
