package activity

// Reconcile merges supplementary search-feed records into the primary
// bucketed view and returns the merged summary. The caller's summary is not
// mutated.
//
// The events feed tops out around 300 recent events, so merges, issues, and
// reviews that happened early in a long window only show up in the search
// feed. Three passes patch those gaps, each guarding by URL so records the
// primary pass already placed are not duplicated and reconciling twice is a
// no-op:
//
//  1. PRs merged in-window that PRs-merged does not yet hold.
//  2. Issues absent from all three issue buckets, re-categorized leniently.
//  3. Reviewed PRs from the dedicated reviewed-by query, keyed by base URL
//     alone since that source is already one record per PR.
//
// The passes touch disjoint buckets, so their relative order is free.
func Reconcile(primary Summary, supplementary []Record, win Window) Summary {
	out := primary.Clone()

	merged := urlSet(out[PRsMerged])
	for _, r := range supplementary {
		if !r.IsPullRequest || r.IsReview() || !win.Contains(r.MergedAt) {
			continue
		}
		if merged[r.URL] {
			continue
		}
		out[PRsMerged] = append(out[PRsMerged], r)
		merged[r.URL] = true
	}

	issues := urlSet(out[IssuesOpened], out[IssuesClosed], out[IssuesUpdated])
	for _, r := range supplementary {
		if r.IsPullRequest || r.IsReview() {
			continue
		}
		if issues[r.URL] {
			continue
		}
		b, ok := Categorize(r, map[string]bool{}, win, false)
		if !ok {
			continue
		}
		switch b {
		case IssuesOpened, IssuesClosed, IssuesUpdated:
			out[b] = append(out[b], r)
			issues[r.URL] = true
		}
	}

	reviewed := make(map[string]bool, len(out[PRsReviewed]))
	for _, r := range out[PRsReviewed] {
		reviewed[BaseURL(r.URL)] = true
	}
	for _, r := range supplementary {
		if !r.IsReview() {
			continue
		}
		base := BaseURL(r.URL)
		if reviewed[base] {
			continue
		}
		out[PRsReviewed] = append(out[PRsReviewed], r)
		reviewed[base] = true
	}

	return out
}

func urlSet(lists ...[]Record) map[string]bool {
	set := make(map[string]bool)
	for _, recs := range lists {
		for _, r := range recs {
			set[r.URL] = true
		}
	}
	return set
}
