package activity

// GroupKey returns the display-grouping key for a record: the thread's base
// URL, with the reviewer's login prefixed for review records so two
// reviewers on the same PR stay two rows instead of collapsing into one.
func GroupKey(r Record) string {
	base := BaseURL(r.URL)
	if r.IsReview() {
		return r.User.Login + ":" + base
	}
	return base
}

// GroupByURL collapses records that describe the same underlying thread
// into one group per key. The UI shows each group as a single row with a
// ×N badge instead of N rows.
func GroupByURL(records []Record) map[string][]Record {
	groups := make(map[string][]Record)
	for _, r := range records {
		k := GroupKey(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}

// Representative picks the record that stands in for a group on screen: the
// most recently updated one. Records with malformed update times lose to
// any record with a valid one. Returns the zero Record for an empty group.
func Representative(group []Record) Record {
	if len(group) == 0 {
		return Record{}
	}
	best := group[0]
	bestT, _ := ParseTime(best.UpdatedAt)
	for _, r := range group[1:] {
		if t, ok := ParseTime(r.UpdatedAt); ok && t.After(bestT) {
			best, bestT = r, t
		}
	}
	return best
}
