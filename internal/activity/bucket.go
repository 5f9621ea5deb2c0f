package activity

// Bucket is one named category in the fixed activity taxonomy. A
// categorization pass places every record into at most one bucket.
type Bucket string

const (
	PRsOpened     Bucket = "PRs - opened"
	PRsMerged     Bucket = "PRs - merged"
	PRsClosed     Bucket = "PRs - closed"
	PRsReviewed   Bucket = "PRs - reviewed"
	PRsUpdated    Bucket = "PRs - updated"
	IssuesOpened  Bucket = "Issues - opened"
	IssuesClosed  Bucket = "Issues - closed"
	IssuesUpdated Bucket = "Issues - updated"
	Comments      Bucket = "Comments"
	Commits       Bucket = "Commits"
	OtherEvents   Bucket = "Other events"
)

// AllBuckets lists every bucket in display order.
var AllBuckets = []Bucket{
	PRsOpened,
	PRsMerged,
	PRsClosed,
	PRsReviewed,
	PRsUpdated,
	IssuesOpened,
	IssuesClosed,
	IssuesUpdated,
	Comments,
	Commits,
	OtherEvents,
}

// Summary is the bucketed view handed to the UI layer. Every bucket is
// present, possibly empty.
type Summary map[Bucket][]Record

// NewSummary returns a Summary with every bucket materialized.
func NewSummary() Summary {
	s := make(Summary, len(AllBuckets))
	for _, b := range AllBuckets {
		s[b] = []Record{}
	}
	return s
}

// Clone copies the summary so a merge pass can extend it without mutating
// the caller's buckets.
func (s Summary) Clone() Summary {
	out := make(Summary, len(s))
	for b, recs := range s {
		out[b] = append([]Record(nil), recs...)
	}
	return out
}

// Total counts the records across all buckets.
func (s Summary) Total() int {
	n := 0
	for _, recs := range s {
		n += len(recs)
	}
	return n
}
