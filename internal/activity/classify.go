package activity

import "strings"

// Type is the semantic kind of a record.
type Type string

const (
	TypeIssue       Type = "issue"
	TypePullRequest Type = "pull_request"
	TypeComment     Type = "comment"
	TypeCommit      Type = "commit"
	TypeOther       Type = "other"
)

// eventTypes maps the events feed's tags to semantic types. The tag is
// authoritative when present and known; unknown tags fall through to the
// title conventions.
var eventTypes = map[string]Type{
	"PullRequestReviewEvent":        TypePullRequest,
	"PullRequestReviewCommentEvent": TypeComment,
	"IssueCommentEvent":             TypeComment,
	"CommitCommentEvent":            TypeComment,
	"IssuesEvent":                   TypeIssue,
	"PullRequestEvent":              TypePullRequest,
	"PushEvent":                     TypeCommit,
	"CreateEvent":                   TypeOther,
	"DeleteEvent":                   TypeOther,
	"ForkEvent":                     TypeOther,
	"WatchEvent":                    TypeOther,
	"PublicEvent":                   TypeOther,
	"GollumEvent":                   TypeOther,
}

// otherPrefixes are the convention titles the fetchers emit for activity
// that is neither an issue, a PR, a comment, nor a commit.
var otherPrefixes = []string{
	"Created branch",
	"Created tag",
	"Created repository",
	"Deleted branch",
	"Deleted tag",
	"Forked",
	"Starred",
	"Made repository public",
	"Edited wiki",
}

// Classify maps a record to its semantic type.
//
// Priority: the event tag when it is a known one, then the convention title
// prefix, then the record's structure. Total: every record gets a type, so
// an unrecognized shape degrades to issue/pull_request rather than an error.
func Classify(r Record) Type {
	if t, ok := eventTypes[r.OriginalEventType]; ok {
		return t
	}
	switch {
	case strings.HasPrefix(r.Title, PrefixReview):
		return TypePullRequest
	case strings.HasPrefix(r.Title, PrefixReviewComment),
		strings.HasPrefix(r.Title, PrefixComment):
		return TypeComment
	case strings.HasPrefix(r.Title, PrefixCommit):
		return TypeCommit
	}
	for _, p := range otherPrefixes {
		if strings.HasPrefix(r.Title, p) {
			return TypeOther
		}
	}
	if r.IsPullRequest {
		return TypePullRequest
	}
	return TypeIssue
}
