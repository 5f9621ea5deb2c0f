package activity

import (
	"strconv"
	"strings"
	"time"
)

// Title conventions the fetchers encode for records that represent an action
// on something rather than the thing itself. The classifier falls back to
// these when a record carries no event tag (search-feed and GitLab records).
const (
	PrefixReview        = "Review on:"
	PrefixReviewComment = "Review comment on:"
	PrefixComment       = "Comment on:"
	PrefixCommit        = "Committed"
)

// Label is a repository label attached to an issue or pull request.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// User identifies the account that performed or owns an activity.
type User struct {
	Login string `json:"login"`
}

// Record is the unified shape every pipeline stage operates on.
//
// Events-feed records carry OriginalEventType (authoritative for
// classification) and an EventID distinct from the underlying issue/PR ID.
// Search-feed records carry full issue/PR metadata but no event tag, so they
// classify by title convention and structure alone.
//
// Timestamps stay as the ISO-8601 strings the APIs deliver; parsing happens
// at the point of use. A malformed date fails a window check (excluding the
// record) or renders as "Invalid Date" instead of failing the whole run.
type Record struct {
	ID                int64   `json:"id"`
	EventID           string  `json:"event_id,omitempty"`
	Title             string  `json:"title"`
	URL               string  `json:"html_url"`
	State             string  `json:"state"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
	ClosedAt          string  `json:"closed_at,omitempty"`
	MergedAt          string  `json:"merged_at,omitempty"`
	IsPullRequest     bool    `json:"is_pull_request"`
	Draft             bool    `json:"draft,omitempty"`
	OriginalEventType string  `json:"original_event_type,omitempty"`
	EventAction       string  `json:"event_action,omitempty"`
	User              User    `json:"user"`
	RepositoryURL     string  `json:"repository_url,omitempty"`
	Labels            []Label `json:"labels,omitempty"`
}

// DedupID is the key used to tell records apart: the event ID when the
// record came from the events feed, else the issue/PR ID.
func (r Record) DedupID() string {
	if r.EventID != "" {
		return r.EventID
	}
	return strconv.FormatInt(r.ID, 10)
}

// IsReview reports whether the record represents a pull request review.
func (r Record) IsReview() bool {
	return r.OriginalEventType == "PullRequestReviewEvent" ||
		strings.HasPrefix(r.Title, PrefixReview)
}

// IsReviewComment reports whether the record is an inline review comment.
func (r Record) IsReviewComment() bool {
	return r.OriginalEventType == "PullRequestReviewCommentEvent" ||
		strings.HasPrefix(r.Title, PrefixReviewComment)
}

// BaseURL strips any trailing #fragment so records about the same thread
// share an identity key. Comment URLs carry a fragment pointing at the
// specific comment; the thread is everything before it.
func BaseURL(url string) string {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		return url[:i]
	}
	return url
}

// ParseTime parses an ISO-8601 timestamp. ok is false for empty or
// malformed input; callers treat that as "no such date".
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
