// Package export renders activity records into clipboard-ready encodings:
// a plain-text string for text/plain and an HTML string for text/html.
// Writing the clipboard is the caller's job; everything here is a pure
// function that never fails on malformed input.
package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/kertal/git-vegas/internal/activity"
)

// Options control the encodings.
type Options struct {
	// Compact renders one line per record with a truncated title;
	// detailed mode renders numbered multi-line blocks and never truncates.
	Compact bool
}

// Payload carries both clipboard encodings of the same selection.
type Payload struct {
	PlainText string
	HTML      string
}

// Group is a named, ordered section of a grouped export.
type Group struct {
	Name    string
	Records []activity.Record
}

const (
	maxTitleLen = 80
	ellipsis    = "..."

	colorMerged = "#8250df"
	colorClosed = "#cf222e"
	colorOpen   = "#1a7f37"
)

// DeduplicateByTitle keeps one record per exact title: the most recently
// updated one. Output order follows each title's first appearance. Titles
// rather than URLs, because the export targets human-readable lists where a
// comment thread and its issue would otherwise show up as duplicate lines.
func DeduplicateByTitle(records []activity.Record) []activity.Record {
	index := make(map[string]int, len(records))
	out := make([]activity.Record, 0, len(records))
	for _, r := range records {
		i, ok := index[r.Title]
		if !ok {
			index[r.Title] = len(out)
			out = append(out, r)
			continue
		}
		if updatedAfter(r, out[i]) {
			out[i] = r
		}
	}
	return out
}

func updatedAfter(a, b activity.Record) bool {
	at, _ := activity.ParseTime(a.UpdatedAt)
	bt, _ := activity.ParseTime(b.UpdatedAt)
	return at.After(bt)
}

// Format renders records into both encodings, deduplicated by title.
func Format(records []activity.Record, opts Options) Payload {
	deduped := DeduplicateByTitle(records)
	if opts.Compact {
		return Payload{
			PlainText: compactText(deduped),
			HTML:      wrapList(compactHTML(deduped)),
		}
	}
	return Payload{
		PlainText: detailedText(deduped, 1),
		HTML:      detailedHTML(deduped, 1),
	}
}

// FormatGroups renders one heading per named group in group order, each
// group deduplicated by title independently. Groups left empty after
// deduplication are skipped entirely, heading included.
func FormatGroups(groups []Group, opts Options) Payload {
	return formatGroups(groups, opts, nil)
}

// FormatGroupsUnique is FormatGroups with cross-group title dedup: a title
// that already appeared in an earlier group is suppressed in later ones
// (first group wins). For exports whose groups are overlapping views of the
// same underlying activity.
func FormatGroupsUnique(groups []Group, opts Options) Payload {
	return formatGroups(groups, opts, make(map[string]bool))
}

func formatGroups(groups []Group, opts Options, seenTitles map[string]bool) Payload {
	var text, htm strings.Builder
	for _, g := range groups {
		records := DeduplicateByTitle(g.Records)
		if seenTitles != nil {
			kept := records[:0]
			for _, r := range records {
				if seenTitles[r.Title] {
					continue
				}
				seenTitles[r.Title] = true
				kept = append(kept, r)
			}
			records = kept
		}
		if len(records) == 0 {
			continue
		}

		fmt.Fprintf(&text, "%s\n%s\n", g.Name, strings.Repeat("-", len(g.Name)))
		fmt.Fprintf(&htm, "<h3>%s</h3>\n", html.EscapeString(g.Name))
		if opts.Compact {
			text.WriteString(compactText(records))
			htm.WriteString(wrapList(compactHTML(records)))
		} else {
			text.WriteString(detailedText(records, 1))
			htm.WriteString(detailedHTML(records, 1))
		}
		text.WriteString("\n")
	}
	return Payload{PlainText: text.String(), HTML: htm.String()}
}

// status is what a human reads next to the title: "merged" for merged PRs,
// else the raw state.
func status(r activity.Record) string {
	if r.MergedAt != "" {
		return "merged"
	}
	return r.State
}

func statusColor(s string) string {
	switch s {
	case "merged":
		return colorMerged
	case "closed":
		return colorClosed
	default:
		return colorOpen
	}
}

func compactText(records []activity.Record) string {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%s (%s) - %s\n",
			truncateMiddle(r.Title, maxTitleLen), status(r), r.URL)
	}
	return b.String()
}

func compactHTML(records []activity.Record) string {
	var b strings.Builder
	for _, r := range records {
		s := status(r)
		fmt.Fprintf(&b, `<li><a href="%s">%s</a> <span style="color: %s;">(%s)</span></li>`,
			html.EscapeString(r.URL),
			html.EscapeString(truncateMiddle(r.Title, maxTitleLen)),
			statusColor(s),
			html.EscapeString(s))
		b.WriteString("\n")
	}
	return b.String()
}

func wrapList(items string) string {
	return "<ul>\n" + items + "</ul>\n"
}

func detailedText(records []activity.Record, start int) string {
	var b strings.Builder
	for i, r := range records {
		fmt.Fprintf(&b, "%d. %s\n", start+i, r.Title)
		fmt.Fprintf(&b, "   Link: %s\n", r.URL)
		fmt.Fprintf(&b, "   Type: %s\n", typeName(r))
		fmt.Fprintf(&b, "   Status: %s\n", detailedStatus(r))
		fmt.Fprintf(&b, "   Created: %s\n", formatDate(r.CreatedAt))
		fmt.Fprintf(&b, "   Updated: %s\n", formatDate(r.UpdatedAt))
		if names := labelNames(r); names != "" {
			fmt.Fprintf(&b, "   Labels: %s\n", names)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func detailedHTML(records []activity.Record, start int) string {
	var b strings.Builder
	for i, r := range records {
		s := status(r)
		b.WriteString(`<div style="margin-bottom: 12px;">` + "\n")
		fmt.Fprintf(&b, `<strong>%d. <a href="%s">%s</a></strong><br>`+"\n",
			start+i, html.EscapeString(r.URL), html.EscapeString(r.Title))
		fmt.Fprintf(&b, `Type: %s | Status: <span style="color: %s;">%s</span><br>`+"\n",
			typeName(r), statusColor(s), html.EscapeString(detailedStatus(r)))
		fmt.Fprintf(&b, "Created: %s | Updated: %s<br>\n",
			formatDate(r.CreatedAt), formatDate(r.UpdatedAt))
		if len(r.Labels) > 0 {
			for _, l := range r.Labels {
				b.WriteString(labelPill(l))
			}
			b.WriteString("<br>\n")
		}
		b.WriteString("</div>\n")
	}
	return b.String()
}

// detailedStatus is the raw state plus a "(merged)" suffix, so a merged PR
// reads "closed (merged)".
func detailedStatus(r activity.Record) string {
	if r.MergedAt != "" {
		return r.State + " (merged)"
	}
	return r.State
}

func typeName(r activity.Record) string {
	switch activity.Classify(r) {
	case activity.TypePullRequest:
		return "Pull Request"
	case activity.TypeComment:
		return "Comment"
	case activity.TypeCommit:
		return "Commit"
	case activity.TypeOther:
		return "Other"
	default:
		return "Issue"
	}
}

func labelNames(r activity.Record) string {
	if len(r.Labels) == 0 {
		return ""
	}
	names := make([]string, len(r.Labels))
	for i, l := range r.Labels {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}

// formatDate renders an ISO-8601 timestamp for humans; malformed input
// renders as the literal "Invalid Date" rather than failing the export.
func formatDate(ts string) string {
	t, ok := activity.ParseTime(ts)
	if !ok {
		return "Invalid Date"
	}
	return t.Format("Jan 2, 2006")
}

// truncateMiddle shortens s to at most max runes with a middle ellipsis,
// keeping roughly 60% of the budget for the prefix. Titles front-load their
// meaning, so the start is worth more than the end. Whitespace at the cut
// points is trimmed so the ellipsis never floats next to a space.
func truncateMiddle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	budget := max - len(ellipsis)
	head := (budget*3 + 4) / 5
	tail := budget - head
	prefix := strings.TrimRight(string(runes[:head]), " ")
	suffix := strings.TrimLeft(string(runes[len(runes)-tail:]), " ")
	return prefix + ellipsis + suffix
}
