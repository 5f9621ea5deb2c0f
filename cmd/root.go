package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	naturaldate "github.com/tj/go-naturaldate"

	"github.com/kertal/git-vegas/internal/activity"
	"github.com/kertal/git-vegas/internal/cache"
	"github.com/kertal/git-vegas/internal/clipboard"
	"github.com/kertal/git-vegas/internal/export"
	"github.com/kertal/git-vegas/internal/github"
	"github.com/kertal/git-vegas/internal/gitlab"
	"github.com/kertal/git-vegas/internal/render"
)

const cacheTTL = 10 * time.Minute

var rootCmd = &cobra.Command{
	Use:   "git-vegas",
	Short: "Summarize GitHub activity into categorized, exportable buckets",
	Long: `git-vegas fetches one or more users' GitHub activity from the events
feed and the issue/PR search feed, reconciles the two into a single
deduplicated set of category buckets (PRs opened/merged/closed/reviewed,
issues, comments, commits, ...) for a date range, and can serialize the
result into clipboard-ready plain text and HTML.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringSlice("user", nil, "GitHub username to report on (repeatable)")
	rootCmd.Flags().String("since", "", `start date inclusive, e.g. "2026-08-01", "2 weeks ago" (default: 7 days ago)`)
	rootCmd.Flags().String("until", "", `end date inclusive, e.g. "2026-08-27", "today" (default: today)`)
	rootCmd.Flags().Bool("compact", false, "one line per item in exports")
	rootCmd.Flags().Bool("grouped", false, "export one section per category")
	rootCmd.Flags().Bool("copy", false, "copy the export to the clipboard")
	rootCmd.Flags().Bool("html", false, "print the HTML export instead of the summary")
	rootCmd.Flags().Bool("no-cache", false, "bypass the local fetch cache")

	viper.SetEnvPrefix("GITVEGAS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(rootCmd.Flags())
}

func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	// Load .env without overriding existing env vars.
	// Precedence: real env vars > .env file values.
	_ = godotenv.Load()

	win, err := parseWindow(viper.GetString("since"), viper.GetString("until"))
	if err != nil {
		return err
	}

	users := viper.GetStringSlice("user")
	if len(users) == 0 {
		return fmt.Errorf("at least one --user is required")
	}

	githubToken := os.Getenv("GITHUB_TOKEN")
	gitlabToken := os.Getenv("GITLAB_TOKEN")

	var pages *cache.Cache
	if !viper.GetBool("no-cache") {
		path, err := cache.DefaultPath()
		if err == nil {
			pages, err = cache.Open(path, cacheTTL)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
			pages = nil
		} else {
			defer pages.Close()
		}
	}

	primary, supplementary := fetchAll(cmd.Context(), githubToken, gitlabToken, users, win, pages)

	sum := activity.Reconcile(activity.Summarize(primary, win, true), supplementary, win)

	opts := export.Options{Compact: viper.GetBool("compact")}
	payload := buildExport(sum, opts, viper.GetBool("grouped"))

	if viper.GetBool("html") {
		fmt.Print(payload.HTML)
	} else {
		render.Summary(os.Stdout, sum)
		render.Buckets(os.Stdout, sum)
	}

	if viper.GetBool("copy") {
		if err := clipboard.Write(payload); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "copied %d items to clipboard\n", sum.Total())
	}
	return nil
}

// fetchAll pulls every source in parallel: per user the events feed plus
// the three search queries, and the GitLab contribution feed when a token
// is present. Per-source failures degrade to stderr warnings so one flaky
// feed does not blank the whole report.
func fetchAll(ctx context.Context, githubToken, gitlabToken string, users []string, win activity.Window, pages *cache.Cache) (primary, supplementary []activity.Record) {
	client := github.NewClient(githubToken)
	searchKey := fmt.Sprintf("search:%s..%s",
		win.Start.Format(dateFormat), win.End.Format(dateFormat))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, user := range users {
		wg.Add(2)
		go func() {
			defer wg.Done()
			records, err := cached(pages, "events", user, func() ([]activity.Record, error) {
				return client.Events(ctx, user)
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: github events for %s: %v\n", user, err)
				return
			}
			primary = append(primary, records...)
		}()
		go func() {
			defer wg.Done()
			records, err := cached(pages, searchKey, user, func() ([]activity.Record, error) {
				return searchFeed(ctx, client, user, win)
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: github search for %s: %v\n", user, err)
				return
			}
			supplementary = append(supplementary, records...)
		}()
	}

	if gitlabToken != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := gitlab.Events(ctx, gitlabToken, os.Getenv("GITLAB_URL"), win)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: gitlab events: %v\n", err)
				return
			}
			primary = append(primary, records...)
		}()
	}

	wg.Wait()
	return primary, supplementary
}

// searchFeed combines the three supplementary queries for one user.
func searchFeed(ctx context.Context, client *github.Client, user string, win activity.Window) ([]activity.Record, error) {
	issues, err := client.Issues(ctx, user, win)
	if err != nil {
		return nil, err
	}
	merged, err := client.Merged(ctx, user, win)
	if err != nil {
		return nil, err
	}
	reviewed, err := client.Reviewed(ctx, user, win)
	if err != nil {
		return nil, err
	}
	return append(append(issues, merged...), reviewed...), nil
}

func cached(pages *cache.Cache, source, username string, fetch func() ([]activity.Record, error)) ([]activity.Record, error) {
	if pages != nil {
		if records, ok := pages.Get(source, username); ok {
			return records, nil
		}
	}
	records, err := fetch()
	if err != nil {
		return nil, err
	}
	if pages != nil {
		if err := pages.Put(source, username, records); err != nil {
			fmt.Fprintf(os.Stderr, "warning: caching %s/%s: %v\n", source, username, err)
		}
	}
	return records, nil
}

// buildExport serializes the summary: either one flat list or one section
// per bucket. The grouped variant dedups across sections because several
// buckets can hold records about the same thread.
func buildExport(sum activity.Summary, opts export.Options, grouped bool) export.Payload {
	if grouped {
		groups := make([]export.Group, 0, len(activity.AllBuckets))
		for _, b := range activity.AllBuckets {
			groups = append(groups, export.Group{Name: string(b), Records: sum[b]})
		}
		return export.FormatGroupsUnique(groups, opts)
	}
	var all []activity.Record
	for _, b := range activity.AllBuckets {
		all = append(all, sum[b]...)
	}
	return export.Format(all, opts)
}

const dateFormat = "2006-01-02"

// parseWindow resolves the --since and --until flag values into an
// inclusive calendar window.
//
// Both flags accept either an exact date (YYYY-MM-DD) or a natural language
// expression such as "yesterday", "2 weeks ago", or "last monday". Exact
// dates are tried first; if parsing fails, the input is interpreted as
// natural language relative to the current time.
//
// Defaults when omitted: --since = 7 days ago, --until = today.
func parseWindow(sinceStr, untilStr string) (activity.Window, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	since := today.AddDate(0, 0, -7)
	if sinceStr != "" {
		t, err := parseDate(sinceStr, now)
		if err != nil {
			return activity.Window{}, fmt.Errorf("invalid --since value %q: %w", sinceStr, err)
		}
		since = t
	}

	until := today
	if untilStr != "" {
		t, err := parseDate(untilStr, now)
		if err != nil {
			return activity.Window{}, fmt.Errorf("invalid --until value %q: %w", untilStr, err)
		}
		until = t
	}

	if since.After(until) {
		return activity.Window{}, fmt.Errorf("--since (%s) must be before --until (%s)",
			since.Format(dateFormat), until.Format(dateFormat))
	}
	return activity.NewWindow(since, until), nil
}

// parseDate tries YYYY-MM-DD first, then falls back to natural language
// parsing via go-naturaldate. The ref time is the reference point for
// relative expressions.
func parseDate(s string, ref time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation(dateFormat, s, ref.Location()); err == nil {
		return t, nil
	}
	return naturaldate.Parse(s, ref)
}
