// Package domain contains the core data structures and domain logic for the application.
package domain

import "sort"

// DateLayout is the calendar-date format used for record keys.
const DateLayout = "2006-01-02"

// Record holds the estimated total line count for a single calendar date.
// It is the unit persisted to the stats file and consumed by the site's chart.
type Record struct {
	Date       string `json:"date"`
	TotalLines int    `json:"total_lines"`
}

// Series is the persisted time series: at most one record per date,
// ordered by ascending date.
type Series []Record

// Upsert replaces the record for date in place if one exists, otherwise
// appends a new record, then restores ascending date order. A backfilled or
// out-of-order date therefore self-heals the ordering invariant.
func (s Series) Upsert(date string, totalLines int) Series {
	updated := false
	for i := range s {
		if s[i].Date == date {
			s[i].TotalLines = totalLines
			updated = true
			break
		}
	}
	if !updated {
		s = append(s, Record{Date: date, TotalLines: totalLines})
	}
	sort.Slice(s, func(i, j int) bool {
		return s[i].Date < s[j].Date
	})
	return s
}

// Repository identifies one owned repository by owner login and name.
type Repository struct {
	Owner string
	Name  string
}

// FullName returns the "owner/name" form used in logs.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// WeeklyChange is one week of a repository's code-frequency data:
// the week start plus line additions and deletions. The hosting API reports
// deletions as a non-positive number, so the net change for a week is
// Additions + Deletions.
type WeeklyChange struct {
	Week      int64
	Additions int
	Deletions int
}

// NetDelta sums the net line change across all weeks. It can be negative:
// a repository whose history removed more lines than it added shrinks the
// estimate, and callers must not clamp this.
func NetDelta(weeks []WeeklyChange) int {
	total := 0
	for _, w := range weeks {
		total += w.Additions + w.Deletions
	}
	return total
}
