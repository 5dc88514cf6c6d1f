// Package query holds the serializable filter spec applied to application
// listings. The dashboard fetches the full list and narrows it here, so the
// predicate logic lives in one pure, testable function instead of being
// scattered across handlers.
package query

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"recruit-go/internal/storage/models"
)

// Filter value meaning "do not filter on this dimension".
const All = "all"

// Date range modes.
const (
	DateAll    = "all"
	DateToday  = "today"
	DateWeek   = "week"
	DateMonth  = "month"
	DateCustom = "custom"
)

// Spec is the full filter state for an application listing. The zero value
// matches everything. Empty string and "all" are equivalent for the
// exact-match dimensions.
type Spec struct {
	// Search matches case-insensitively as a substring against name, email,
	// display application id, job title and phone. A record matches when any
	// of those fields contains it.
	Search string `json:"search,omitempty"`

	Status    string `json:"status,omitempty"`
	Source    string `json:"source,omitempty"`
	JobID     string `json:"jobId,omitempty"`
	Recruiter string `json:"recruiter,omitempty"`

	// DateMode is one of the Date* constants. DateFrom/DateTo are only
	// consulted in custom mode and are calendar dates; the end date is
	// inclusive of its full day.
	DateMode string     `json:"dateMode,omitempty"`
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`

	// Page is 1-based. PageSize of 0 disables pagination.
	Page     int `json:"page,omitempty"`
	PageSize int `json:"pageSize,omitempty"`
}

// IsZero reports whether the spec would match everything unpaginated,
// treating "all" selections as inactive.
func (s Spec) IsZero() bool {
	return s.Search == "" &&
		(s.Status == "" || s.Status == All) &&
		(s.Source == "" || s.Source == All) &&
		(s.JobID == "" || s.JobID == All) &&
		(s.Recruiter == "" || s.Recruiter == All) &&
		(s.DateMode == "" || s.DateMode == DateAll) &&
		s.Page == 0 && s.PageSize == 0
}

// Apply filters apps against the spec, ANDing every active dimension.
// now anchors the relative date modes. The input order is preserved.
func Apply(apps []models.Application, s Spec, now time.Time) []models.Application {
	return lo.Filter(apps, func(app models.Application, _ int) bool {
		return Matches(app, s, now)
	})
}

// Matches reports whether a single application passes every active filter.
func Matches(app models.Application, s Spec, now time.Time) bool {
	if !matchesSearch(app, s.Search) {
		return false
	}
	if !matchesExact(app.Status, s.Status) {
		return false
	}
	if !matchesExact(app.Source, s.Source) {
		return false
	}
	if !matchesExact(app.JobID, s.JobID) {
		return false
	}
	if !matchesExact(app.Ownership, s.Recruiter) {
		return false
	}
	return matchesDate(app.AppliedAt, s, now)
}

// Paginate slices a filtered list for one page. Page numbers are 1-based;
// out-of-range pages return an empty slice.
func Paginate(apps []models.Application, page, pageSize int) []models.Application {
	if pageSize <= 0 {
		return apps
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(apps) {
		return []models.Application{}
	}
	end := start + pageSize
	if end > len(apps) {
		end = len(apps)
	}
	return apps[start:end]
}

func matchesSearch(app models.Application, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	for _, field := range []string{app.Name, app.Email, app.ApplicationID, app.JobTitle, app.Phone} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchesExact(value, filter string) bool {
	if filter == "" || filter == All {
		return true
	}
	return value == filter
}

func matchesDate(appliedAt time.Time, s Spec, now time.Time) bool {
	switch s.DateMode {
	case "", DateAll:
		return true
	case DateToday:
		y1, m1, d1 := appliedAt.Local().Date()
		y2, m2, d2 := now.Local().Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case DateWeek:
		return !appliedAt.Before(now.AddDate(0, 0, -7)) && !appliedAt.After(now)
	case DateMonth:
		return !appliedAt.Before(now.AddDate(0, -1, 0)) && !appliedAt.After(now)
	case DateCustom:
		if s.DateFrom != nil && appliedAt.Before(startOfDay(*s.DateFrom)) {
			return false
		}
		if s.DateTo != nil {
			// End date is inclusive of its whole day: [from, to+1d).
			if !appliedAt.Before(startOfDay(*s.DateTo).AddDate(0, 0, 1)) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
