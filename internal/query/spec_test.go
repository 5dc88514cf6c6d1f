package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recruit-go/internal/storage/models"
)

func fixtureApps(now time.Time) []models.Application {
	return []models.Application{
		{
			ApplicationUUID: "a1",
			ApplicationID:   "APP-AAAA1111",
			Name:            "Alice Johnson",
			Email:           "alice@example.com",
			Phone:           "555-0101",
			Status:          models.ApplicationStatusHired,
			Source:          models.SourceReferral,
			JobID:           "J1",
			JobTitle:        "Backend Engineer",
			Ownership:       "rec-1",
			AppliedAt:       now.AddDate(0, 0, -1),
		},
		{
			ApplicationUUID: "a2",
			ApplicationID:   "APP-BBBB2222",
			Name:            "Bob Martinez",
			Email:           "bob@example.com",
			Phone:           "555-0202",
			Status:          models.ApplicationStatusHired,
			Source:          models.SourceLinkedIn,
			JobID:           "J1",
			JobTitle:        "Backend Engineer",
			Ownership:       "rec-2",
			AppliedAt:       now.AddDate(0, 0, -10),
		},
		{
			ApplicationUUID: "a3",
			ApplicationID:   "APP-CCCC3333",
			Name:            "Carol White",
			Email:           "carol@example.com",
			Phone:           "555-0303",
			Status:          models.ApplicationStatusPending,
			Source:          models.SourceReferral,
			JobID:           "J2",
			JobTitle:        "Data Analyst",
			Ownership:       "rec-1",
			AppliedAt:       now.AddDate(0, 0, -40),
		},
		{
			ApplicationUUID: "a4",
			ApplicationID:   "APP-DDDD4444",
			Name:            "Dan Lee",
			Email:           "dan@example.com",
			Phone:           "555-0404",
			Status:          models.ApplicationStatusInterview,
			Source:          models.SourceIndeed,
			JobID:           "J2",
			JobTitle:        "Data Analyst",
			Ownership:       "rec-3",
			AppliedAt:       now,
		},
		{
			ApplicationUUID: "a5",
			ApplicationID:   "APP-EEEE5555",
			Name:            "Eve Chen",
			Email:           "eve@example.com",
			Phone:           "555-0505",
			Status:          models.ApplicationStatusRejected,
			Source:          models.SourceWebsite,
			JobID:           "J3",
			JobTitle:        "Product Manager",
			Ownership:       "rec-2",
			AppliedAt:       now.AddDate(0, 0, -3),
		},
	}
}

func ids(apps []models.Application) []string {
	out := make([]string, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.ApplicationUUID)
	}
	return out
}

func TestApplyNoFilters(t *testing.T) {
	now := time.Now()
	apps := fixtureApps(now)

	got := Apply(apps, Spec{}, now)
	assert.Len(t, got, 5)

	got = Apply(apps, Spec{Status: All, Source: All, DateMode: DateAll}, now)
	assert.Len(t, got, 5)
}

func TestApplyANDComposition(t *testing.T) {
	now := time.Now()
	apps := fixtureApps(now)

	got := Apply(apps, Spec{Status: models.ApplicationStatusHired, Source: models.SourceReferral}, now)
	assert.Equal(t, []string{"a1"}, ids(got))

	got = Apply(apps, Spec{Status: models.ApplicationStatusHired}, now)
	assert.Equal(t, []string{"a1", "a2"}, ids(got))
}

func TestApplyTextSearch(t *testing.T) {
	now := time.Now()
	apps := fixtureApps(now)

	cases := []struct {
		name   string
		search string
		want   []string
	}{
		{"matches name case-insensitively", "ALICE", []string{"a1"}},
		{"matches email", "bob@", []string{"a2"}},
		{"matches display id", "cccc3333", []string{"a3"}},
		{"matches job title across records", "backend", []string{"a1", "a2"}},
		{"matches phone", "555-0404", []string{"a4"}},
		{"no match", "zzz", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(apps, Spec{Search: tc.search}, now)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestApplyJobAndRecruiterFilters(t *testing.T) {
	now := time.Now()
	apps := fixtureApps(now)

	got := Apply(apps, Spec{JobID: "J2"}, now)
	assert.Equal(t, []string{"a3", "a4"}, ids(got))

	got = Apply(apps, Spec{Recruiter: "rec-1"}, now)
	assert.Equal(t, []string{"a1", "a3"}, ids(got))
}

func TestDateModeToday(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)
	midnight := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	apps := []models.Application{
		{ApplicationUUID: "m", AppliedAt: midnight},
		{ApplicationUUID: "y", AppliedAt: midnight.AddDate(0, 0, -1)},
	}

	got := Apply(apps, Spec{DateMode: DateToday}, now)
	assert.Equal(t, []string{"m"}, ids(got))
}

func TestDateModeWeekAndMonth(t *testing.T) {
	now := time.Now()
	apps := fixtureApps(now)

	got := Apply(apps, Spec{DateMode: DateWeek}, now)
	assert.Equal(t, []string{"a1", "a4", "a5"}, ids(got))

	got = Apply(apps, Spec{DateMode: DateMonth}, now)
	assert.Equal(t, []string{"a1", "a2", "a4", "a5"}, ids(got))
}

func TestDateModeCustomEndInclusive(t *testing.T) {
	now := time.Now()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	apps := []models.Application{
		{ApplicationUUID: "lastSecond", AppliedAt: time.Date(2026, 3, 10, 23, 59, 59, 0, time.Local)},
		{ApplicationUUID: "nextDay", AppliedAt: time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)},
		{ApplicationUUID: "beforeFrom", AppliedAt: time.Date(2026, 2, 28, 12, 0, 0, 0, time.Local)},
		{ApplicationUUID: "inRange", AppliedAt: time.Date(2026, 3, 5, 9, 0, 0, 0, time.Local)},
	}

	got := Apply(apps, Spec{DateMode: DateCustom, DateFrom: &from, DateTo: &to}, now)
	assert.Equal(t, []string{"lastSecond", "inRange"}, ids(got))
}

func TestPaginate(t *testing.T) {
	now := time.Now()
	apps := fixtureApps(now)

	assert.Equal(t, []string{"a1", "a2"}, ids(Paginate(apps, 1, 2)))
	assert.Equal(t, []string{"a3", "a4"}, ids(Paginate(apps, 2, 2)))
	assert.Equal(t, []string{"a5"}, ids(Paginate(apps, 3, 2)))
	assert.Empty(t, Paginate(apps, 4, 2))
	assert.Len(t, Paginate(apps, 1, 0), 5)
}
