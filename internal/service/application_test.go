package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruit-go/internal/query"
	"recruit-go/internal/storage/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateDefaultsToPendingWithSingleHistoryEntry(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()

	app, err := svc.Create(ctx, CreateApplicationInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	require.Len(t, app.StatusHistory, 1)
	assert.Equal(t, models.ApplicationStatusPending, app.StatusHistory[0].Status)
	assert.Equal(t, "Jane Doe", app.Name)
	assert.True(t, strings.HasPrefix(app.ApplicationID, "APP-"))
	assert.Equal(t, 1, app.Version)
}

func TestCreateWithExplicitStatus(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)

	app, err := svc.Create(context.Background(), CreateApplicationInput{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Status: models.ApplicationStatusReviewing,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusReviewing, app.Status)
	require.Len(t, app.StatusHistory, 1)
	assert.Equal(t, models.ApplicationStatusReviewing, app.StatusHistory[0].Status)
}

func TestCreateValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateApplicationInput{Name: "No Email"})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, CreateApplicationInput{Email: "x@example.com", FirstName: "OnlyFirst"})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, CreateApplicationInput{Name: "Bad Rating", Email: "x@example.com", Rating: 6})
	assert.True(t, IsValidation(err))
}

func TestCreateIncrementsJobCounterAndSnapshotsTitle(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()
	seedJob(t, store, "J1", "Backend Engineer")

	app, err := svc.Create(ctx, CreateApplicationInput{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		JobID: "J1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", app.JobTitle)

	job, err := store.GetJobByID(ctx, "J1")
	require.NoError(t, err)
	assert.Equal(t, 1, job.ApplicationsCount)
}

func TestUpdateStatusAppendsHistoryEveryTime(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()

	app, err := svc.Create(ctx, CreateApplicationInput{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)

	statuses := []string{
		models.ApplicationStatusReviewing,
		models.ApplicationStatusInterview,
		// Re-submitting the same status still grows the history; call
		// sites gate on whether the dropdown value actually changed.
		models.ApplicationStatusInterview,
		models.ApplicationStatusOffered,
	}
	for _, st := range statuses {
		_, err = svc.Update(ctx, app.ApplicationUUID, UpdateApplicationInput{Status: strPtr(st)})
		require.NoError(t, err)
	}

	got, err := svc.Get(ctx, app.ApplicationUUID)
	require.NoError(t, err)
	require.Len(t, got.StatusHistory, 1+len(statuses))
	assert.Equal(t, models.ApplicationStatusOffered, got.Status)
	for i, st := range statuses {
		assert.Equal(t, st, got.StatusHistory[i+1].Status)
	}
}

func TestUpdateWithoutStatusLeavesHistoryUntouched(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()

	app, err := svc.Create(ctx, CreateApplicationInput{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, app.ApplicationUUID, UpdateApplicationInput{
		Notes:  strPtr("strong systems background"),
		Rating: intPtr(4),
	})
	require.NoError(t, err)

	require.Len(t, got.StatusHistory, 1)
	assert.Equal(t, app.StatusHistory[0].Status, got.StatusHistory[0].Status)
	assert.Equal(t, "strong systems background", got.Notes)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, models.ApplicationStatusPending, got.Status)
}

func TestUpdateRatingBounds(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()

	app, err := svc.Create(ctx, CreateApplicationInput{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)

	for _, bad := range []int{-1, 6, 100} {
		_, err = svc.Update(ctx, app.ApplicationUUID, UpdateApplicationInput{Rating: intPtr(bad)})
		assert.True(t, IsValidation(err), "rating %d should be rejected", bad)
	}

	for _, ok := range []int{0, 1, 5} {
		got, err := svc.Update(ctx, app.ApplicationUUID, UpdateApplicationInput{Rating: intPtr(ok)})
		require.NoError(t, err)
		assert.Equal(t, ok, got.Rating)
	}
}

func TestUpdateOptimisticVersioning(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()

	app, err := svc.Create(ctx, CreateApplicationInput{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, app.ApplicationUUID, UpdateApplicationInput{
		Notes:           strPtr("first edit"),
		ExpectedVersion: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)

	_, err = svc.Update(ctx, app.ApplicationUUID, UpdateApplicationInput{
		Notes:           strPtr("stale edit"),
		ExpectedVersion: 1,
	})
	assert.True(t, IsConflict(err))

	// Without an expected version the write stays last-write-wins.
	got, err = svc.Update(ctx, app.ApplicationUUID, UpdateApplicationInput{Notes: strPtr("unversioned edit")})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)
	assert.Equal(t, "unversioned edit", got.Notes)
}

func TestDuplicateResets(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()

	src, err := svc.Create(ctx, CreateApplicationInput{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Phone:  "555-0101",
		Source: models.SourceReferral,
		Skills: []string{"go", "sql"},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, src.ApplicationUUID, UpdateApplicationInput{
		Status: strPtr(models.ApplicationStatusHired),
		Rating: intPtr(5),
		Notes:  strPtr("excellent"),
	})
	require.NoError(t, err)

	dup, err := svc.Duplicate(ctx, src.ApplicationUUID, "u1", "Recruiter One")
	require.NoError(t, err)

	assert.NotEqual(t, src.ApplicationUUID, dup.ApplicationUUID)
	assert.Equal(t, models.ApplicationStatusPending, dup.Status)
	assert.Equal(t, 0, dup.Rating)
	assert.Equal(t, "", dup.Notes)
	require.Len(t, dup.StatusHistory, 1)
	assert.Equal(t, models.ApplicationStatusPending, dup.StatusHistory[0].Status)

	assert.Equal(t, src.Email, dup.Email)
	assert.Equal(t, src.Phone, dup.Phone)
	assert.Equal(t, src.Source, dup.Source)
	assert.Equal(t, []string(src.Skills), []string(dup.Skills))
}

func TestListNarrowsByJobID(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()
	seedJob(t, store, "J1", "Backend Engineer")
	seedJob(t, store, "J2", "Data Analyst")

	_, err := svc.Create(ctx, CreateApplicationInput{Name: "A One", Email: "a1@example.com", JobID: "J1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateApplicationInput{Name: "A Two", Email: "a2@example.com", JobID: "J2"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateApplicationInput{Name: "A Three", Email: "a3@example.com"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	j1, err := svc.List(ctx, "J1")
	require.NoError(t, err)
	require.Len(t, j1, 1)
	assert.Equal(t, "a1@example.com", j1[0].Email)
}

func TestListHydratesJobTitleFromCurrentJob(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()
	job := seedJob(t, store, "J1", "Backend Engineer")

	app, err := svc.Create(ctx, CreateApplicationInput{Name: "Jane Doe", Email: "jane@example.com", JobID: "J1"})
	require.NoError(t, err)

	job.Title = "Senior Backend Engineer"
	require.NoError(t, store.SaveJob(ctx, job))

	got, err := svc.Get(ctx, app.ApplicationUUID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", got.JobTitle)
}

func TestEndToEndLifecycle(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()
	seedJob(t, store, "J1", "Backend Engineer")

	app, err := svc.Create(ctx, CreateApplicationInput{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		JobID: "J1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	require.Len(t, app.StatusHistory, 1)

	got, err := svc.Update(ctx, app.ApplicationUUID, UpdateApplicationInput{
		Status:        strPtr(models.ApplicationStatusInterview),
		ChangedByName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusInterview, got.Status)
	require.Len(t, got.StatusHistory, 2)
	assert.Equal(t, "Alice", got.StatusHistory[1].ChangedByName)

	require.NoError(t, svc.Delete(ctx, app.ApplicationUUID))

	_, err = svc.Update(ctx, app.ApplicationUUID, UpdateApplicationInput{Notes: strPtr("gone")})
	assert.True(t, IsNotFound(err))
}

func TestSearchFiltersAndPaginates(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)
	ctx := context.Background()
	seedApplications(t, svc, 5)

	page1, total, err := svc.Search(ctx, query.Spec{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page1, 2)

	page3, total, err := svc.Search(ctx, query.Spec{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page3, 1)

	matched, total, err := svc.Search(ctx, query.Spec{Search: "candidate3@"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, matched, 1)
	assert.Equal(t, "candidate3@example.com", matched[0].Email)
}

func TestDeleteNotFound(t *testing.T) {
	store := newTestStore(t)
	svc := NewApplicationService(store)

	err := svc.Delete(context.Background(), "no-such-id")
	assert.True(t, IsNotFound(err))
}
