package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruit-go/internal/storage/models"
)

func TestJobCRUD(t *testing.T) {
	store := newTestStore(t)
	svc := NewJobService(store, nil)
	ctx := context.Background()

	job, err := svc.Create(ctx, &models.Job{
		Title:      "Backend Engineer",
		Department: "Engineering",
		Type:       models.JobTypeFullTime,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, job.JobID)
	assert.Equal(t, models.JobStatusOpen, job.Status)

	got, err := svc.Get(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)

	got, err = svc.Update(ctx, job.JobID, &models.Job{
		Title:  "Senior Backend Engineer",
		Status: models.JobStatusPaused,
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", got.Title)
	assert.Equal(t, models.JobStatusPaused, got.Status)

	require.NoError(t, svc.Delete(ctx, job.JobID))
	_, err = svc.Get(ctx, job.JobID)
	assert.True(t, IsNotFound(err))
}

func TestJobCreateRequiresTitle(t *testing.T) {
	store := newTestStore(t)
	svc := NewJobService(store, nil)

	_, err := svc.Create(context.Background(), &models.Job{Department: "Engineering"})
	assert.True(t, IsValidation(err))
}

func TestJobFreeFormStatusTransitions(t *testing.T) {
	store := newTestStore(t)
	svc := NewJobService(store, nil)
	ctx := context.Background()

	job, err := svc.Create(ctx, &models.Job{Title: "Analyst"})
	require.NoError(t, err)

	// Any status may follow any other, closed back to open included.
	for _, st := range []string{
		models.JobStatusClosed,
		models.JobStatusOpen,
		models.JobStatusOnHold,
		models.JobStatusDraft,
	} {
		got, err := svc.Update(ctx, job.JobID, &models.Job{Status: st})
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}
}

func TestListOpenWithoutCache(t *testing.T) {
	store := newTestStore(t)
	svc := NewJobService(store, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.Job{Title: "Open Role"})
	require.NoError(t, err)
	closed, err := svc.Create(ctx, &models.Job{Title: "Closed Role"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, closed.JobID, &models.Job{Title: "Closed Role", Status: models.JobStatusClosed})
	require.NoError(t, err)

	open, err := svc.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Open Role", open[0].Title)
}
