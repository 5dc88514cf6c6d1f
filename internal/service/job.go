package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"

	"recruit-go/internal/logger"
	"recruit-go/internal/storage"
	"recruit-go/internal/storage/models"
)

// JobService owns job posting CRUD and the cached careers-page listing.
type JobService struct {
	store *storage.MySQL
	cache *storage.Redis
}

// NewJobService creates a JobService. cache may be nil, in which case every
// listing read goes to the database.
func NewJobService(store *storage.MySQL, cache *storage.Redis) *JobService {
	return &JobService{store: store, cache: cache}
}

// Create validates and stores a new job posting. Status transitions are
// free-form, so the only required field is the title.
func (s *JobService) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.Title == "" {
		return nil, NewValidationError("title", "title is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate job id")
	}
	job.JobID = id.String()
	if job.Status == "" {
		job.Status = models.JobStatusOpen
	}
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.ApplicationsCount = 0

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return job, nil
}

// Get returns one job posting.
func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.store.GetJobByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "job", id)
	}
	return job, nil
}

// List returns all jobs, optionally narrowed by status.
func (s *JobService) List(ctx context.Context, status string) ([]models.Job, error) {
	return s.store.ListJobs(ctx, status)
}

// ListOpen returns the open postings shown on the public careers page,
// served from the cache when warm.
func (s *JobService) ListOpen(ctx context.Context) ([]models.Job, error) {
	if s.cache != nil {
		payload, err := s.cache.GetOpenJobsListing(ctx)
		if err == nil {
			var jobs []models.Job
			if jerr := json.Unmarshal(payload, &jobs); jerr == nil {
				return jobs, nil
			}
			// A corrupt cache entry falls through to the database read.
		} else if !errors.Is(err, storage.ErrCacheMiss) {
			logger.Warn().Err(err).Msg("open jobs cache read failed")
		}
	}

	jobs, err := s.store.ListJobs(ctx, models.JobStatusOpen)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, merr := json.Marshal(jobs); merr == nil {
			if cerr := s.cache.SetOpenJobsListing(ctx, payload); cerr != nil {
				logger.Warn().Err(cerr).Msg("open jobs cache write failed")
			}
		}
	}
	return jobs, nil
}

// Update merges the provided posting onto the stored record. The incoming
// record's id and counters are ignored; mutable posting fields win.
func (s *JobService) Update(ctx context.Context, id string, updated *models.Job) (*models.Job, error) {
	job, err := s.store.GetJobByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "job", id)
	}

	if updated.Title != "" {
		job.Title = updated.Title
	}
	job.Department = updated.Department
	job.Location = updated.Location
	job.State = updated.State
	job.Type = updated.Type
	job.Description = updated.Description
	job.Requirements = updated.Requirements
	job.Responsibilities = updated.Responsibilities
	job.Salary = updated.Salary
	job.ClientBillRate = updated.ClientBillRate
	job.PayRate = updated.PayRate
	if updated.Status != "" {
		job.Status = updated.Status
	}
	job.SubmissionDueDate = updated.SubmissionDueDate
	job.ClientID = updated.ClientID
	job.ClientName = updated.ClientName
	job.RecruitmentManagerID = updated.RecruitmentManagerID
	job.RecruitmentManagerName = updated.RecruitmentManagerName
	job.RecruitmentManagerEmail = updated.RecruitmentManagerEmail
	job.AssignedToID = updated.AssignedToID
	job.AssignedToName = updated.AssignedToName
	job.NotifyHROnApplication = updated.NotifyHROnApplication
	job.NotifyAdminOnApplication = updated.NotifyAdminOnApplication
	job.UpdatedAt = time.Now()

	if err := s.store.SaveJob(ctx, job); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return job, nil
}

// Delete removes the posting. Applications referencing it keep their
// stored job title snapshot.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteJob(ctx, id); err != nil {
		return notFoundOr(err, "job", id)
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *JobService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOpenJobsListing(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate open jobs cache")
	}
}
