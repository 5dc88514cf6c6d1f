package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"gorm.io/datatypes"

	"recruit-go/internal/logger"
	"recruit-go/internal/query"
	"recruit-go/internal/storage"
	"recruit-go/internal/storage/models"
)

// ApplicationService owns the application lifecycle: creation with the
// initial history entry, partial updates with the append-only status log,
// duplication and deletion.
type ApplicationService struct {
	store *storage.MySQL
}

// NewApplicationService creates an ApplicationService.
func NewApplicationService(store *storage.MySQL) *ApplicationService {
	return &ApplicationService{store: store}
}

// CreateApplicationInput carries the caller-supplied fields for a new
// application. Either Name or both FirstName and LastName are required,
// alongside Email.
type CreateApplicationInput struct {
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	ZipCode           string   `json:"zipCode"`
	Source            string   `json:"source"`
	Status            string   `json:"status"`
	JobID             string   `json:"jobId"`
	Ownership         string   `json:"ownership"`
	OwnershipName     string   `json:"ownershipName"`
	WorkAuthorization string   `json:"workAuthorization"`
	Rating            int      `json:"rating"`
	Notes             string   `json:"notes"`
	AddToTalentBench  bool     `json:"addToTalentBench"`
	Skills            []string `json:"skills"`
	Experience        string   `json:"experience"`
	CoverLetter       string   `json:"coverLetter"`
	ResumeID          string   `json:"resumeId"`
	CreatedBy         string   `json:"createdBy"`
	CreatedByName     string   `json:"createdByName"`
}

// UpdateApplicationInput carries a partial update. Pointer fields
// distinguish "absent" from "set to zero value"; the status history only
// grows when Status is present, even when the value is unchanged.
type UpdateApplicationInput struct {
	FirstName         *string   `json:"firstName"`
	LastName          *string   `json:"lastName"`
	Name              *string   `json:"name"`
	Email             *string   `json:"email"`
	Phone             *string   `json:"phone"`
	Address           *string   `json:"address"`
	City              *string   `json:"city"`
	State             *string   `json:"state"`
	ZipCode           *string   `json:"zipCode"`
	Source            *string   `json:"source"`
	Status            *string   `json:"status"`
	JobID             *string   `json:"jobId"`
	Ownership         *string   `json:"ownership"`
	OwnershipName     *string   `json:"ownershipName"`
	WorkAuthorization *string   `json:"workAuthorization"`
	Rating            *int      `json:"rating"`
	Notes             *string   `json:"notes"`
	AddToTalentBench  *bool     `json:"addToTalentBench"`
	Skills            *[]string `json:"skills"`
	Experience        *string   `json:"experience"`
	CoverLetter       *string   `json:"coverLetter"`
	ResumeID          *string   `json:"resumeId"`

	// Attribution for the appended history entry when Status is present.
	ChangedBy     string `json:"changedBy"`
	ChangedByName string `json:"changedByName"`
	ChangeNotes   string `json:"changeNotes"`

	// ExpectedVersion, when non-zero, enables optimistic concurrency: the
	// update is rejected with a ConflictError if the stored version differs.
	// Zero keeps the historical last-write-wins behavior.
	ExpectedVersion int `json:"expectedVersion"`
}

// Create validates and stores a new application. The record always starts
// with exactly one status-history entry; the default status is pending. If
// the application references a job, that job's applications counter is
// bumped best-effort.
func (s *ApplicationService) Create(ctx context.Context, in CreateApplicationInput) (*models.Application, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, NewValidationError("email", "email is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
			return nil, NewValidationError("name", "either name or firstName and lastName are required")
		}
		name = strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName)
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.ApplicationStatusPending
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate application id")
	}
	now := time.Now()

	app := &models.Application{
		ApplicationUUID:   id.String(),
		ApplicationID:     displayID(id),
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Name:              name,
		Email:             in.Email,
		Phone:             in.Phone,
		Address:           in.Address,
		City:              in.City,
		State:             in.State,
		ZipCode:           in.ZipCode,
		Source:            in.Source,
		Status:            status,
		JobID:             in.JobID,
		Ownership:         in.Ownership,
		OwnershipName:     in.OwnershipName,
		WorkAuthorization: in.WorkAuthorization,
		Rating:            in.Rating,
		Notes:             in.Notes,
		AddToTalentBench:  in.AddToTalentBench,
		Skills:            datatypes.NewJSONSlice(in.Skills),
		Experience:        in.Experience,
		CoverLetter:       in.CoverLetter,
		ResumeID:          in.ResumeID,
		AppliedAt:         now,
		CreatedAt:         now,
		CreatedBy:         in.CreatedBy,
		CreatedByName:     in.CreatedByName,
		UpdatedAt:         now,
		StatusHistory: datatypes.NewJSONSlice([]models.StatusChange{
			{Status: status, ChangedAt: now, ChangedByName: in.CreatedByName},
		}),
		Version: 1,
	}

	if in.JobID != "" {
		job, err := s.store.GetJobByID(ctx, in.JobID)
		if err == nil {
			app.JobTitle = job.Title
		}
	}

	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	// The counter bump is intentionally outside any transaction with the
	// insert; a failure here leaves the counter stale, not the record.
	if in.JobID != "" {
		if err := s.store.IncrementJobApplications(ctx, in.JobID); err != nil {
			logger.Warn().Err(err).
				Str("job_id", in.JobID).
				Str("application_id", app.ApplicationUUID).
				Msg("failed to increment job applications counter")
		}
	}

	return app, nil
}

// Get returns one application with its job title refreshed from the
// referenced job when it still exists.
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	app, err := s.store.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "application", id)
	}
	s.hydrateJobTitles(ctx, []*models.Application{app})
	return app, nil
}

// List returns all applications, optionally narrowed by job id. Any richer
// filtering is applied by the caller over the full result (see the query
// package).
func (s *ApplicationService) List(ctx context.Context, jobID string) ([]models.Application, error) {
	apps, err := s.store.ListApplications(ctx, jobID)
	if err != nil {
		return nil, err
	}
	ptrs := make([]*models.Application, len(apps))
	for i := range apps {
		ptrs[i] = &apps[i]
	}
	s.hydrateJobTitles(ctx, ptrs)
	return apps, nil
}

// Update merges the partial input onto the stored record. A history entry
// is appended exactly when the input carries a status, unchanged or not;
// every other field is a plain overwrite with no history.
func (s *ApplicationService) Update(ctx context.Context, id string, in UpdateApplicationInput) (*models.Application, error) {
	app, err := s.store.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "application", id)
	}

	if in.ExpectedVersion != 0 && in.ExpectedVersion != app.Version {
		return nil, &ConflictError{
			Entity:          "application",
			ID:              id,
			ExpectedVersion: in.ExpectedVersion,
			ActualVersion:   app.Version,
		}
	}

	if in.Rating != nil {
		if err := validateRating(*in.Rating); err != nil {
			return nil, err
		}
		app.Rating = *in.Rating
	}

	setIfPresent(&app.FirstName, in.FirstName)
	setIfPresent(&app.LastName, in.LastName)
	setIfPresent(&app.Name, in.Name)
	setIfPresent(&app.Email, in.Email)
	setIfPresent(&app.Phone, in.Phone)
	setIfPresent(&app.Address, in.Address)
	setIfPresent(&app.City, in.City)
	setIfPresent(&app.State, in.State)
	setIfPresent(&app.ZipCode, in.ZipCode)
	setIfPresent(&app.Source, in.Source)
	setIfPresent(&app.JobID, in.JobID)
	setIfPresent(&app.Ownership, in.Ownership)
	setIfPresent(&app.OwnershipName, in.OwnershipName)
	setIfPresent(&app.WorkAuthorization, in.WorkAuthorization)
	setIfPresent(&app.Notes, in.Notes)
	setIfPresent(&app.Experience, in.Experience)
	setIfPresent(&app.CoverLetter, in.CoverLetter)
	setIfPresent(&app.ResumeID, in.ResumeID)
	if in.AddToTalentBench != nil {
		app.AddToTalentBench = *in.AddToTalentBench
	}
	if in.Skills != nil {
		app.Skills = datatypes.NewJSONSlice(*in.Skills)
	}
	if in.FirstName != nil || in.LastName != nil {
		if in.Name == nil && app.FirstName != "" && app.LastName != "" {
			app.Name = app.FirstName + " " + app.LastName
		}
	}

	if in.Status != nil {
		app.Status = *in.Status
		app.StatusHistory = append(app.StatusHistory, models.StatusChange{
			Status:        *in.Status,
			ChangedAt:     time.Now(),
			ChangedByName: in.ChangedByName,
			Notes:         in.ChangeNotes,
		})
	}

	app.Version++
	app.UpdatedAt = time.Now()

	if err := s.store.SaveApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Delete removes the record unconditionally. Any résumé object the record
// referenced is left in place; the object store runs its own lifecycle.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteApplication(ctx, id); err != nil {
		return notFoundOr(err, "application", id)
	}
	return nil
}

// Duplicate creates a fresh application from the source record's contact,
// job and profile fields. Status, rating, notes and the history are reset,
// so the copy behaves exactly like a brand-new pending application.
func (s *ApplicationService) Duplicate(ctx context.Context, id string, createdBy, createdByName string) (*models.Application, error) {
	src, err := s.store.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "application", id)
	}

	return s.Create(ctx, CreateApplicationInput{
		FirstName:         src.FirstName,
		LastName:          src.LastName,
		Name:              src.Name,
		Email:             src.Email,
		Phone:             src.Phone,
		Address:           src.Address,
		City:              src.City,
		State:             src.State,
		ZipCode:           src.ZipCode,
		Source:            src.Source,
		JobID:             src.JobID,
		Ownership:         src.Ownership,
		OwnershipName:     src.OwnershipName,
		WorkAuthorization: src.WorkAuthorization,
		Skills:            src.Skills,
		Experience:        src.Experience,
		CoverLetter:       src.CoverLetter,
		ResumeID:          src.ResumeID,
		CreatedBy:         createdBy,
		CreatedByName:     createdByName,
	})
}

// Search applies the filter spec over the full (optionally job-narrowed)
// listing and paginates the result.
func (s *ApplicationService) Search(ctx context.Context, spec query.Spec) ([]models.Application, int, error) {
	apps, err := s.List(ctx, spec.JobID)
	if err != nil {
		return nil, 0, err
	}
	filtered := query.Apply(apps, spec, time.Now())
	total := len(filtered)
	return query.Paginate(filtered, spec.Page, spec.PageSize), total, nil
}

// hydrateJobTitles refreshes the denormalized job title snapshots from the
// referenced jobs. Records pointing at deleted jobs keep their stored
// snapshot.
func (s *ApplicationService) hydrateJobTitles(ctx context.Context, apps []*models.Application) {
	idSet := make(map[string]struct{})
	for _, app := range apps {
		if app.JobID != "" {
			idSet[app.JobID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	jobs, err := s.store.GetJobsByIDs(ctx, ids)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to hydrate job titles")
		return
	}
	for _, app := range apps {
		if job, ok := jobs[app.JobID]; ok {
			app.JobTitle = job.Title
		}
	}
}

func validateRating(rating int) error {
	if rating < 0 || rating > 5 {
		return NewValidationError("rating", "rating must be between 1 and 5, or 0 for unrated")
	}
	return nil
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// displayID derives the human-readable application id shown in the
// dashboard from the record's UUID.
func displayID(id uuid.UUID) string {
	return "APP-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
