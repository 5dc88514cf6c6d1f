package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"gorm.io/datatypes"

	"recruit-go/internal/storage"
	"recruit-go/internal/storage/models"
)

// CandidateService owns the strictly validated candidate-management flow.
// Unlike the open application intake, phone, source and work authorization
// are mandatory here and the status enum is restricted.
type CandidateService struct {
	store    *storage.MySQL
	validate *validator.Validate
}

// NewCandidateService creates a CandidateService.
func NewCandidateService(store *storage.MySQL) *CandidateService {
	return &CandidateService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateCandidateInput carries the fields for a new candidate record.
type CreateCandidateInput struct {
	FirstName         string   `json:"firstName" validate:"required"`
	LastName          string   `json:"lastName" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	Phone             string   `json:"phone" validate:"required"`
	Address           string   `json:"address"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	ZipCode           string   `json:"zipCode"`
	Source            string   `json:"source" validate:"required"`
	Status            string   `json:"status" validate:"omitempty,oneof=active inactive hired rejected"`
	JobID             string   `json:"jobId"`
	JobTitle          string   `json:"jobTitle"`
	WorkAuthorization string   `json:"workAuthorization" validate:"required"`
	Rating            int      `json:"rating" validate:"gte=0,lte=5"`
	Notes             string   `json:"notes"`
	Skills            []string `json:"skills"`
	Experience        string   `json:"experience"`
	ResumeID          string   `json:"resumeId"`
	CreatedBy         string   `json:"createdBy"`
	CreatedByName     string   `json:"createdByName"`
}

// UpdateCandidateInput carries a partial candidate update. Pointer fields
// distinguish absent from zero; a present Status appends to the history.
type UpdateCandidateInput struct {
	FirstName         *string   `json:"firstName"`
	LastName          *string   `json:"lastName"`
	Email             *string   `json:"email"`
	Phone             *string   `json:"phone"`
	Address           *string   `json:"address"`
	City              *string   `json:"city"`
	State             *string   `json:"state"`
	ZipCode           *string   `json:"zipCode"`
	Source            *string   `json:"source"`
	Status            *string   `json:"status"`
	JobID             *string   `json:"jobId"`
	JobTitle          *string   `json:"jobTitle"`
	WorkAuthorization *string   `json:"workAuthorization"`
	Rating            *int      `json:"rating"`
	Notes             *string   `json:"notes"`
	Skills            *[]string `json:"skills"`
	Experience        *string   `json:"experience"`
	ResumeID          *string   `json:"resumeId"`

	ChangedByName string `json:"changedByName"`
}

var candidateStatuses = map[string]bool{
	models.CandidateStatusActive:   true,
	models.CandidateStatusInactive: true,
	models.CandidateStatusHired:    true,
	models.CandidateStatusRejected: true,
}

// Create validates and stores a new candidate record.
func (s *CandidateService) Create(ctx context.Context, in CreateCandidateInput) (*models.CandidateApplication, error) {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return nil, NewValidationError(lowerFirst(f.Field()), "failed "+f.Tag()+" validation")
		}
		return nil, NewValidationError("", err.Error())
	}

	status := in.Status
	if status == "" {
		status = models.CandidateStatusActive
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate candidate id")
	}
	now := time.Now()

	c := &models.CandidateApplication{
		CandidateUUID:     id.String(),
		ApplicationID:     displayID(id),
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Name:              in.FirstName + " " + in.LastName,
		Email:             in.Email,
		Phone:             in.Phone,
		Address:           in.Address,
		City:              in.City,
		State:             in.State,
		ZipCode:           in.ZipCode,
		Source:            in.Source,
		Status:            status,
		JobID:             in.JobID,
		JobTitle:          in.JobTitle,
		WorkAuthorization: in.WorkAuthorization,
		Rating:            in.Rating,
		Notes:             in.Notes,
		Skills:            datatypes.NewJSONSlice(in.Skills),
		Experience:        in.Experience,
		ResumeID:          in.ResumeID,
		AppliedAt:         now,
		CreatedAt:         now,
		CreatedBy:         in.CreatedBy,
		CreatedByName:     in.CreatedByName,
		UpdatedAt:         now,
		StatusHistory: datatypes.NewJSONSlice([]models.StatusChange{
			{Status: status, ChangedAt: now, ChangedByName: in.CreatedByName},
		}),
	}

	if err := s.store.CreateCandidateApplication(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns one candidate record.
func (s *CandidateService) Get(ctx context.Context, id string) (*models.CandidateApplication, error) {
	c, err := s.store.GetCandidateApplicationByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "candidate", id)
	}
	return c, nil
}

// List returns all candidate records.
func (s *CandidateService) List(ctx context.Context) ([]models.CandidateApplication, error) {
	return s.store.ListCandidateApplications(ctx)
}

// Update merges the partial input onto the stored record. A present Status
// must belong to the restricted enum and appends a history entry.
func (s *CandidateService) Update(ctx context.Context, id string, in UpdateCandidateInput) (*models.CandidateApplication, error) {
	c, err := s.store.GetCandidateApplicationByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "candidate", id)
	}

	if in.Rating != nil {
		if err := validateRating(*in.Rating); err != nil {
			return nil, err
		}
		c.Rating = *in.Rating
	}

	setIfPresent(&c.FirstName, in.FirstName)
	setIfPresent(&c.LastName, in.LastName)
	setIfPresent(&c.Email, in.Email)
	setIfPresent(&c.Phone, in.Phone)
	setIfPresent(&c.Address, in.Address)
	setIfPresent(&c.City, in.City)
	setIfPresent(&c.State, in.State)
	setIfPresent(&c.ZipCode, in.ZipCode)
	setIfPresent(&c.Source, in.Source)
	setIfPresent(&c.JobID, in.JobID)
	setIfPresent(&c.JobTitle, in.JobTitle)
	setIfPresent(&c.WorkAuthorization, in.WorkAuthorization)
	setIfPresent(&c.Notes, in.Notes)
	setIfPresent(&c.Experience, in.Experience)
	setIfPresent(&c.ResumeID, in.ResumeID)
	if in.Skills != nil {
		c.Skills = datatypes.NewJSONSlice(*in.Skills)
	}
	if in.FirstName != nil || in.LastName != nil {
		if c.FirstName != "" && c.LastName != "" {
			c.Name = c.FirstName + " " + c.LastName
		}
	}

	if in.Status != nil {
		if !candidateStatuses[*in.Status] {
			return nil, NewValidationError("status", "status must be one of active, inactive, hired, rejected")
		}
		c.Status = *in.Status
		c.StatusHistory = append(c.StatusHistory, models.StatusChange{
			Status:        *in.Status,
			ChangedAt:     time.Now(),
			ChangedByName: in.ChangedByName,
		})
	}

	c.UpdatedAt = time.Now()
	if err := s.store.SaveCandidateApplication(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the candidate record.
func (s *CandidateService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteCandidateApplication(ctx, id); err != nil {
		return notFoundOr(err, "candidate", id)
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
