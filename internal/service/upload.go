package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"recruit-go/internal/config"
	"recruit-go/internal/storage"
	"recruit-go/internal/storage/models"
)

// UploadService implements the two-phase résumé upload: grant issuance with
// metadata registration, then a direct client PUT against the object store.
type UploadService struct {
	store   *storage.MySQL
	objects storage.ObjectStorage
	cfg     *config.UploadConfig
}

// NewUploadService creates an UploadService.
func NewUploadService(store *storage.MySQL, objects storage.ObjectStorage, cfg *config.UploadConfig) *UploadService {
	return &UploadService{store: store, objects: objects, cfg: cfg}
}

// UploadGrant is the response to a successful grant request. The client
// PUTs the file bytes directly against UploadURL.
type UploadGrant struct {
	ResumeID  string `json:"resumeId"`
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
}

// RequestUploadGrant validates the file descriptor, persists the résumé
// metadata record and returns a presigned upload URL. If persistence fails
// after the URL was issued, the caller gets an error and the URL is simply
// never used; there is no compensating cleanup.
func (s *UploadService) RequestUploadGrant(ctx context.Context, userID, fileName, fileType string, fileSize int64) (*UploadGrant, error) {
	if userID == "" {
		return nil, NewValidationError("userId", "userId is required")
	}
	if fileName == "" {
		return nil, NewValidationError("fileName", "fileName is required")
	}
	if !lo.Contains(s.cfg.AllowedFileTypes, fileType) {
		return nil, NewValidationError("fileType", "only PDF, DOC and DOCX files are accepted")
	}
	if fileSize <= 0 || fileSize > s.cfg.MaxFileSizeBytes {
		return nil, NewValidationError("fileSize", "file must be 5MB or smaller")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate resume id")
	}
	resumeID := id.String()
	fileKey := storage.ResumeObjectKey(userID, resumeID, fileName)

	uploadURL, err := s.objects.PresignedPutURL(ctx, fileKey, s.cfg.UploadGrantDuration())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue upload grant")
	}

	record := &models.Resume{
		ResumeID:   resumeID,
		UserID:     userID,
		FileName:   fileName,
		FileKey:    fileKey,
		FileSize:   fileSize,
		FileType:   fileType,
		UploadedAt: time.Now(),
	}
	if err := s.store.CreateResume(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to record resume metadata")
	}

	return &UploadGrant{ResumeID: resumeID, UploadURL: uploadURL, FileKey: fileKey}, nil
}

// GetDownloadGrant returns a presigned download URL for a stored résumé.
// The object's existence is verified first: a grant for a metadata record
// whose upload never completed reports NotFoundError instead of handing out
// a URL to nothing.
func (s *UploadService) GetDownloadGrant(ctx context.Context, resumeID string) (string, error) {
	record, err := s.store.GetResumeByID(ctx, resumeID)
	if err != nil {
		return "", notFoundOr(err, "resume", resumeID)
	}

	exists, err := s.objects.ObjectExists(ctx, record.FileKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to check resume object")
	}
	if !exists {
		return "", NewNotFoundError("resume", resumeID)
	}

	url, err := s.objects.PresignedGetURL(ctx, record.FileKey, s.cfg.DownloadGrantDuration())
	if err != nil {
		return "", errors.Wrap(err, "failed to issue download grant")
	}
	return url, nil
}
