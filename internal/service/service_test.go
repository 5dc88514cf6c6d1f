package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"recruit-go/internal/config"
	"recruit-go/internal/storage"
	"recruit-go/internal/storage/models"
)

// newTestStore runs the real repository code against an in-memory SQLite
// database, one per test.
func newTestStore(t *testing.T) *storage.MySQL {
	t.Helper()

	// Named shared-cache in-memory DB so every pooled connection sees the
	// same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	store := storage.NewMySQLWithDB(db)
	require.NoError(t, store.AutoMigrate())

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// fakeObjectStore is an in-memory ObjectStorage. Objects only come into
// existence through put, mirroring the fact that real uploads happen out of
// band against the presigned URL.
type fakeObjectStore struct {
	objects   map[string]bool
	presignFn func(key string) (string, error)
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string]bool)}
}

func (f *fakeObjectStore) put(key string) {
	f.objects[key] = true
}

func (f *fakeObjectStore) PresignedPutURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.presignFn != nil {
		return f.presignFn(key)
	}
	return "https://objects.test/upload/" + key, nil
}

func (f *fakeObjectStore) PresignedGetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://objects.test/download/" + key, nil
}

func (f *fakeObjectStore) ObjectExists(_ context.Context, key string) (bool, error) {
	return f.objects[key], nil
}

func (f *fakeObjectStore) RemoveObject(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func testUploadConfig() *config.UploadConfig {
	return &config.UploadConfig{
		MaxFileSizeBytes: 5 * 1024 * 1024,
		AllowedFileTypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
	}
}

func seedJob(t *testing.T, store *storage.MySQL, id, title string) *models.Job {
	t.Helper()
	job := &models.Job{
		JobID:     id,
		Title:     title,
		Status:    models.JobStatusOpen,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.CreateJob(context.Background(), job))
	return job
}

func seedApplications(t *testing.T, svc *ApplicationService, n int) []*models.Application {
	t.Helper()
	out := make([]*models.Application, 0, n)
	for i := 0; i < n; i++ {
		app, err := svc.Create(context.Background(), CreateApplicationInput{
			Name:  fmt.Sprintf("Candidate %d", i),
			Email: fmt.Sprintf("candidate%d@example.com", i),
		})
		require.NoError(t, err)
		out = append(out, app)
	}
	return out
}
