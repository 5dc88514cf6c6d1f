package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
server:
  address: ":9090"
mysql:
  host: "db.internal"
  port: 3306
  username: "recruit"
  password: "secret"
  database: "recruit"
minio:
  endpoint: "minio.internal:9000"
  accessKeyID: "ak"
  secretAccessKey: "sk"
auth:
  api_keys:
    - key: "k1"
      user_id: "u1"
      name: "Admin"
      roles: ["admin", "hr"]
upload:
  upload_grant_ttl: "30m"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "recruit:secret@tcp(db.internal:3306)/recruit?charset=utf8mb4&parseTime=True&loc=Local", cfg.MySQL.DSN())
	require.Len(t, cfg.Auth.APIKeys, 1)
	assert.Equal(t, []string{"admin", "hr"}, cfg.Auth.APIKeys[0].Roles)
	assert.Equal(t, 30*time.Minute, cfg.Upload.UploadGrantDuration())
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, `
mysql:
  host: "localhost"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "resumes", cfg.MinIO.ResumesBucket)
	assert.EqualValues(t, 5*1024*1024, cfg.Upload.MaxFileSizeBytes)
	assert.Contains(t, cfg.Upload.AllowedFileTypes, "application/pdf")
	assert.Equal(t, 15*time.Minute, cfg.Upload.UploadGrantDuration())
	assert.Equal(t, 10*time.Minute, cfg.Upload.DownloadGrantDuration())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, `
mysql:
  password: "from-file"
`)

	t.Setenv("MYSQL_PASSWORD", "from-env")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.MySQL.Password)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
