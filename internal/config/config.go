package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"recruit-go/internal/constants"
)

// Config is the application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	Redis  RedisConfig  `yaml:"redis"`
	MinIO  MinIOConfig  `yaml:"minio"`
	Logger LoggerConfig `yaml:"logger"`
	Auth   AuthConfig   `yaml:"auth"`
	Upload UploadConfig `yaml:"upload"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"` // e.g. ":8080" or "0.0.0.0:8080"
}

// MySQLConfig MySQL settings.
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// Connection pool
	MaxIdleConns int `yaml:"max_idle_conns"`
	MaxOpenConns int `yaml:"max_open_conns"`
	// Connection lifetimes
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`
	ConnMaxIdleTimeMinutes int `yaml:"conn_max_idle_time_minutes"`
	// GORM log level (1-4)
	LogLevel int `yaml:"log_level"`
}

// DSN builds the MySQL connection string.
func (c *MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

// RedisConfig Redis settings.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// Connection pool
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`
	// Timeouts
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
}

// MinIOConfig object storage settings.
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL"`
	ResumesBucket   string `yaml:"resumesBucket"`
	Location        string `yaml:"location"`
	// Résumé objects older than this many days are expired by a bucket
	// lifecycle rule. 0 disables the rule.
	ResumeExpireDays int `yaml:"resume_expire_days"`
}

// LoggerConfig logging settings.
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // timestamp layout
	ReportCaller bool   `yaml:"report_caller"` // report call sites
	FilePath     string `yaml:"file_path"`     // optional log file, in addition to console
}

// APIKeyConfig maps one API key to a dashboard principal.
type APIKeyConfig struct {
	Key    string   `yaml:"key"`
	UserID string   `yaml:"user_id"`
	Name   string   `yaml:"name"`
	Roles  []string `yaml:"roles"` // admin, hr, candidate
}

// AuthConfig dashboard API-key settings.
type AuthConfig struct {
	APIKeys []APIKeyConfig `yaml:"api_keys"`
}

// UploadConfig résumé upload settings.
type UploadConfig struct {
	MaxFileSizeBytes   int64    `yaml:"max_file_size_bytes"`
	AllowedFileTypes   []string `yaml:"allowed_file_types"` // MIME types
	UploadGrantTTL     string   `yaml:"upload_grant_ttl"`   // e.g. "15m"
	DownloadGrantTTL   string   `yaml:"download_grant_ttl"` // e.g. "10m"
	uploadGrantTTLDur  time.Duration
	downloadGrantTTLur time.Duration
}

// UploadGrantDuration parses UploadGrantTTL, defaulting to 15 minutes.
func (c *UploadConfig) UploadGrantDuration() time.Duration {
	if c.uploadGrantTTLDur == 0 {
		d, err := time.ParseDuration(c.UploadGrantTTL)
		if err != nil || d <= 0 {
			d = constants.UploadGrantTTL
		}
		c.uploadGrantTTLDur = d
	}
	return c.uploadGrantTTLDur
}

// DownloadGrantDuration parses DownloadGrantTTL, defaulting to 10 minutes.
func (c *UploadConfig) DownloadGrantDuration() time.Duration {
	if c.downloadGrantTTLur == 0 {
		d, err := time.ParseDuration(c.DownloadGrantTTL)
		if err != nil || d <= 0 {
			d = constants.DownloadGrantTTL
		}
		c.downloadGrantTTLur = d
	}
	return c.downloadGrantTTLur
}

// LoadConfig loads configuration from a YAML file. Secrets can be
// overridden through environment variables so they stay out of the file.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment overrides for secrets.
	if v := os.Getenv("MYSQL_PASSWORD"); v != "" {
		config.MySQL.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		config.Redis.Password = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY_ID"); v != "" {
		config.MinIO.AccessKeyID = v
	}
	if v := os.Getenv("MINIO_SECRET_ACCESS_KEY"); v != "" {
		config.MinIO.SecretAccessKey = v
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
	if config.MinIO.ResumesBucket == "" {
		config.MinIO.ResumesBucket = "resumes"
	}
	if config.Upload.MaxFileSizeBytes == 0 {
		config.Upload.MaxFileSizeBytes = constants.MaxResumeSizeBytes
	}
	if len(config.Upload.AllowedFileTypes) == 0 {
		config.Upload.AllowedFileTypes = []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		}
	}
}
