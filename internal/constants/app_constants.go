package constants

import "time"

const (
	// MaxResumeSizeBytes caps résumé uploads. The careers UI advertises
	// "PDF, DOC or DOCX, max 5MB"; the service enforces the same bound.
	MaxResumeSizeBytes = 5 * 1024 * 1024

	// UploadGrantTTL is the lifetime of a presigned upload URL.
	UploadGrantTTL = 15 * time.Minute

	// DownloadGrantTTL is the lifetime of a presigned download URL.
	DownloadGrantTTL = 10 * time.Minute

	// OpenJobsCacheTTL bounds staleness of the careers-page job listing.
	OpenJobsCacheTTL = 5 * time.Minute
)
