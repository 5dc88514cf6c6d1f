package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"recruit-go/internal/auth"
	"recruit-go/internal/service"
)

// ResumeHandler exposes the two-phase résumé upload over HTTP.
type ResumeHandler struct {
	uploads *service.UploadService
}

// NewResumeHandler creates a ResumeHandler.
func NewResumeHandler(uploads *service.UploadService) *ResumeHandler {
	return &ResumeHandler{uploads: uploads}
}

type uploadRequest struct {
	UserID   string `json:"userId"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

// RequestUpload handles POST /resume/upload. The response carries a
// presigned URL the client PUTs the file bytes against directly.
func (h *ResumeHandler) RequestUpload(ctx context.Context, c *app.RequestContext) {
	var req uploadRequest
	if err := c.BindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	if p := auth.FromContext(c); p != nil {
		req.UserID = firstNonEmpty(req.UserID, p.UserID)
	}

	grant, err := h.uploads.RequestUploadGrant(ctx, req.UserID, req.FileName, req.FileType, req.FileSize)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"success":   true,
		"resumeId":  grant.ResumeID,
		"uploadUrl": grant.UploadURL,
		"fileKey":   grant.FileKey,
	})
}

// Download handles GET /resume/:resumeId, returning a presigned download
// URL. Missing metadata and a missing object both surface as not-found;
// the caller cannot tell which, and the UI copy reflects that.
func (h *ResumeHandler) Download(ctx context.Context, c *app.RequestContext) {
	url, err := h.uploads.GetDownloadGrant(ctx, c.Param("resumeId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"success":     true,
		"downloadUrl": url,
	})
}
