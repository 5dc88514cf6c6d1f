package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"recruit-go/internal/auth"
	"recruit-go/internal/export"
	"recruit-go/internal/service"
)

// CandidateHandler exposes the strictly validated candidate-management
// flow.
type CandidateHandler struct {
	candidates *service.CandidateService
}

// NewCandidateHandler creates a CandidateHandler.
func NewCandidateHandler(candidates *service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

// List handles GET /candidate-applications.
func (h *CandidateHandler) List(ctx context.Context, c *app.RequestContext) {
	cs, err := h.candidates.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"candidateApplications": cs})
}

// Get handles GET /candidate-applications/:id.
func (h *CandidateHandler) Get(ctx context.Context, c *app.RequestContext) {
	cand, err := h.candidates.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"candidateApplication": cand})
}

// Create handles POST /candidate-applications.
func (h *CandidateHandler) Create(ctx context.Context, c *app.RequestContext) {
	var in service.CreateCandidateInput
	if err := c.BindJSON(&in); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	if p := auth.FromContext(c); p != nil {
		in.CreatedBy = firstNonEmpty(in.CreatedBy, p.UserID)
		in.CreatedByName = firstNonEmpty(in.CreatedByName, p.Name)
	}

	cand, err := h.candidates.Create(ctx, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusCreated, utils.H{"candidateApplication": cand})
}

// Update handles PUT /candidate-applications/:id.
func (h *CandidateHandler) Update(ctx context.Context, c *app.RequestContext) {
	var in service.UpdateCandidateInput
	if err := c.BindJSON(&in); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	if p := auth.FromContext(c); p != nil {
		in.ChangedByName = firstNonEmpty(in.ChangedByName, p.Name)
	}

	cand, err := h.candidates.Update(ctx, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"candidateApplication": cand})
}

// Delete handles DELETE /candidate-applications/:id.
func (h *CandidateHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.candidates.Delete(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.SetStatusCode(consts.StatusNoContent)
}

// Export handles GET /candidate-applications/export.
func (h *CandidateHandler) Export(ctx context.Context, c *app.RequestContext) {
	cs, err := h.candidates.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	csv := export.Candidates(cs)
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName("candidates", time.Now())+`"`)
	c.Data(consts.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
