package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"recruit-go/internal/auth"
	"recruit-go/internal/service"
	"recruit-go/internal/storage/models"
)

// JobHandler exposes job posting CRUD and the public careers listing.
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// List handles GET /jobs with an optional status filter.
func (h *JobHandler) List(ctx context.Context, c *app.RequestContext) {
	jobs, err := h.jobs.List(ctx, c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"jobs": jobs})
}

// ListOpen handles GET /careers/jobs, the unauthenticated listing backing
// the public careers page.
func (h *JobHandler) ListOpen(ctx context.Context, c *app.RequestContext) {
	jobs, err := h.jobs.ListOpen(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"jobs": jobs})
}

// Get handles GET /jobs/:id.
func (h *JobHandler) Get(ctx context.Context, c *app.RequestContext) {
	job, err := h.jobs.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"job": job})
}

// Create handles POST /jobs.
func (h *JobHandler) Create(ctx context.Context, c *app.RequestContext) {
	var job models.Job
	if err := c.BindJSON(&job); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	if p := auth.FromContext(c); p != nil {
		job.PostedByName = firstNonEmpty(job.PostedByName, p.Name)
	}

	created, err := h.jobs.Create(ctx, &job)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusCreated, utils.H{"job": created})
}

// Update handles PUT /jobs/:id.
func (h *JobHandler) Update(ctx context.Context, c *app.RequestContext) {
	var job models.Job
	if err := c.BindJSON(&job); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.jobs.Update(ctx, c.Param("id"), &job)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"job": updated})
}

// Delete handles DELETE /jobs/:id.
func (h *JobHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.jobs.Delete(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.SetStatusCode(consts.StatusNoContent)
}
