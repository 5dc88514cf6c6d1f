package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"recruit-go/internal/auth"
	"recruit-go/internal/export"
	"recruit-go/internal/query"
	"recruit-go/internal/service"
)

// ApplicationHandler exposes the application lifecycle over HTTP.
type ApplicationHandler struct {
	apps *service.ApplicationService
}

// NewApplicationHandler creates an ApplicationHandler.
func NewApplicationHandler(apps *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

// List handles GET /applications. An optional jobId narrows the result;
// richer filter parameters are applied over the fetched set with the same
// semantics the dashboard uses.
func (h *ApplicationHandler) List(ctx context.Context, c *app.RequestContext) {
	spec, ok := specFromQuery(c)
	if !ok {
		return
	}

	if spec.IsZero() {
		apps, err := h.apps.List(ctx, c.Query("jobId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(consts.StatusOK, utils.H{"applications": apps})
		return
	}

	spec.JobID = firstNonEmpty(spec.JobID, c.Query("jobId"))
	apps, total, err := h.apps.Search(ctx, spec)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"applications": apps, "total": total})
}

// Get handles GET /applications/:id.
func (h *ApplicationHandler) Get(ctx context.Context, c *app.RequestContext) {
	app, err := h.apps.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"application": app})
}

// Create handles POST /applications.
func (h *ApplicationHandler) Create(ctx context.Context, c *app.RequestContext) {
	var in service.CreateApplicationInput
	if err := c.BindJSON(&in); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	if p := auth.FromContext(c); p != nil {
		in.CreatedBy = firstNonEmpty(in.CreatedBy, p.UserID)
		in.CreatedByName = firstNonEmpty(in.CreatedByName, p.Name)
	}

	app, err := h.apps.Create(ctx, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusCreated, utils.H{"application": app})
}

// Update handles PUT /applications/:id. A status key in the body appends a
// history entry; any other field is a plain overwrite.
func (h *ApplicationHandler) Update(ctx context.Context, c *app.RequestContext) {
	var in service.UpdateApplicationInput
	if err := c.BindJSON(&in); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	if p := auth.FromContext(c); p != nil {
		in.ChangedBy = firstNonEmpty(in.ChangedBy, p.UserID)
		in.ChangedByName = firstNonEmpty(in.ChangedByName, p.Name)
	}

	app, err := h.apps.Update(ctx, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"application": app})
}

// Delete handles DELETE /applications/:id.
func (h *ApplicationHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.apps.Delete(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.SetStatusCode(consts.StatusNoContent)
}

// Duplicate handles POST /applications/:id/duplicate.
func (h *ApplicationHandler) Duplicate(ctx context.Context, c *app.RequestContext) {
	var createdBy, createdByName string
	if p := auth.FromContext(c); p != nil {
		createdBy = p.UserID
		createdByName = p.Name
	}

	app, err := h.apps.Duplicate(ctx, c.Param("id"), createdBy, createdByName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusCreated, utils.H{"application": app})
}

// Export handles GET /applications/export, streaming the filtered listing
// as a CSV download.
func (h *ApplicationHandler) Export(ctx context.Context, c *app.RequestContext) {
	spec, ok := specFromQuery(c)
	if !ok {
		return
	}
	spec.JobID = firstNonEmpty(spec.JobID, c.Query("jobId"))
	spec.Page = 0
	spec.PageSize = 0

	apps, _, err := h.apps.Search(ctx, spec)
	if err != nil {
		writeError(c, err)
		return
	}

	csv := export.Applications(apps)
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName("applications", time.Now())+`"`)
	c.Data(consts.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// specFromQuery parses the listing filter parameters. Reports false after
// writing a 400 when a date parameter is malformed.
func specFromQuery(c *app.RequestContext) (query.Spec, bool) {
	spec := query.Spec{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		Source:    c.Query("source"),
		Recruiter: c.Query("recruiter"),
		DateMode:  c.Query("dateMode"),
	}

	if v := c.Query("dateFrom"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			writeBadRequest(c, "dateFrom must be YYYY-MM-DD")
			return query.Spec{}, false
		}
		spec.DateFrom = &t
	}
	if v := c.Query("dateTo"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			writeBadRequest(c, "dateTo must be YYYY-MM-DD")
			return query.Spec{}, false
		}
		spec.DateTo = &t
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			spec.Page = n
		}
	}
	if v := c.Query("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			spec.PageSize = n
		}
	}
	return spec, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
