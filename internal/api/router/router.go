package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"recruit-go/internal/api/handler"
	"recruit-go/internal/auth"
	"recruit-go/internal/config"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Applications *handler.ApplicationHandler
	Resumes      *handler.ResumeHandler
	Jobs         *handler.JobHandler
	Candidates   *handler.CandidateHandler
	Clients      *handler.ClientHandler
	Vendors      *handler.VendorHandler
}

// RegisterRoutes wires the full route table. Careers routes are public;
// everything else sits behind API-key auth with per-group role gates.
func RegisterRoutes(h *server.Hertz, authCfg *config.AuthConfig, hs Handlers) {
	h.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	api := h.Group("/api/v1")

	// Public careers surface: browse open jobs, submit an application,
	// request a résumé upload grant.
	careers := api.Group("/careers")
	careers.GET("/jobs", hs.Jobs.ListOpen)
	careers.GET("/jobs/:id", hs.Jobs.Get)
	careers.POST("/applications", hs.Applications.Create)
	careers.POST("/resume/upload", hs.Resumes.RequestUpload)

	dashboard := api.Group("", auth.APIKeyAuth(authCfg))
	staff := auth.RequireRoles(auth.RoleAdmin, auth.RoleHR)

	apps := dashboard.Group("/applications", staff)
	apps.GET("", hs.Applications.List)
	apps.GET("/export", hs.Applications.Export)
	apps.GET("/:id", hs.Applications.Get)
	apps.POST("", hs.Applications.Create)
	apps.POST("/:id/duplicate", hs.Applications.Duplicate)
	apps.PUT("/:id", hs.Applications.Update)
	apps.DELETE("/:id", hs.Applications.Delete)

	resumes := dashboard.Group("/resume")
	resumes.POST("/upload", hs.Resumes.RequestUpload)
	resumes.GET("/:resumeId", staff, hs.Resumes.Download)

	jobs := dashboard.Group("/jobs", staff)
	jobs.GET("", hs.Jobs.List)
	jobs.GET("/:id", hs.Jobs.Get)
	jobs.POST("", hs.Jobs.Create)
	jobs.PUT("/:id", hs.Jobs.Update)
	jobs.DELETE("/:id", hs.Jobs.Delete)

	candidates := dashboard.Group("/candidate-applications", staff)
	candidates.GET("", hs.Candidates.List)
	candidates.GET("/export", hs.Candidates.Export)
	candidates.GET("/:id", hs.Candidates.Get)
	candidates.POST("", hs.Candidates.Create)
	candidates.PUT("/:id", hs.Candidates.Update)
	candidates.DELETE("/:id", hs.Candidates.Delete)

	// Master data is admin-only.
	adminOnly := auth.RequireRoles(auth.RoleAdmin)

	clients := dashboard.Group("/clients", adminOnly)
	clients.GET("", hs.Clients.List)
	clients.GET("/export", hs.Clients.Export)
	clients.GET("/:id", hs.Clients.Get)
	clients.POST("", hs.Clients.Create)
	clients.PUT("/:id", hs.Clients.Update)
	clients.DELETE("/:id", hs.Clients.Delete)

	vendors := dashboard.Group("/vendors", adminOnly)
	vendors.GET("", hs.Vendors.List)
	vendors.GET("/export", hs.Vendors.Export)
	vendors.GET("/:id", hs.Vendors.Get)
	vendors.POST("", hs.Vendors.Create)
	vendors.PUT("/:id", hs.Vendors.Update)
	vendors.DELETE("/:id", hs.Vendors.Delete)
}
