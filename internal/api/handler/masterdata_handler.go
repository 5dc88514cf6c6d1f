package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"recruit-go/internal/export"
	"recruit-go/internal/service"
	"recruit-go/internal/storage/models"
)

// ClientHandler exposes client master-data CRUD.
type ClientHandler struct {
	clients *service.ClientService
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// List handles GET /clients.
func (h *ClientHandler) List(ctx context.Context, c *app.RequestContext) {
	cs, err := h.clients.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"clients": cs})
}

// Get handles GET /clients/:id.
func (h *ClientHandler) Get(ctx context.Context, c *app.RequestContext) {
	client, err := h.clients.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"client": client})
}

// Create handles POST /clients.
func (h *ClientHandler) Create(ctx context.Context, c *app.RequestContext) {
	var client models.Client
	if err := c.BindJSON(&client); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	created, err := h.clients.Create(ctx, &client)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusCreated, utils.H{"client": created})
}

// Update handles PUT /clients/:id.
func (h *ClientHandler) Update(ctx context.Context, c *app.RequestContext) {
	var client models.Client
	if err := c.BindJSON(&client); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.clients.Update(ctx, c.Param("id"), &client)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"client": updated})
}

// Delete handles DELETE /clients/:id.
func (h *ClientHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.clients.Delete(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.SetStatusCode(consts.StatusNoContent)
}

// Export handles GET /clients/export.
func (h *ClientHandler) Export(ctx context.Context, c *app.RequestContext) {
	cs, err := h.clients.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	csv := export.Clients(cs)
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName("clients", time.Now())+`"`)
	c.Data(consts.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// VendorHandler exposes vendor master-data CRUD.
type VendorHandler struct {
	vendors *service.VendorService
}

// NewVendorHandler creates a VendorHandler.
func NewVendorHandler(vendors *service.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

// List handles GET /vendors.
func (h *VendorHandler) List(ctx context.Context, c *app.RequestContext) {
	vs, err := h.vendors.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"vendors": vs})
}

// Get handles GET /vendors/:id.
func (h *VendorHandler) Get(ctx context.Context, c *app.RequestContext) {
	v, err := h.vendors.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"vendor": v})
}

// Create handles POST /vendors.
func (h *VendorHandler) Create(ctx context.Context, c *app.RequestContext) {
	var v models.Vendor
	if err := c.BindJSON(&v); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	created, err := h.vendors.Create(ctx, &v)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusCreated, utils.H{"vendor": created})
}

// Update handles PUT /vendors/:id.
func (h *VendorHandler) Update(ctx context.Context, c *app.RequestContext) {
	var v models.Vendor
	if err := c.BindJSON(&v); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.vendors.Update(ctx, c.Param("id"), &v)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"vendor": updated})
}

// Delete handles DELETE /vendors/:id.
func (h *VendorHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.vendors.Delete(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.SetStatusCode(consts.StatusNoContent)
}

// Export handles GET /vendors/export.
func (h *VendorHandler) Export(ctx context.Context, c *app.RequestContext) {
	vs, err := h.vendors.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	csv := export.Vendors(vs)
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName("vendors", time.Now())+`"`)
	c.Data(consts.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
