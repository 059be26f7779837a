package servers

import (
	"errors"
	"strconv"

	"fleetdash/internal/httpx"
	"fleetdash/internal/model"
	"fleetdash/internal/telemetry"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles the server inventory API
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new servers handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// List handles GET /api/servers
func (h *Handler) List(c *gin.Context) {
	var servers []model.Server
	if err := h.db.Order("id").Find(&servers).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to fetch servers", err))
		return
	}
	httpx.OK(c, gin.H{"servers": servers})
}

// Get handles GET /api/servers/:id
func (h *Handler) Get(c *gin.Context) {
	server, appErr := h.load(c)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}
	httpx.OK(c, gin.H{"server": server})
}

// Create handles POST /api/servers
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing("Name, hostname, and ip_address are required"))
		return
	}

	if req.Status == "" {
		req.Status = string(model.ServerStatusOnline)
	}
	if req.Location == "" {
		req.Location = "Unknown"
	}
	if req.OS == "" {
		req.OS = "Linux"
	}

	usage := telemetry.Random()
	server := model.Server{
		Name:        req.Name,
		Hostname:    req.Hostname,
		IPAddress:   req.IPAddress,
		Status:      model.ServerStatus(req.Status),
		CPUUsage:    usage.CPU,
		MemoryUsage: usage.Memory,
		DiskUsage:   usage.Disk,
		Uptime:      usage.Uptime,
		Location:    req.Location,
		OS:          req.OS,
	}
	if err := h.db.Create(&server).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to create server", err))
		return
	}

	httpx.Created(c, "Server created successfully", gin.H{"server": server})
}

// Update handles PUT /api/servers/:id
func (h *Handler) Update(c *gin.Context) {
	server, appErr := h.load(c)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("Invalid request body"))
		return
	}

	if req.Name != nil {
		server.Name = *req.Name
	}
	if req.Hostname != nil {
		server.Hostname = *req.Hostname
	}
	if req.IPAddress != nil {
		server.IPAddress = *req.IPAddress
	}
	if req.Status != nil {
		server.Status = model.ServerStatus(*req.Status)
	}
	if req.CPUUsage != nil {
		server.CPUUsage = *req.CPUUsage
	}
	if req.MemoryUsage != nil {
		server.MemoryUsage = *req.MemoryUsage
	}
	if req.DiskUsage != nil {
		server.DiskUsage = *req.DiskUsage
	}
	if req.Uptime != nil {
		server.Uptime = *req.Uptime
	}
	if req.Location != nil {
		server.Location = *req.Location
	}
	if req.OS != nil {
		server.OS = *req.OS
	}

	// Save also refreshes updated_at when no field changed.
	if err := h.db.Save(server).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to update server", err))
		return
	}

	httpx.OKMsg(c, "Server updated successfully", gin.H{"server": server})
}

// Delete handles DELETE /api/servers/:id
func (h *Handler) Delete(c *gin.Context) {
	server, appErr := h.load(c)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	if err := h.db.Delete(server).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to delete server", err))
		return
	}

	httpx.OKMsg(c, "Server deleted successfully", nil)
}

// load fetches the server addressed by the :id route parameter
func (h *Handler) load(c *gin.Context) (*model.Server, *httpx.AppError) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, httpx.ErrNotFound("Server not found")
	}

	var server model.Server
	if err := h.db.First(&server, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound("Server not found")
		}
		return nil, httpx.ErrDatabaseError("Failed to load server", err)
	}
	return &server, nil
}
