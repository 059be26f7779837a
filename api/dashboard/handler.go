package dashboard

import (
	"math"
	"net/http"

	"fleetdash/internal/httpx"
	"fleetdash/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsResponse represents the fleet aggregation payload
type StatsResponse struct {
	TotalServers    int             `json:"total_servers"`
	StatusBreakdown StatusBreakdown `json:"status_breakdown"`
	AverageUsage    AverageUsage    `json:"average_usage"`
}

// StatusBreakdown counts servers per status
type StatusBreakdown struct {
	Online      int `json:"online"`
	Offline     int `json:"offline"`
	Maintenance int `json:"maintenance"`
	Error       int `json:"error"`
}

// AverageUsage holds fleet-wide usage means, rounded to 2 decimals
type AverageUsage struct {
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
	Disk   float64 `json:"disk"`
}

// Handler handles the dashboard aggregation API
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new dashboard handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Stats handles GET /api/dashboard/stats
func (h *Handler) Stats(c *gin.Context) {
	var servers []model.Server
	if err := h.db.Find(&servers).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to fetch servers", err))
		return
	}

	resp := StatsResponse{TotalServers: len(servers)}

	var sumCPU, sumMemory, sumDisk float64
	for _, s := range servers {
		switch s.Status {
		case model.ServerStatusOnline:
			resp.StatusBreakdown.Online++
		case model.ServerStatusOffline:
			resp.StatusBreakdown.Offline++
		case model.ServerStatusMaintenance:
			resp.StatusBreakdown.Maintenance++
		case model.ServerStatusError:
			resp.StatusBreakdown.Error++
		}
		sumCPU += s.CPUUsage
		sumMemory += s.MemoryUsage
		sumDisk += s.DiskUsage
	}

	// Averages stay zero on an empty fleet.
	if len(servers) > 0 {
		n := float64(len(servers))
		resp.AverageUsage = AverageUsage{
			CPU:    round2(sumCPU / n),
			Memory: round2(sumMemory / n),
			Disk:   round2(sumDisk / n),
		}
	}

	c.JSON(http.StatusOK, resp)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
