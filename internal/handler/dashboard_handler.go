package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/accident-dashboard/internal/config"
	"github.com/jengzang/accident-dashboard/internal/service"
	"github.com/jengzang/accident-dashboard/pkg/response"
)

// DashboardHandler handles HTTP requests for the accident dashboard
type DashboardHandler struct {
	service *service.DashboardService
	cfg     *config.Config
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *service.DashboardService, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{service: service, cfg: cfg}
}

// Index handles GET /
func (h *DashboardHandler) Index(c *gin.Context) {
	dash := h.service.Dashboard()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":  h.cfg.Map.Heading,
		"Total":  dash.Table.Len(),
		"Deaths": dash.Deaths.Total(),
	})
}

// Dashboard handles GET /dash/
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	dash := h.service.Dashboard()
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Heading":       h.cfg.Map.Heading,
		"ChartsHeading": h.cfg.Charts.Heading,
		"EmptyLabel":    h.cfg.Charts.EmptyLabel,
		"Map":           dash.Map,
		"Legend":        dash.Legend,
		"Charts":        dash.Charts,
	})
}

// Records handles GET /dash/api/records
func (h *DashboardHandler) Records(c *gin.Context) {
	c.Data(http.StatusOK, "application/geo+json", h.service.FeatureCollection())
}

// Counts handles GET /dash/api/counts
func (h *DashboardHandler) Counts(c *gin.Context) {
	response.Success(c, h.service.Counts())
}

// Chart handles GET /dash/charts/:name
func (h *DashboardHandler) Chart(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("name"), ".svg")

	svg, err := h.service.Chart(name)
	if err != nil {
		if errors.Is(err, service.ErrUnknownChart) {
			response.NotFound(c, "Chart not found", err)
			return
		}
		response.InternalError(c, "Failed to get chart", err)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/svg+xml", svg)
}
