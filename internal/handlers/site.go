package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vigiamar/operaciones-api/internal/database"
	"github.com/vigiamar/operaciones-api/internal/dto"
	apierrors "github.com/vigiamar/operaciones-api/internal/errors"
	"github.com/vigiamar/operaciones-api/internal/models"
)

// SiteHandler coordinates monitored site lookup handlers.
type SiteHandler struct{}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler() *SiteHandler {
	return &SiteHandler{}
}

// ListSites returns all sites with their client. Can filter by estado.
func (h *SiteHandler) ListSites(c *gin.Context) {
	query := database.GetDB().Preload("Cliente").Order("nombre ASC")

	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	var sites []models.Site
	if err := query.Find(&sites).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch sites")
		return
	}

	out := make([]dto.SiteDTO, 0, len(sites))
	for _, s := range sites {
		out = append(out, dto.ToSiteDTO(s))
	}

	c.JSON(http.StatusOK, out)
}

// GetSite returns a specific site by ID.
func (h *SiteHandler) GetSite(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid site ID")
		return
	}

	var site models.Site
	if err := database.GetDB().Preload("Cliente").First(&site, id).Error; err != nil {
		apierrors.NotFound(c, "Site not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToSiteDTO(site))
}
