package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vigiamar/operaciones-api/internal/dto"
	apierrors "github.com/vigiamar/operaciones-api/internal/errors"
	"github.com/vigiamar/operaciones-api/internal/middleware"
	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/repository"
	"github.com/vigiamar/operaciones-api/internal/services"
	"github.com/vigiamar/operaciones-api/internal/utils"
)

// AssemblyHandler coordinates kitting job HTTP handlers.
type AssemblyHandler struct {
	assemblyService *services.AssemblyService
}

// NewAssemblyHandler creates a new AssemblyHandler.
func NewAssemblyHandler(assemblyService *services.AssemblyService) *AssemblyHandler {
	return &AssemblyHandler{
		assemblyService: assemblyService,
	}
}

// ListAssemblies returns all assemblies with their derived listing fields.
// Can filter by estado and tecnico_id.
func (h *AssemblyHandler) ListAssemblies(c *gin.Context) {
	var filter repository.AssemblyFilter

	if estado := c.Query("estado"); estado != "" {
		filter.Estado = &estado
	}
	if tecnicoIDStr := c.Query("tecnico_id"); tecnicoIDStr != "" {
		tecnicoID, err := strconv.ParseUint(tecnicoIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid tecnico_id")
			return
		}
		filter.TecnicoID = &tecnicoID
	}

	items, err := h.assemblyService.ListAssemblies(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch assemblies")
		return
	}

	out := make([]dto.AssemblyListItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ToAssemblyListItemDTO(item))
	}

	c.JSON(http.StatusOK, out)
}

// CreateAssembly creates an assembly and its initial participation.
func (h *AssemblyHandler) CreateAssembly(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateAssemblyRequest struct {
		CentroID        uint64 `json:"centro_id" binding:"required"`
		TecnicoID       uint64 `json:"tecnico_id" binding:"required"`
		Estado          string `json:"estado"`
		FechaAsignacion string `json:"fecha_asignacion"`
		FechaInicio     string `json:"fecha_inicio"`
		FechaCierre     string `json:"fecha_cierre"`
		Observacion     string `json:"observacion"`
	}

	var req CreateAssemblyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assembly, err := h.assemblyService.CreateAssembly(services.CreateAssemblyInput{
		CentroID:        req.CentroID,
		TecnicoID:       req.TecnicoID,
		Estado:          models.AssemblyStatus(req.Estado),
		FechaAsignacion: utils.ParseDate(req.FechaAsignacion),
		FechaInicio:     utils.ParseDate(req.FechaInicio),
		FechaCierre:     utils.ParseDate(req.FechaCierre),
		Observacion:     req.Observacion,
		CreadoPor:       &userID,
	})
	if err != nil {
		respondAssemblyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Assembly created successfully",
		"id_armado": assembly.ID,
	})
}

// UpdateAssembly applies a partial update to an assembly.
func (h *AssemblyHandler) UpdateAssembly(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assembly ID")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateAssemblyInput

	if centroID, ok := numberField(rawReq, "centro_id"); ok {
		input.CentroID = &centroID
	}
	if tecnicoID, ok := numberField(rawReq, "tecnico_id"); ok {
		input.TecnicoID = &tecnicoID
	}
	if estado, ok := rawReq["estado"].(string); ok {
		status := models.AssemblyStatus(estado)
		input.Estado = &status
	}
	if fecha, ok := rawReq["fecha_asignacion"].(string); ok {
		input.FechaAsignacion = utils.ParseDate(fecha)
	}
	if raw, ok := rawReq["fecha_inicio"]; ok {
		input.FechaInicio = optionalDateField(raw)
	}
	if raw, ok := rawReq["fecha_cierre"]; ok {
		input.FechaCierre = optionalDateField(raw)
	}
	if observacion, ok := rawReq["observacion"].(string); ok {
		input.Observacion = &observacion
	}

	assembly, err := h.assemblyService.UpdateAssembly(id, input)
	if err != nil {
		respondAssemblyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Assembly updated successfully",
		"id_armado": assembly.ID,
	})
}

// DeleteAssembly removes an assembly with its participations and materials.
// Ledger entries stay behind as audit records.
func (h *AssemblyHandler) DeleteAssembly(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assembly ID")
		return
	}

	if err := h.assemblyService.DeleteAssembly(id); err != nil {
		respondAssemblyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assembly deleted successfully",
	})
}

// numberField reads a JSON number field as uint64. Decoded numbers arrive as
// float64.
func numberField(raw map[string]any, key string) (uint64, bool) {
	value, ok := raw[key]
	if !ok {
		return 0, false
	}
	number, ok := value.(float64)
	if !ok || number < 0 {
		return 0, false
	}
	return uint64(number), true
}

// optionalDateField maps a present JSON value to an OptionalDate. Null and
// unparsable strings both clear the date.
func optionalDateField(raw any) services.OptionalDate {
	out := services.OptionalDate{Set: true}
	if str, ok := raw.(string); ok {
		out.Value = utils.ParseDate(str)
	}
	return out
}

func respondAssemblyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAssemblyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSiteRequired),
		errors.Is(err, services.ErrTechnicianRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
