package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vigiamar/operaciones-api/internal/dto"
	apierrors "github.com/vigiamar/operaciones-api/internal/errors"
	"github.com/vigiamar/operaciones-api/internal/services"
	"github.com/vigiamar/operaciones-api/internal/utils"
)

// ParticipationHandler coordinates technician handoff HTTP handlers.
type ParticipationHandler struct {
	participationService *services.ParticipationService
}

// NewParticipationHandler creates a new ParticipationHandler.
func NewParticipationHandler(participationService *services.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{
		participationService: participationService,
	}
}

// ListParticipations returns the assembly's responsibility history.
func (h *ParticipationHandler) ListParticipations(c *gin.Context) {
	armadoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assembly ID")
		return
	}

	participations, err := h.participationService.ListParticipations(armadoID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch participations")
		return
	}

	out := make([]dto.ParticipationDTO, 0, len(participations))
	for _, p := range participations {
		out = append(out, dto.ToParticipationDTO(p))
	}

	c.JSON(http.StatusOK, out)
}

// Transfer hands the assembly over to another technician.
func (h *ParticipationHandler) Transfer(c *gin.Context) {
	armadoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assembly ID")
		return
	}

	type TransferRequest struct {
		TecnicoID uint64 `json:"tecnico_id" binding:"required"`
		Nota      string `json:"nota"`
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	participation, err := h.participationService.Transfer(armadoID, req.TecnicoID, req.Nota)
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Assembly transferred successfully",
		"id_participacion": participation.ID,
	})
}

// UpdateParticipation edits a participation's dates or note directly.
func (h *ParticipationHandler) UpdateParticipation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid participation ID")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateParticipationInput

	if fecha, ok := rawReq["fecha_inicio"].(string); ok {
		input.FechaInicio = utils.ParseDate(fecha)
	}
	if raw, ok := rawReq["fecha_fin"]; ok {
		input.FechaFin = optionalDateField(raw)
	}
	if nota, ok := rawReq["nota"].(string); ok {
		input.Nota = &nota
	}

	participation, err := h.participationService.UpdateParticipation(id, input)
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipationDTO(*participation))
}

// DeleteParticipation removes a participation from the history.
func (h *ParticipationHandler) DeleteParticipation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid participation ID")
		return
	}

	if err := h.participationService.DeleteParticipation(id); err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Participation deleted successfully",
	})
}

func respondParticipationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrParticipationNotFound),
		errors.Is(err, services.ErrAssemblyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTechnicianRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
