package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vigiamar/operaciones-api/internal/dto"
	apierrors "github.com/vigiamar/operaciones-api/internal/errors"
	"github.com/vigiamar/operaciones-api/internal/services"
)

// MaterialHandler coordinates the assembly material ledger HTTP handlers.
type MaterialHandler struct {
	ledgerService *services.LedgerService
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(ledgerService *services.LedgerService) *MaterialHandler {
	return &MaterialHandler{
		ledgerService: ledgerService,
	}
}

// ListMaterials returns the assembly's current material set.
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	armadoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assembly ID")
		return
	}

	materials, err := h.ledgerService.ListMaterials(armadoID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch materials")
		return
	}

	out := make([]dto.MaterialDTO, 0, len(materials))
	for _, m := range materials {
		out = append(out, dto.ToMaterialDTO(m))
	}

	c.JSON(http.StatusOK, out)
}

// ReplaceMaterials replaces the assembly's material set wholesale. The body
// is the complete desired list, not a diff.
func (h *MaterialHandler) ReplaceMaterials(c *gin.Context) {
	armadoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assembly ID")
		return
	}

	type MaterialItem struct {
		Nombre        string   `json:"nombre"`
		Cantidad      *float64 `json:"cantidad"`
		Caja          string   `json:"caja"`
		CajaTecnicoID *uint64  `json:"caja_tecnico_id"`
	}

	var req []MaterialItem
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Request body expects a list of materials")
		return
	}

	items := make([]services.MaterialInput, 0, len(req))
	for _, item := range req {
		var cantidad float64
		if item.Cantidad != nil {
			cantidad = *item.Cantidad
		}
		items = append(items, services.MaterialInput{
			Nombre:        item.Nombre,
			Cantidad:      cantidad,
			Caja:          item.Caja,
			CajaTecnicoID: item.CajaTecnicoID,
		})
	}

	count, err := h.ledgerService.ReplaceMaterials(armadoID, items)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Materials updated successfully",
		"count":   count,
	})
}

func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAssemblyNotFound),
		errors.Is(err, services.ErrEquipmentNotFound),
		errors.Is(err, services.ErrSiteNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
