package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vigiamar/operaciones-api/internal/dto"
	apierrors "github.com/vigiamar/operaciones-api/internal/errors"
	"github.com/vigiamar/operaciones-api/internal/services"
)

// EquipmentHandler coordinates site equipment HTTP handlers.
type EquipmentHandler struct {
	ledgerService *services.LedgerService
}

// NewEquipmentHandler creates a new EquipmentHandler.
func NewEquipmentHandler(ledgerService *services.LedgerService) *EquipmentHandler {
	return &EquipmentHandler{
		ledgerService: ledgerService,
	}
}

// ListEquipment returns equipment rows. Can filter by centro_id.
func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
	var centroID *uint64
	if centroIDStr := c.Query("centro_id"); centroIDStr != "" {
		id, err := strconv.ParseUint(centroIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid centro_id")
			return
		}
		centroID = &id
	}

	equipment, err := h.ledgerService.ListEquipment(centroID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch equipment")
		return
	}

	out := make([]dto.EquipmentDTO, 0, len(equipment))
	for _, e := range equipment {
		out = append(out, dto.ToEquipmentDTO(e))
	}

	c.JSON(http.StatusOK, out)
}

// CreateEquipment adds a device to a site's inventory. When armado_id is
// present the insert is also recorded in that assembly's ledger.
func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	type CreateEquipmentRequest struct {
		CentroID      uint64  `json:"centro_id" binding:"required"`
		Nombre        string  `json:"nombre" binding:"required"`
		IP            string  `json:"ip"`
		Observacion   string  `json:"observacion"`
		Codigo        string  `json:"codigo"`
		NumeroSerie   string  `json:"numero_serie"`
		Estado        string  `json:"estado"`
		Caja          string  `json:"caja"`
		CajaTecnicoID *uint64 `json:"caja_tecnico_id"`
		ArmadoID      *uint64 `json:"armado_id"`
	}

	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	equipment, err := h.ledgerService.CreateEquipment(services.CreateEquipmentInput{
		CentroID:      req.CentroID,
		Nombre:        req.Nombre,
		IP:            req.IP,
		Observacion:   req.Observacion,
		Codigo:        req.Codigo,
		NumeroSerie:   req.NumeroSerie,
		Estado:        req.Estado,
		Caja:          req.Caja,
		CajaTecnicoID: req.CajaTecnicoID,
		ArmadoID:      req.ArmadoID,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Equipment created successfully",
		"id_equipo": equipment.ID,
	})
}

// UpdateEquipment applies a partial update to an equipment row.
func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid equipment ID")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateEquipmentInput

	if ip, ok := rawReq["ip"].(string); ok {
		input.IP = &ip
	}
	if observacion, ok := rawReq["observacion"].(string); ok {
		input.Observacion = &observacion
	}
	if codigo, ok := rawReq["codigo"].(string); ok {
		input.Codigo = &codigo
	}
	if numeroSerie, ok := rawReq["numero_serie"].(string); ok {
		input.NumeroSerie = &numeroSerie
	}
	if estado, ok := rawReq["estado"].(string); ok {
		input.Estado = &estado
	}
	if caja, ok := rawReq["caja"].(string); ok {
		input.Caja = &caja
	}
	if cajaTecnicoID, ok := numberField(rawReq, "caja_tecnico_id"); ok {
		input.CajaTecnicoID = &cajaTecnicoID
	}
	if armadoID, ok := numberField(rawReq, "armado_id"); ok {
		input.ArmadoID = &armadoID
	}

	equipment, err := h.ledgerService.UpdateEquipment(id, input)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEquipmentDTO(*equipment))
}

// DeleteEquipment removes an equipment row.
func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid equipment ID")
		return
	}

	if err := h.ledgerService.DeleteEquipment(id); err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Equipment deleted successfully",
	})
}
