package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vigiamar/operaciones-api/internal/dto"
	apierrors "github.com/vigiamar/operaciones-api/internal/errors"
	"github.com/vigiamar/operaciones-api/internal/services"
	"github.com/vigiamar/operaciones-api/internal/utils"
)

// MovementHandler coordinates the box movement history HTTP handlers.
type MovementHandler struct {
	ledgerService *services.LedgerService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(ledgerService *services.LedgerService) *MovementHandler {
	return &MovementHandler{
		ledgerService: ledgerService,
	}
}

// ListMovements returns the assembly's complete ledger, newest first.
func (h *MovementHandler) ListMovements(c *gin.Context) {
	armadoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assembly ID")
		return
	}

	movements, err := h.ledgerService.ListMovements(armadoID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch movements")
		return
	}

	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementDTO(m))
	}

	c.JSON(http.StatusOK, out)
}

// ListRecentMovements returns the paginated global feed across all
// assemblies. Zero-quantity entries are excluded.
func (h *MovementHandler) ListRecentMovements(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	movements, total, err := h.ledgerService.ListRecentMovements(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch movements")
		return
	}

	items := make([]dto.MovementFeedItemDTO, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.ToMovementFeedItemDTO(m))
	}

	c.JSON(http.StatusOK, dto.MovementFeedResponse{
		Items: items,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	})
}
