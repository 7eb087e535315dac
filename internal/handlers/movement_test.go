package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vigiamar/operaciones-api/internal/dto"
	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/services"
)

// seedMovement inserts a ledger row with an explicit timestamp so ordering
// assertions do not depend on insert speed.
func seedMovement(t *testing.T, env testEnv, armadoID uint64, nombre string, cantidad float64, fecha time.Time) {
	t.Helper()

	require.NoError(t, env.db.Create(&models.Movement{
		ArmadoID:   armadoID,
		Tipo:       models.MovementMaterial,
		ItemID:     1,
		NombreItem: nombre,
		Caja:       "Caja 1",
		Cantidad:   cantidad,
		Fecha:      fecha,
	}).Error)
}

func TestMovementHandler_ListMovements(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")
	tecnico := seedUser(t, env.db, "maria")
	site := seedSite(t, env.db, "Puerto Norte")

	assembly := seedAssembly(t, env, site.ID, tecnico.ID)
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	seedMovement(t, env, assembly.ID, "Cable UTP", 2, base)
	seedMovement(t, env, assembly.ID, "Fuente 12V", 1, base.Add(time.Hour))

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/armados/%d/movimientos", assembly.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := decodeJSON[[]dto.MovementDTO](t, w)
	require.Len(t, items, 2)
	// Newest first.
	require.Equal(t, "Fuente 12V", items[0].NombreItem)
	require.Equal(t, "Cable UTP", items[1].NombreItem)
}

func TestMovementHandler_ListRecentMovements_Pagination(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")
	tecnico := seedUser(t, env.db, "maria")
	site := seedSite(t, env.db, "Puerto Norte")

	assembly := seedAssembly(t, env, site.ID, tecnico.ID)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedMovement(t, env, assembly.ID, fmt.Sprintf("item-%02d", i), 1, base.Add(time.Duration(i)*time.Minute))
	}
	// Zero-quantity rows carry no real change and never show in the feed.
	seedMovement(t, env, assembly.ID, "vacio", 0, base.Add(48*time.Hour))

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodGet, "/api/armados/movimientos?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	feed := decodeJSON[dto.MovementFeedResponse](t, w)
	require.Equal(t, int64(25), feed.Total)
	require.Equal(t, 2, feed.Page)
	require.Equal(t, 10, feed.Limit)
	require.Len(t, feed.Items, 10)

	// Newest first: page 2 holds items 14 down to 05.
	require.Equal(t, "item-14", feed.Items[0].NombreItem)
	require.Equal(t, "item-05", feed.Items[9].NombreItem)

	require.Equal(t, assembly.ID, feed.Items[0].ArmadoID)
	require.NotNil(t, feed.Items[0].CentroNombre)
	require.Equal(t, site.Nombre, *feed.Items[0].CentroNombre)
}

func TestMovementHandler_ListRecentMovements_ToleratesDeletedAssembly(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")
	tecnico := seedUser(t, env.db, "maria")
	site := seedSite(t, env.db, "Puerto Norte")

	assembly := seedAssembly(t, env, site.ID, tecnico.ID)
	_, err := env.ledgerService.ReplaceMaterials(assembly.ID, []services.MaterialInput{
		{Nombre: "Cable UTP", Cantidad: 2},
	})
	require.NoError(t, err)

	require.NoError(t, env.assemblyService.DeleteAssembly(assembly.ID))

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodGet, "/api/armados/movimientos", nil)
	require.Equal(t, http.StatusOK, w.Code)

	feed := decodeJSON[dto.MovementFeedResponse](t, w)
	require.Equal(t, int64(1), feed.Total)
	require.Len(t, feed.Items, 1)
	require.Equal(t, assembly.ID, feed.Items[0].ArmadoID)
	// The owning assembly is gone; the entry stays, without site context.
	require.Nil(t, feed.Items[0].CentroNombre)
}

func TestMovementHandler_ListRecentMovements_DefaultParams(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodGet, "/api/armados/movimientos?page=0&limit=9999", nil)
	require.Equal(t, http.StatusOK, w.Code)

	feed := decodeJSON[dto.MovementFeedResponse](t, w)
	require.Equal(t, 1, feed.Page)
	require.Equal(t, 20, feed.Limit)
	require.Empty(t, feed.Items)
}
