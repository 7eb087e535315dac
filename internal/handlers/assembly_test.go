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
	"github.com/vigiamar/operaciones-api/internal/utils"
)

func TestAssemblyHandler_CreateAssembly(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")
	tecnico := seedUser(t, env.db, "maria")
	site := seedSite(t, env.db, "Puerto Norte")

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodPost, "/api/armados", map[string]any{
		"centro_id":   site.ID,
		"tecnico_id":  tecnico.ID,
		"observacion": "equipo completo para instalación",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	response := decodeJSON[map[string]any](t, w)
	require.NotZero(t, response["id_armado"])

	var assembly models.Assembly
	require.NoError(t, env.db.First(&assembly, uint64(response["id_armado"].(float64))).Error)
	require.Equal(t, models.AssemblyPending, assembly.Estado)
	require.Equal(t, site.ID, assembly.CentroID)
	require.NotNil(t, assembly.TecnicoID)
	require.Equal(t, tecnico.ID, *assembly.TecnicoID)
	require.NotNil(t, assembly.CreadoPor)
	require.Equal(t, admin.ID, *assembly.CreadoPor)
	require.Nil(t, assembly.FechaInicio)

	// Creation seeds the initial participation for the same technician,
	// dated at the assignment date and still open.
	var participations []models.Participation
	require.NoError(t, env.db.Where("armado_id = ?", assembly.ID).Find(&participations).Error)
	require.Len(t, participations, 1)
	require.Equal(t, tecnico.ID, participations[0].TecnicoID)
	require.Equal(t,
		assembly.FechaAsignacion.Format(utils.DateLayout),
		participations[0].FechaInicio.Format(utils.DateLayout))
	require.Nil(t, participations[0].FechaFin)
}

func TestAssemblyHandler_CreateAssembly_MissingTechnician(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")
	site := seedSite(t, env.db, "Puerto Norte")

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodPost, "/api/armados", map[string]any{
		"centro_id": site.ID,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssemblyHandler_ListAssemblies_Filters(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")
	tecnico := seedUser(t, env.db, "maria")
	otro := seedUser(t, env.db, "jorge")
	site := seedSite(t, env.db, "Puerto Norte")

	pending := seedAssembly(t, env, site.ID, tecnico.ID)
	closed := seedAssembly(t, env, site.ID, otro.ID)
	require.NoError(t, env.db.Model(closed).Update("estado", models.AssemblyClosed).Error)

	r := env.router(admin.ID)

	w := doJSON(t, r, http.MethodGet, "/api/armados?estado=pendiente", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeJSON[[]dto.AssemblyListItemDTO](t, w)
	require.Len(t, items, 1)
	require.Equal(t, pending.ID, items[0].ID)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/armados?tecnico_id=%d", otro.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	items = decodeJSON[[]dto.AssemblyListItemDTO](t, w)
	require.Len(t, items, 1)
	require.Equal(t, closed.ID, items[0].ID)
}

func TestAssemblyHandler_ListAssemblies_DerivedFields(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")
	tecnico := seedUser(t, env.db, "maria")
	relevo := seedUser(t, env.db, "jorge")
	site := seedSite(t, env.db, "Puerto Norte")

	assembly := seedAssembly(t, env, site.ID, tecnico.ID)

	_, err := env.participationService.Transfer(assembly.ID, relevo.ID, "relevo de turno")
	require.NoError(t, err)

	// Equipment boxes at the site: "Caja 2" plus an unlabeled one that
	// counts as the default box.
	require.NoError(t, env.db.Create(&models.Equipment{
		CentroID: site.ID, Nombre: "Cámara muelle", Caja: "Caja 2",
	}).Error)
	require.NoError(t, env.db.Create(&models.Equipment{
		CentroID: site.ID, Nombre: "Router 4G", Caja: "",
	}).Error)

	// Material boxes: "Caja 1" overlaps the default, "Caja 3" is new.
	_, err = env.ledgerService.ReplaceMaterials(assembly.ID, []services.MaterialInput{
		{Nombre: "Cable UTP", Cantidad: 2, Caja: "Caja 1"},
		{Nombre: "Fuente 12V", Cantidad: 1, Caja: "Caja 3"},
	})
	require.NoError(t, err)

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodGet, "/api/armados", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := decodeJSON[[]dto.AssemblyListItemDTO](t, w)
	require.Len(t, items, 1)
	item := items[0]

	require.Equal(t, []string{tecnico.Name, relevo.Name}, item.TecnicosHistorial)
	require.Equal(t, 3, item.TotalCajas)
	require.NotNil(t, item.Centro.Nombre)
	require.Equal(t, site.Nombre, *item.Centro.Nombre)
	require.NotNil(t, item.Tecnico.Nombre)
	require.Equal(t, relevo.Name, *item.Tecnico.Nombre)
	// Ledger activity stamped the real start date.
	require.Equal(t, utils.Today().Format(utils.DateLayout), item.FechaInicio)
}

func TestAssemblyHandler_ListAssemblies_StartDateFallsBackToFirstMovement(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")
	tecnico := seedUser(t, env.db, "maria")
	site := seedSite(t, env.db, "Puerto Norte")

	assembly := seedAssembly(t, env, site.ID, tecnico.ID)

	// A movement recorded out-of-band, with the assembly's own start date
	// still unset.
	fecha := time.Date(2026, 8, 3, 15, 30, 0, 0, time.UTC)
	require.NoError(t, env.db.Create(&models.Movement{
		ArmadoID:   assembly.ID,
		Tipo:       models.MovementMaterial,
		ItemID:     1,
		NombreItem: "Cable UTP",
		Caja:       "Caja 1",
		Cantidad:   2,
		Fecha:      fecha,
	}).Error)

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodGet, "/api/armados", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := decodeJSON[[]dto.AssemblyListItemDTO](t, w)
	require.Len(t, items, 1)
	require.Equal(t, "2026-08-03", items[0].FechaInicio)
}

func TestAssemblyHandler_UpdateAssembly_PartialFields(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")
	tecnico := seedUser(t, env.db, "maria")
	site := seedSite(t, env.db, "Puerto Norte")

	assembly := seedAssembly(t, env, site.ID, tecnico.ID)

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/armados/%d", assembly.ID), map[string]any{
		"estado":       "cerrado",
		"fecha_cierre": "2026-08-20",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Assembly
	require.NoError(t, env.db.First(&updated, assembly.ID).Error)
	require.Equal(t, models.AssemblyClosed, updated.Estado)
	require.NotNil(t, updated.FechaCierre)
	require.Equal(t, "2026-08-20", updated.FechaCierre.Format(utils.DateLayout))
	// Fields the request did not mention stay untouched.
	require.Equal(t, site.ID, updated.CentroID)

	// Sending null clears the date; omitting it would not.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/armados/%d", assembly.ID), map[string]any{
		"fecha_cierre": nil,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Read into a fresh struct: GORM leaves a stale pointer field untouched
	// when scanning a NULL column into a reused destination.
	var cleared models.Assembly
	require.NoError(t, env.db.First(&cleared, assembly.ID).Error)
	require.Nil(t, cleared.FechaCierre)
	require.Equal(t, models.AssemblyClosed, cleared.Estado)
}

func TestAssemblyHandler_UpdateAssembly_NotFound(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodPut, "/api/armados/9999", map[string]any{
		"observacion": "no existe",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssemblyHandler_DeleteAssembly_KeepsMovements(t *testing.T) {
	env := setupTestEnv(t)
	admin := seedUser(t, env.db, "admin")
	tecnico := seedUser(t, env.db, "maria")
	site := seedSite(t, env.db, "Puerto Norte")

	assembly := seedAssembly(t, env, site.ID, tecnico.ID)
	_, err := env.ledgerService.ReplaceMaterials(assembly.ID, []services.MaterialInput{
		{Nombre: "Cable UTP", Cantidad: 2},
	})
	require.NoError(t, err)

	r := env.router(admin.ID)
	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/armados/%d", assembly.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.db.Model(&models.Assembly{}).Where("id_armado = ?", assembly.ID).Count(&count)
	require.Zero(t, count)
	env.db.Model(&models.Participation{}).Where("armado_id = ?", assembly.ID).Count(&count)
	require.Zero(t, count)
	env.db.Model(&models.Material{}).Where("armado_id = ?", assembly.ID).Count(&count)
	require.Zero(t, count)

	// The ledger survives as the audit trail.
	env.db.Model(&models.Movement{}).Where("armado_id = ?", assembly.ID).Count(&count)
	require.Equal(t, int64(1), count)
}
