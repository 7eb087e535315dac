package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/vigiamar/operaciones-api/internal/constants"
	"github.com/vigiamar/operaciones-api/internal/database"
	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/repository"
	"github.com/vigiamar/operaciones-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db *gorm.DB

	assemblyService      *services.AssemblyService
	participationService *services.ParticipationService
	ledgerService        *services.LedgerService

	assemblyHandler      *AssemblyHandler
	participationHandler *ParticipationHandler
	materialHandler      *MaterialHandler
	movementHandler      *MovementHandler
	equipmentHandler     *EquipmentHandler
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Site{},
		&models.Equipment{},
		&models.Assembly{},
		&models.Participation{},
		&models.Material{},
		&models.Movement{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	assemblyRepo := repository.NewAssemblyRepository(db)
	participationRepo := repository.NewParticipationRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	siteRepo := repository.NewSiteRepository(db)

	assemblyService := services.NewAssemblyService(assemblyRepo, materialRepo, equipmentRepo, movementRepo)
	participationService := services.NewParticipationService(participationRepo)
	ledgerService := services.NewLedgerService(assemblyRepo, materialRepo, equipmentRepo, movementRepo, siteRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:                   db,
		assemblyService:      assemblyService,
		participationService: participationService,
		ledgerService:        ledgerService,
		assemblyHandler:      NewAssemblyHandler(assemblyService),
		participationHandler: NewParticipationHandler(participationService),
		materialHandler:      NewMaterialHandler(ledgerService),
		movementHandler:      NewMovementHandler(ledgerService),
		equipmentHandler:     NewEquipmentHandler(ledgerService),
	}
}

// router builds a gin engine whose requests run as the given user.
func (env testEnv) router(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})

	r.GET("/api/armados", env.assemblyHandler.ListAssemblies)
	r.POST("/api/armados", env.assemblyHandler.CreateAssembly)
	r.GET("/api/armados/movimientos", env.movementHandler.ListRecentMovements)
	r.PUT("/api/armados/:id", env.assemblyHandler.UpdateAssembly)
	r.DELETE("/api/armados/:id", env.assemblyHandler.DeleteAssembly)
	r.GET("/api/armados/:id/materiales", env.materialHandler.ListMaterials)
	r.PUT("/api/armados/:id/materiales", env.materialHandler.ReplaceMaterials)
	r.GET("/api/armados/:id/movimientos", env.movementHandler.ListMovements)
	r.GET("/api/armados/:id/participaciones", env.participationHandler.ListParticipations)
	r.POST("/api/armados/:id/participaciones", env.participationHandler.Transfer)
	r.PUT("/api/participaciones/:id", env.participationHandler.UpdateParticipation)
	r.DELETE("/api/participaciones/:id", env.participationHandler.DeleteParticipation)
	r.GET("/api/equipos", env.equipmentHandler.ListEquipment)
	r.POST("/api/equipos", env.equipmentHandler.CreateEquipment)
	r.PUT("/api/equipos/:id", env.equipmentHandler.UpdateEquipment)
	r.DELETE("/api/equipos/:id", env.equipmentHandler.DeleteEquipment)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@vigiamar.test", name),
		PasswordHash: "x",
		Rol:          "tecnico",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedSite(t *testing.T, db *gorm.DB, name string) *models.Site {
	t.Helper()

	client := &models.Client{Nombre: name + " SA"}
	require.NoError(t, db.Create(client).Error)

	site := &models.Site{
		Nombre:    name,
		Ubicacion: "Montevideo",
		ClienteID: client.ID,
		Estado:    "activo",
	}
	require.NoError(t, db.Create(site).Error)
	return site
}

func seedAssembly(t *testing.T, env testEnv, centroID, tecnicoID uint64) *models.Assembly {
	t.Helper()

	assembly, err := env.assemblyService.CreateAssembly(services.CreateAssemblyInput{
		CentroID:  centroID,
		TecnicoID: tecnicoID,
	})
	require.NoError(t, err)
	return assembly
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
