package repository

import (
	"time"

	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/utils"
)

// AssemblyRepository defines the interface for assembly data access
type AssemblyRepository interface {
	// CreateWithInitialParticipation inserts the assembly and seeds its first
	// participation within a single transaction
	CreateWithInitialParticipation(assembly *models.Assembly, participation *models.Participation) error

	// FindByID finds an assembly by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Assembly, error)

	// List retrieves assemblies with filtering, ordered by fecha_asignacion descending,
	// with site, technician and ordered participation history preloaded
	List(filter AssemblyFilter) ([]models.Assembly, error)

	// Update updates an assembly
	Update(assembly *models.Assembly) error

	// Delete removes the assembly and cascades to its participations and
	// materials. Movements are immutable audit records and are kept.
	Delete(id uint64) error
}

// AssemblyFilter holds filtering options for listing assemblies
type AssemblyFilter struct {
	Estado    *string
	TecnicoID *uint64
}

// ParticipationRepository defines the interface for participation data access
type ParticipationRepository interface {
	// ListByAssembly lists participations ordered by (fecha_inicio, id) ascending
	ListByAssembly(armadoID uint64) ([]models.Participation, error)

	// FindByID finds a participation by ID
	FindByID(id uint64) (*models.Participation, error)

	// Transfer closes the active participation (if any), opens a new one for
	// the given technician and updates the assembly's cached technician, all
	// within a single transaction
	Transfer(armadoID, tecnicoID uint64, nota string) (*models.Participation, error)

	// Update updates a participation (direct overwrite, no re-derivation)
	Update(participation *models.Participation) error

	// Delete removes a participation and recomputes the assembly's cached
	// technician from the remaining history
	Delete(id uint64) error
}

// MaterialRepository defines the interface for material data access
type MaterialRepository interface {
	// ListByAssembly lists materials ordered by ID ascending
	ListByAssembly(armadoID uint64) ([]models.Material, error)

	// ReplaceForAssembly deletes the existing materials and inserts the given
	// rows in one transaction, appending one movement per inserted row and
	// touching the assembly's fecha_inicio
	ReplaceForAssembly(armadoID uint64, rows []models.Material) error

	// BoxLabels returns the caja values of the assembly's materials
	BoxLabels(armadoID uint64) ([]string, error)
}

// EquipmentRepository defines the interface for equipment data access
type EquipmentRepository interface {
	// List retrieves equipment, optionally filtered by site
	List(centroID *uint64) ([]models.Equipment, error)

	// FindByID finds an equipment row by ID
	FindByID(id uint64) (*models.Equipment, error)

	// Create inserts the equipment; when armadoID is set the box change is
	// recorded in that assembly's movement ledger
	Create(equipment *models.Equipment, armadoID *uint64) error

	// Update saves the equipment; when armadoID is set the box change is
	// recorded in that assembly's movement ledger
	Update(equipment *models.Equipment, armadoID *uint64) error

	// Delete removes an equipment row
	Delete(id uint64) error

	// BoxLabels returns the caja values of the site's equipment
	BoxLabels(centroID uint64) ([]string, error)
}

// MovementRepository defines the interface for movement ledger reads.
// There is deliberately no delete: movements are append-only audit records.
type MovementRepository interface {
	// ListByAssembly lists an assembly's movements, newest first
	ListByAssembly(armadoID uint64) ([]models.Movement, error)

	// ListRecent lists movements across all assemblies with cantidad != 0,
	// newest first, paginated; returns the filtered total
	ListRecent(params utils.PaginationParams) ([]models.Movement, int64, error)

	// FirstMovementTime returns the timestamp of the assembly's earliest
	// movement, or nil when it has none
	FirstMovementTime(armadoID uint64) (*time.Time, error)
}

// SiteRepository defines the interface for site lookups
type SiteRepository interface {
	// List retrieves all sites with their client preloaded
	List() ([]models.Site, error)

	// FindByID finds a site by ID
	FindByID(id uint64) (*models.Site, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}
