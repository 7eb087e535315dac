package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vigiamar/operaciones-api/internal/constants"
	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/repository"
	"github.com/vigiamar/operaciones-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrSiteNotFound      = errors.New("site not found")
)

// LedgerService handles the material/equipment box ledger and the movement
// history built from it
type LedgerService struct {
	assemblyRepo  repository.AssemblyRepository
	materialRepo  repository.MaterialRepository
	equipmentRepo repository.EquipmentRepository
	movementRepo  repository.MovementRepository
	siteRepo      repository.SiteRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	assemblyRepo repository.AssemblyRepository,
	materialRepo repository.MaterialRepository,
	equipmentRepo repository.EquipmentRepository,
	movementRepo repository.MovementRepository,
	siteRepo repository.SiteRepository,
) *LedgerService {
	return &LedgerService{
		assemblyRepo:  assemblyRepo,
		materialRepo:  materialRepo,
		equipmentRepo: equipmentRepo,
		movementRepo:  movementRepo,
		siteRepo:      siteRepo,
	}
}

// MaterialInput represents one material row in a replace request
type MaterialInput struct {
	Nombre        string
	Cantidad      float64
	Caja          string
	CajaTecnicoID *uint64
}

// CreateEquipmentInput represents input for creating an equipment row
type CreateEquipmentInput struct {
	CentroID      uint64
	Nombre        string
	IP            string
	Observacion   string
	Codigo        string
	NumeroSerie   string
	Estado        string
	Caja          string
	CajaTecnicoID *uint64
	ArmadoID      *uint64
}

// UpdateEquipmentInput represents input for a partial equipment update.
// ArmadoID, when set, asserts the box change happened in that kitting job
// and records it in the movement ledger.
type UpdateEquipmentInput struct {
	IP            *string
	Observacion   *string
	Codigo        *string
	NumeroSerie   *string
	Estado        *string
	Caja          *string
	CajaTecnicoID *uint64
	ArmadoID      *uint64
}

// ListMaterials returns the assembly's current material set
func (s *LedgerService) ListMaterials(armadoID uint64) ([]models.Material, error) {
	materials, err := s.materialRepo.ListByAssembly(armadoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, nil
}

// ReplaceMaterials replaces the assembly's material set wholesale. Entries
// without a name are skipped. Returns how many rows were written.
func (s *LedgerService) ReplaceMaterials(armadoID uint64, items []MaterialInput) (int, error) {
	if _, err := s.assemblyRepo.FindByID(armadoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAssemblyNotFound
		}
		return 0, fmt.Errorf("failed to find assembly: %w", err)
	}

	rows := make([]models.Material, 0, len(items))
	for _, item := range items {
		nombre := strings.TrimSpace(item.Nombre)
		if nombre == "" {
			continue
		}
		caja := item.Caja
		if caja == "" {
			caja = constants.DefaultBoxLabel
		}
		rows = append(rows, models.Material{
			Nombre:        nombre,
			Cantidad:      item.Cantidad,
			Caja:          caja,
			CajaTecnicoID: item.CajaTecnicoID,
		})
	}

	if err := s.materialRepo.ReplaceForAssembly(armadoID, rows); err != nil {
		return 0, fmt.Errorf("failed to replace materials: %w", err)
	}

	return len(rows), nil
}

// ListMovements returns the assembly's ledger, newest first
func (s *LedgerService) ListMovements(armadoID uint64) ([]models.Movement, error) {
	movements, err := s.movementRepo.ListByAssembly(armadoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

// ListRecentMovements returns the paginated global feed of real changes
func (s *LedgerService) ListRecentMovements(params utils.PaginationParams) ([]models.Movement, int64, error) {
	movements, total, err := s.movementRepo.ListRecent(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recent movements: %w", err)
	}
	return movements, total, nil
}

// ListEquipment returns equipment rows, optionally scoped to a site
func (s *LedgerService) ListEquipment(centroID *uint64) ([]models.Equipment, error) {
	equipment, err := s.equipmentRepo.List(centroID)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return equipment, nil
}

// CreateEquipment adds a device to a site's inventory. When the request
// carries an assembly, the insert also appends a ledger entry.
func (s *LedgerService) CreateEquipment(input CreateEquipmentInput) (*models.Equipment, error) {
	if _, err := s.siteRepo.FindByID(input.CentroID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("failed to find site: %w", err)
	}

	caja := input.Caja
	if caja == "" {
		caja = constants.DefaultBoxLabel
	}

	equipment := &models.Equipment{
		CentroID:      input.CentroID,
		Nombre:        input.Nombre,
		IP:            input.IP,
		Observacion:   input.Observacion,
		Codigo:        input.Codigo,
		NumeroSerie:   input.NumeroSerie,
		Estado:        input.Estado,
		Caja:          caja,
		CajaTecnicoID: input.CajaTecnicoID,
	}

	if err := s.equipmentRepo.Create(equipment, input.ArmadoID); err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}

	return equipment, nil
}

// UpdateEquipment applies a partial in-place update to an equipment row
func (s *LedgerService) UpdateEquipment(id uint64, input UpdateEquipmentInput) (*models.Equipment, error) {
	equipment, err := s.equipmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}

	if input.IP != nil {
		equipment.IP = *input.IP
	}
	if input.Observacion != nil {
		equipment.Observacion = *input.Observacion
	}
	if input.Codigo != nil {
		equipment.Codigo = *input.Codigo
	}
	if input.NumeroSerie != nil {
		equipment.NumeroSerie = *input.NumeroSerie
	}
	if input.Estado != nil {
		equipment.Estado = *input.Estado
	}
	if input.Caja != nil {
		caja := *input.Caja
		if caja == "" {
			caja = constants.DefaultBoxLabel
		}
		equipment.Caja = caja
	}
	if input.CajaTecnicoID != nil {
		equipment.CajaTecnicoID = input.CajaTecnicoID
	}

	if err := s.equipmentRepo.Update(equipment, input.ArmadoID); err != nil {
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}

	return equipment, nil
}

// DeleteEquipment removes an equipment row from the site inventory
func (s *LedgerService) DeleteEquipment(id uint64) error {
	if err := s.equipmentRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEquipmentNotFound
		}
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	return nil
}
