package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vigiamar/operaciones-api/internal/constants"
	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/repository"
	"github.com/vigiamar/operaciones-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrAssemblyNotFound   = errors.New("assembly not found")
	ErrSiteRequired       = errors.New("centro_id is required")
	ErrTechnicianRequired = errors.New("tecnico_id is required")
)

// AssemblyService handles assembly business logic
type AssemblyService struct {
	assemblyRepo  repository.AssemblyRepository
	materialRepo  repository.MaterialRepository
	equipmentRepo repository.EquipmentRepository
	movementRepo  repository.MovementRepository
}

// NewAssemblyService creates a new AssemblyService
func NewAssemblyService(
	assemblyRepo repository.AssemblyRepository,
	materialRepo repository.MaterialRepository,
	equipmentRepo repository.EquipmentRepository,
	movementRepo repository.MovementRepository,
) *AssemblyService {
	return &AssemblyService{
		assemblyRepo:  assemblyRepo,
		materialRepo:  materialRepo,
		equipmentRepo: equipmentRepo,
		movementRepo:  movementRepo,
	}
}

// CreateAssemblyInput represents input for creating an assembly
type CreateAssemblyInput struct {
	CentroID        uint64
	TecnicoID       uint64
	Estado          models.AssemblyStatus
	FechaAsignacion *time.Time
	FechaInicio     *time.Time
	FechaCierre     *time.Time
	Observacion     string
	CreadoPor       *uint64
}

// UpdateAssemblyInput represents input for a partial assembly update.
// Nil pointers mean "leave unchanged"; the OptionalDate fields distinguish
// "omitted" from "provided as null", since providing null clears the date.
type UpdateAssemblyInput struct {
	CentroID        *uint64
	TecnicoID       *uint64
	Estado          *models.AssemblyStatus
	FechaAsignacion *time.Time
	FechaInicio     OptionalDate
	FechaCierre     OptionalDate
	Observacion     *string
}

// OptionalDate carries a date field whose presence in the request matters.
type OptionalDate struct {
	Set   bool
	Value *time.Time
}

// AssemblyListItem is an assembly enriched with the values derived for the
// listing view: the ordered technician history, the box count and the real
// start date.
type AssemblyListItem struct {
	Assembly          models.Assembly
	TecnicosHistorial []string
	TotalCajas        int
	FechaInicioReal   time.Time
}

// CreateAssembly creates an assembly and seeds its initial participation for
// the same technician, dated at the assignment date.
func (s *AssemblyService) CreateAssembly(input CreateAssemblyInput) (*models.Assembly, error) {
	if input.CentroID == 0 {
		return nil, ErrSiteRequired
	}
	if input.TecnicoID == 0 {
		return nil, ErrTechnicianRequired
	}

	if input.Estado == "" {
		input.Estado = models.AssemblyPending
	}

	fechaAsignacion := utils.Today()
	if input.FechaAsignacion != nil {
		fechaAsignacion = *input.FechaAsignacion
	}

	assembly := &models.Assembly{
		CentroID:        input.CentroID,
		TecnicoID:       &input.TecnicoID,
		Estado:          input.Estado,
		FechaAsignacion: fechaAsignacion,
		FechaInicio:     input.FechaInicio,
		FechaCierre:     input.FechaCierre,
		Observacion:     input.Observacion,
		CreadoPor:       input.CreadoPor,
	}
	participation := &models.Participation{
		TecnicoID:   input.TecnicoID,
		FechaInicio: fechaAsignacion,
		Nota:        input.Observacion,
	}

	if err := s.assemblyRepo.CreateWithInitialParticipation(assembly, participation); err != nil {
		return nil, fmt.Errorf("failed to create assembly: %w", err)
	}

	return assembly, nil
}

// ListAssemblies returns assemblies matching the filter together with their
// derived listing values.
func (s *AssemblyService) ListAssemblies(filter repository.AssemblyFilter) ([]AssemblyListItem, error) {
	assemblies, err := s.assemblyRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assemblies: %w", err)
	}

	items := make([]AssemblyListItem, 0, len(assemblies))
	for _, assembly := range assemblies {
		history := make([]string, 0, len(assembly.Participaciones))
		for _, p := range assembly.Participaciones {
			if p.Tecnico != nil {
				history = append(history, p.Tecnico.Name)
			} else {
				history = append(history, fmt.Sprintf("ID %d", p.TecnicoID))
			}
		}

		totalCajas, err := s.totalBoxes(&assembly)
		if err != nil {
			return nil, err
		}

		fechaInicioReal, err := s.effectiveStartDate(&assembly)
		if err != nil {
			return nil, err
		}

		items = append(items, AssemblyListItem{
			Assembly:          assembly,
			TecnicosHistorial: history,
			TotalCajas:        totalCajas,
			FechaInicioReal:   fechaInicioReal,
		})
	}

	return items, nil
}

// UpdateAssembly applies a partial update to an assembly
func (s *AssemblyService) UpdateAssembly(id uint64, input UpdateAssemblyInput) (*models.Assembly, error) {
	assembly, err := s.assemblyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssemblyNotFound
		}
		return nil, fmt.Errorf("failed to find assembly: %w", err)
	}

	if input.CentroID != nil {
		assembly.CentroID = *input.CentroID
	}
	if input.TecnicoID != nil {
		assembly.TecnicoID = input.TecnicoID
	}
	if input.Estado != nil {
		assembly.Estado = *input.Estado
	}
	if input.FechaAsignacion != nil {
		assembly.FechaAsignacion = *input.FechaAsignacion
	}
	if input.FechaInicio.Set {
		assembly.FechaInicio = input.FechaInicio.Value
	}
	if input.FechaCierre.Set {
		assembly.FechaCierre = input.FechaCierre.Value
	}
	if input.Observacion != nil {
		assembly.Observacion = *input.Observacion
	}

	if err := s.assemblyRepo.Update(assembly); err != nil {
		return nil, fmt.Errorf("failed to update assembly: %w", err)
	}

	return assembly, nil
}

// DeleteAssembly removes an assembly, its participations and its materials.
// Movements are kept as audit records.
func (s *AssemblyService) DeleteAssembly(id uint64) error {
	if err := s.assemblyRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssemblyNotFound
		}
		return fmt.Errorf("failed to delete assembly: %w", err)
	}
	return nil
}

// totalBoxes counts the distinct box labels in use across the site's
// equipment and the assembly's materials. An unset label counts as the
// default box.
func (s *AssemblyService) totalBoxes(assembly *models.Assembly) (int, error) {
	equipmentLabels, err := s.equipmentRepo.BoxLabels(assembly.CentroID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch equipment boxes: %w", err)
	}
	materialLabels, err := s.materialRepo.BoxLabels(assembly.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch material boxes: %w", err)
	}

	boxes := make(map[string]struct{}, len(equipmentLabels)+len(materialLabels))
	for _, label := range equipmentLabels {
		boxes[normalizeBoxLabel(label)] = struct{}{}
	}
	for _, label := range materialLabels {
		boxes[normalizeBoxLabel(label)] = struct{}{}
	}

	return len(boxes), nil
}

// effectiveStartDate answers "when did real work begin": the stored start
// date if set, else the earliest movement, else the assignment date.
func (s *AssemblyService) effectiveStartDate(assembly *models.Assembly) (time.Time, error) {
	if assembly.FechaInicio != nil {
		return *assembly.FechaInicio, nil
	}

	first, err := s.movementRepo.FirstMovementTime(assembly.ID)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch first movement: %w", err)
	}
	if first != nil {
		return time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return assembly.FechaAsignacion, nil
}

func normalizeBoxLabel(label string) string {
	if label == "" {
		return constants.DefaultBoxLabel
	}
	return label
}
