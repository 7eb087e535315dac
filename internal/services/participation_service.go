package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/repository"
	"gorm.io/gorm"
)

var ErrParticipationNotFound = errors.New("participation not found")

// ParticipationService handles technician responsibility intervals
type ParticipationService struct {
	participationRepo repository.ParticipationRepository
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(participationRepo repository.ParticipationRepository) *ParticipationService {
	return &ParticipationService{
		participationRepo: participationRepo,
	}
}

// UpdateParticipationInput represents input for editing a participation.
// FechaFin uses OptionalDate because providing null re-opens the interval.
type UpdateParticipationInput struct {
	FechaInicio *time.Time
	FechaFin    OptionalDate
	Nota        *string
}

// ListParticipations returns the assembly's responsibility history in
// display order
func (s *ParticipationService) ListParticipations(armadoID uint64) ([]models.Participation, error) {
	participations, err := s.participationRepo.ListByAssembly(armadoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	return participations, nil
}

// Transfer hands the assembly to a new technician: the active participation
// is closed today and a new active one opens today. Deliberately not
// idempotent: two transfers on the same day produce two rows dated today,
// the later one active.
func (s *ParticipationService) Transfer(armadoID, tecnicoID uint64, nota string) (*models.Participation, error) {
	if tecnicoID == 0 {
		return nil, ErrTechnicianRequired
	}

	participation, err := s.participationRepo.Transfer(armadoID, tecnicoID, nota)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssemblyNotFound
		}
		return nil, fmt.Errorf("failed to transfer assembly: %w", err)
	}

	return participation, nil
}

// UpdateParticipation applies a direct field overwrite. It does not
// re-derive the assembly's cached technician even when the edit changes
// which participation is active.
func (s *ParticipationService) UpdateParticipation(id uint64, input UpdateParticipationInput) (*models.Participation, error) {
	participation, err := s.participationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipationNotFound
		}
		return nil, fmt.Errorf("failed to find participation: %w", err)
	}

	if input.FechaInicio != nil {
		participation.FechaInicio = *input.FechaInicio
	}
	if input.FechaFin.Set {
		participation.FechaFin = input.FechaFin.Value
	}
	if input.Nota != nil {
		participation.Nota = *input.Nota
	}

	if err := s.participationRepo.Update(participation); err != nil {
		return nil, fmt.Errorf("failed to update participation: %w", err)
	}

	return participation, nil
}

// DeleteParticipation removes a participation and lets the repository
// recompute the assembly's cached technician
func (s *ParticipationService) DeleteParticipation(id uint64) error {
	if err := s.participationRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipationNotFound
		}
		return fmt.Errorf("failed to delete participation: %w", err)
	}
	return nil
}
