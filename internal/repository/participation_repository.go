package repository

import (
	"errors"

	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/utils"
	"gorm.io/gorm"
)

// GormParticipationRepository is a GORM implementation of ParticipationRepository
type GormParticipationRepository struct {
	db *gorm.DB
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &GormParticipationRepository{db: db}
}

// ListByAssembly lists participations ordered by (fecha_inicio, id) ascending.
// Ties on the same day resolve by insertion order.
func (r *GormParticipationRepository) ListByAssembly(armadoID uint64) ([]models.Participation, error) {
	var participations []models.Participation
	err := r.db.
		Where("armado_id = ?", armadoID).
		Order("fecha_inicio ASC, id_participacion ASC").
		Preload("Tecnico").
		Find(&participations).Error
	if err != nil {
		return nil, err
	}
	return participations, nil
}

// FindByID finds a participation by ID
func (r *GormParticipationRepository) FindByID(id uint64) (*models.Participation, error) {
	var participation models.Participation
	if err := r.db.First(&participation, id).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}

// Transfer hands responsibility for the assembly to a new technician.
// Closing the active participation is a conditional update on
// "fecha_fin IS NULL" rather than read-then-write, so two concurrent
// transfers cannot both leave an open row behind.
func (r *GormParticipationRepository) Transfer(armadoID, tecnicoID uint64, nota string) (*models.Participation, error) {
	var created models.Participation

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var assembly models.Assembly
		if err := tx.First(&assembly, armadoID).Error; err != nil {
			return err
		}

		today := utils.Today()

		if err := tx.Model(&models.Participation{}).
			Where("armado_id = ? AND fecha_fin IS NULL", armadoID).
			Update("fecha_fin", today).Error; err != nil {
			return err
		}

		created = models.Participation{
			ArmadoID:    armadoID,
			TecnicoID:   tecnicoID,
			FechaInicio: today,
			Nota:        nota,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"tecnico_id": tecnicoID}
		if assembly.FechaInicio == nil {
			updates["fecha_inicio"] = today
		}
		return tx.Model(&models.Assembly{}).
			Where("id_armado = ?", armadoID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Update updates a participation. The assembly's cached technician is not
// re-derived here even if the edit changes which participation is active.
func (r *GormParticipationRepository) Update(participation *models.Participation) error {
	return r.db.Save(participation).Error
}

// Delete removes a participation. When the deleted row's technician was the
// assembly's current one, the cache is recomputed from the latest remaining
// participation by (fecha_inicio, id), or cleared when none remain.
func (r *GormParticipationRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var participation models.Participation
		if err := tx.First(&participation, id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Participation{}, id).Error; err != nil {
			return err
		}

		var assembly models.Assembly
		if err := tx.First(&assembly, participation.ArmadoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if assembly.TecnicoID == nil || *assembly.TecnicoID != participation.TecnicoID {
			return nil
		}

		var last models.Participation
		err := tx.Where("armado_id = ?", participation.ArmadoID).
			Order("fecha_inicio DESC, id_participacion DESC").
			First(&last).Error
		switch {
		case err == nil:
			return tx.Model(&assembly).Update("tecnico_id", last.TecnicoID).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Model(&assembly).Update("tecnico_id", nil).Error
		default:
			return err
		}
	})
}
