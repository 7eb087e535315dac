package repository

import (
	"github.com/vigiamar/operaciones-api/internal/models"
	"gorm.io/gorm"
)

// GormMaterialRepository is a GORM implementation of MaterialRepository
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &GormMaterialRepository{db: db}
}

// ListByAssembly lists materials ordered by ID ascending
func (r *GormMaterialRepository) ListByAssembly(armadoID uint64) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.
		Where("armado_id = ?", armadoID).
		Order("id_material ASC").
		Preload("CajaTecnico").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

// ReplaceForAssembly swaps the assembly's material set in one transaction.
// Materials are inserted first so their IDs are known, then the movement
// rows are written referencing those real IDs; duplicate names stay
// unambiguous and the ledger only ever reflects committed state.
func (r *GormMaterialRepository) ReplaceForAssembly(armadoID uint64, rows []models.Material) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("armado_id = ?", armadoID).Delete(&models.Material{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].ArmadoID = armadoID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		movements := make([]models.Movement, len(rows))
		for i, m := range rows {
			movements[i] = models.Movement{
				ArmadoID:   armadoID,
				Tipo:       models.MovementMaterial,
				ItemID:     m.ID,
				NombreItem: m.Nombre,
				Caja:       m.Caja,
				Cantidad:   m.Cantidad,
				TecnicoID:  m.CajaTecnicoID,
			}
		}
		if err := tx.Create(&movements).Error; err != nil {
			return err
		}

		return touchFechaInicio(tx, armadoID)
	})
}

// BoxLabels returns the caja values of the assembly's materials
func (r *GormMaterialRepository) BoxLabels(armadoID uint64) ([]string, error) {
	var labels []string
	err := r.db.Model(&models.Material{}).
		Where("armado_id = ?", armadoID).
		Pluck("caja", &labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}
