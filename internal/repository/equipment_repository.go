package repository

import (
	"github.com/vigiamar/operaciones-api/internal/models"
	"gorm.io/gorm"
)

// GormEquipmentRepository is a GORM implementation of EquipmentRepository
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewEquipmentRepository creates a new EquipmentRepository
func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

// List retrieves equipment, optionally filtered by site
func (r *GormEquipmentRepository) List(centroID *uint64) ([]models.Equipment, error) {
	var equipment []models.Equipment
	query := r.db.Preload("CajaTecnico")
	if centroID != nil {
		query = query.Where("centro_id = ?", *centroID)
	}
	if err := query.Order("id_equipo ASC").Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

// FindByID finds an equipment row by ID
func (r *GormEquipmentRepository) FindByID(id uint64) (*models.Equipment, error) {
	var equipment models.Equipment
	if err := r.db.First(&equipment, id).Error; err != nil {
		return nil, err
	}
	return &equipment, nil
}

// Create inserts the equipment. When the caller supplies an assembly, the
// insert and its ledger entry commit together; the movement references the
// freshly assigned equipment ID.
func (r *GormEquipmentRepository) Create(equipment *models.Equipment, armadoID *uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(equipment).Error; err != nil {
			return err
		}
		if armadoID == nil {
			return nil
		}
		return appendEquipmentMovement(tx, *armadoID, equipment)
	})
}

// Update saves the equipment in place. Unlike materials there is no replace
// semantics: the row is site inventory shared with other workflows.
func (r *GormEquipmentRepository) Update(equipment *models.Equipment, armadoID *uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(equipment).Error; err != nil {
			return err
		}
		if armadoID == nil {
			return nil
		}
		return appendEquipmentMovement(tx, *armadoID, equipment)
	})
}

// Delete removes an equipment row
func (r *GormEquipmentRepository) Delete(id uint64) error {
	var equipment models.Equipment
	if err := r.db.First(&equipment, id).Error; err != nil {
		return err
	}
	return r.db.Delete(&equipment).Error
}

// BoxLabels returns the caja values of the site's equipment
func (r *GormEquipmentRepository) BoxLabels(centroID uint64) ([]string, error) {
	var labels []string
	err := r.db.Model(&models.Equipment{}).
		Where("centro_id = ?", centroID).
		Pluck("caja", &labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

// appendEquipmentMovement records an equipment box change in the assembly's
// ledger. Equipment moves one unit at a time, hence cantidad 1.
func appendEquipmentMovement(tx *gorm.DB, armadoID uint64, equipment *models.Equipment) error {
	movement := models.Movement{
		ArmadoID:   armadoID,
		Tipo:       models.MovementEquipment,
		ItemID:     equipment.ID,
		NombreItem: equipment.Nombre,
		Caja:       equipment.Caja,
		Cantidad:   1,
		TecnicoID:  equipment.CajaTecnicoID,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return err
	}
	return touchFechaInicio(tx, armadoID)
}
