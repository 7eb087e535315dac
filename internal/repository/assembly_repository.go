package repository

import (
	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/utils"
	"gorm.io/gorm"
)

// GormAssemblyRepository is a GORM implementation of AssemblyRepository
type GormAssemblyRepository struct {
	db *gorm.DB
}

// NewAssemblyRepository creates a new AssemblyRepository
func NewAssemblyRepository(db *gorm.DB) AssemblyRepository {
	return &GormAssemblyRepository{db: db}
}

// CreateWithInitialParticipation inserts the assembly and seeds its first
// participation within a single transaction
func (r *GormAssemblyRepository) CreateWithInitialParticipation(assembly *models.Assembly, participation *models.Participation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assembly).Error; err != nil {
			return err
		}

		participation.ArmadoID = assembly.ID
		return tx.Create(participation).Error
	})
}

// FindByID finds an assembly by ID with optional preloading
func (r *GormAssemblyRepository) FindByID(id uint64, preload ...string) (*models.Assembly, error) {
	var assembly models.Assembly
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&assembly, id).Error; err != nil {
		return nil, err
	}

	return &assembly, nil
}

// List retrieves assemblies with filtering, newest assignment first
func (r *GormAssemblyRepository) List(filter AssemblyFilter) ([]models.Assembly, error) {
	var assemblies []models.Assembly

	query := r.db.Model(&models.Assembly{})

	if filter.Estado != nil {
		query = query.Where("estado = ?", *filter.Estado)
	}
	if filter.TecnicoID != nil {
		query = query.Where("tecnico_id = ?", *filter.TecnicoID)
	}

	err := query.
		Order("fecha_asignacion DESC").
		Preload("Centro").
		Preload("Centro.Cliente").
		Preload("Tecnico").
		Preload("Participaciones", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha_inicio ASC, id_participacion ASC")
		}).
		Preload("Participaciones.Tecnico").
		Find(&assemblies).Error
	if err != nil {
		return nil, err
	}

	return assemblies, nil
}

// Update updates an assembly
func (r *GormAssemblyRepository) Update(assembly *models.Assembly) error {
	return r.db.Save(assembly).Error
}

// Delete removes the assembly and cascades to its participations and
// materials. Movement rows are kept on purpose: the ledger is the audit
// trail, and the global feed tolerates assemblies that no longer exist.
func (r *GormAssemblyRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var assembly models.Assembly
		if err := tx.First(&assembly, id).Error; err != nil {
			return err
		}

		if err := tx.Where("armado_id = ?", id).Delete(&models.Participation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("armado_id = ?", id).Delete(&models.Material{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Assembly{}, id).Error
	})
}

// touchFechaInicio stamps the assembly's real start on its first ledger
// activity. The conditional update means a later call can never move an
// already-set date.
func touchFechaInicio(tx *gorm.DB, armadoID uint64) error {
	return tx.Model(&models.Assembly{}).
		Where("id_armado = ? AND fecha_inicio IS NULL", armadoID).
		Update("fecha_inicio", utils.Today()).Error
}
