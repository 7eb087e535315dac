package repository

import (
	"errors"
	"time"

	"github.com/vigiamar/operaciones-api/internal/database"
	"github.com/vigiamar/operaciones-api/internal/models"
	"github.com/vigiamar/operaciones-api/internal/utils"
	"gorm.io/gorm"
)

// GormMovementRepository is a GORM implementation of MovementRepository
type GormMovementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new MovementRepository
func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &GormMovementRepository{db: db}
}

// ListByAssembly lists an assembly's movements, newest first
func (r *GormMovementRepository) ListByAssembly(armadoID uint64) ([]models.Movement, error) {
	var movements []models.Movement
	err := r.db.
		Where("armado_id = ?", armadoID).
		Order("fecha DESC").
		Preload("Tecnico").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// ListRecent lists movements across all assemblies, newest first. Rows with
// cantidad 0 carry no real change and are excluded. The assembly and its
// site are preloaded for context; both may be gone for old ledger entries,
// in which case Armado stays nil.
func (r *GormMovementRepository) ListRecent(params utils.PaginationParams) ([]models.Movement, int64, error) {
	var total int64
	if err := r.db.Model(&models.Movement{}).
		Where("cantidad <> 0").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movements []models.Movement
	err := r.db.
		Where("cantidad <> 0").
		Order("fecha DESC").
		Scopes(database.Paginate(params)).
		Preload("Tecnico").
		Preload("Armado").
		Preload("Armado.Centro").
		Find(&movements).Error
	if err != nil {
		return nil, 0, err
	}

	return movements, total, nil
}

// FirstMovementTime returns the timestamp of the assembly's earliest
// movement, or nil when it has none
func (r *GormMovementRepository) FirstMovementTime(armadoID uint64) (*time.Time, error) {
	var movement models.Movement
	err := r.db.
		Where("armado_id = ?", armadoID).
		Order("fecha ASC").
		First(&movement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movement.Fecha, nil
}
