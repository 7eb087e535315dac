package repository

import (
	"github.com/vigiamar/operaciones-api/internal/models"
	"gorm.io/gorm"
)

// GormSiteRepository is a GORM implementation of SiteRepository
type GormSiteRepository struct {
	db *gorm.DB
}

// NewSiteRepository creates a new SiteRepository
func NewSiteRepository(db *gorm.DB) SiteRepository {
	return &GormSiteRepository{db: db}
}

// List retrieves all sites with their client preloaded
func (r *GormSiteRepository) List() ([]models.Site, error) {
	var sites []models.Site
	if err := r.db.Preload("Cliente").Order("id_centro ASC").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

// FindByID finds a site by ID
func (r *GormSiteRepository) FindByID(id uint64) (*models.Site, error) {
	var site models.Site
	if err := r.db.Preload("Cliente").First(&site, id).Error; err != nil {
		return nil, err
	}
	return &site, nil
}
