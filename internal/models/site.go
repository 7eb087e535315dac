package models

import "time"

// Site (centro) is a monitored location. Assemblies prepare equipment for a
// site; equipment inventory belongs to the site, not to any assembly.
type Site struct {
	ID        uint64    `gorm:"column:id_centro;primarykey" json:"id_centro"`
	Nombre    string    `gorm:"type:varchar(100);not null" json:"nombre"`
	Ubicacion string    `gorm:"type:varchar(255)" json:"ubicacion"`
	ClienteID uint64    `gorm:"not null" json:"cliente_id"`
	Estado    string    `gorm:"type:varchar(10);default:'activo'" json:"estado"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Cliente Client      `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Equipos []Equipment `gorm:"foreignKey:CentroID" json:"equipos,omitempty"`
}

func (Site) TableName() string { return "centros" }
