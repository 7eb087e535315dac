package models

import "time"

// Participation is a time-bounded interval of technician responsibility for
// an assembly. FechaFin == nil marks the active interval; at most one
// participation per assembly is active at a time.
type Participation struct {
	ID          uint64     `gorm:"column:id_participacion;primarykey" json:"id_participacion"`
	ArmadoID    uint64     `gorm:"not null;index" json:"armado_id"`
	TecnicoID   uint64     `gorm:"not null" json:"tecnico_id"`
	FechaInicio time.Time  `gorm:"type:date;not null" json:"fecha_inicio"`
	FechaFin    *time.Time `gorm:"type:date" json:"fecha_fin"`
	Nota        string     `gorm:"type:text" json:"nota"`

	// Relations
	Tecnico *User `gorm:"foreignKey:TecnicoID" json:"tecnico,omitempty"`
}

func (Participation) TableName() string { return "armado_participaciones" }
