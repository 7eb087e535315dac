package models

import "time"

type AssemblyStatus string

// Estado is stored as free text; these are the values the UI uses.
const (
	AssemblyPending    AssemblyStatus = "pendiente"
	AssemblyInProgress AssemblyStatus = "en_progreso"
	AssemblyClosed     AssemblyStatus = "cerrado"
)

// Assembly (armado) is a kitting job preparing equipment for one site.
//
// TecnicoID caches the technician of the most recent open participation. It
// is recomputed inside the same transaction on every transfer and
// participation delete, never trusted as independently stored truth.
//
// FechaInicio stays null until the first material/equipment mutation or
// technician transfer; once set it is never cleared by ledger activity.
type Assembly struct {
	ID              uint64         `gorm:"column:id_armado;primarykey" json:"id_armado"`
	CentroID        uint64         `gorm:"not null;index" json:"centro_id"`
	TecnicoID       *uint64        `gorm:"index" json:"tecnico_id"`
	Estado          AssemblyStatus `gorm:"type:varchar(20);not null;default:'pendiente'" json:"estado"`
	FechaAsignacion time.Time      `gorm:"type:date;not null" json:"fecha_asignacion"`
	FechaInicio     *time.Time     `gorm:"type:date" json:"fecha_inicio"`
	FechaCierre     *time.Time     `gorm:"type:date" json:"fecha_cierre"`
	Observacion     string         `gorm:"type:text" json:"observacion"`
	CreadoPor       *uint64        `json:"creado_por"`

	// Relations
	Centro          Site            `gorm:"foreignKey:CentroID" json:"centro,omitempty"`
	Tecnico         *User           `gorm:"foreignKey:TecnicoID" json:"tecnico,omitempty"`
	Participaciones []Participation `gorm:"foreignKey:ArmadoID" json:"participaciones,omitempty"`
	Materiales      []Material      `gorm:"foreignKey:ArmadoID" json:"materiales,omitempty"`
}

func (Assembly) TableName() string { return "armados" }
