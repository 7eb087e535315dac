package models

import "time"

type MovementKind string

const (
	MovementEquipment MovementKind = "equipo"
	MovementMaterial  MovementKind = "material"
)

// Movement is an append-only ledger entry recording a box/technician/quantity
// change. Rows are never updated or deleted; deleting an assembly keeps its
// movements as audit records, so Armado may dangle and resolves to nil.
type Movement struct {
	ID         uint64       `gorm:"column:id_movimiento;primarykey" json:"id_movimiento"`
	ArmadoID   uint64       `gorm:"not null;index" json:"armado_id"`
	Tipo       MovementKind `gorm:"type:varchar(20);not null" json:"tipo"`
	ItemID     uint64       `gorm:"not null" json:"item_id"`
	NombreItem string       `gorm:"type:varchar(100);not null" json:"nombre_item"`
	Caja       string       `gorm:"type:varchar(50);not null" json:"caja"`
	Cantidad   float64      `gorm:"type:numeric(10,2);not null;default:0" json:"cantidad"`
	TecnicoID  *uint64      `json:"tecnico_id"`
	Fecha      time.Time    `gorm:"autoCreateTime;index" json:"fecha"`

	// Relations
	Tecnico *User     `gorm:"foreignKey:TecnicoID" json:"tecnico,omitempty"`
	Armado  *Assembly `gorm:"foreignKey:ArmadoID" json:"armado,omitempty"`
}

func (Movement) TableName() string { return "armado_caja_movimientos" }
