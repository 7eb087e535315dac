package models

// Material is a consumable used by one specific assembly. The set of
// materials for an assembly is replaced wholesale on every save, never
// patched row by row.
type Material struct {
	ID            uint64  `gorm:"column:id_material;primarykey" json:"id_material"`
	ArmadoID      uint64  `gorm:"not null;index" json:"armado_id"`
	Nombre        string  `gorm:"type:varchar(100);not null" json:"nombre"`
	Cantidad      float64 `gorm:"type:numeric(10,2);not null;default:0" json:"cantidad"`
	Caja          string  `gorm:"type:varchar(50);not null;default:'Caja 1'" json:"caja"`
	CajaTecnicoID *uint64 `gorm:"column:caja_tecnico_id" json:"caja_tecnico_id"`

	// Relations
	CajaTecnico *User `gorm:"foreignKey:CajaTecnicoID" json:"caja_tecnico,omitempty"`
}

func (Material) TableName() string { return "armado_materiales" }
