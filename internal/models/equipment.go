package models

// Equipment (equipos_ip) is a physical IP device in a site's inventory.
// Caja and CajaTecnicoID extend the inventory record for the kitting
// workflow: which box the device is packed in and who packed it.
type Equipment struct {
	ID            uint64  `gorm:"column:id_equipo;primarykey" json:"id_equipo"`
	CentroID      uint64  `gorm:"not null;index" json:"centro_id"`
	Nombre        string  `gorm:"type:varchar(50);not null" json:"nombre"`
	IP            string  `gorm:"column:ip;type:varchar(15)" json:"ip"`
	Observacion   string  `gorm:"type:text" json:"observacion"`
	Codigo        string  `gorm:"type:varchar(20)" json:"codigo"`
	NumeroSerie   string  `gorm:"type:varchar(30)" json:"numero_serie"`
	Estado        string  `gorm:"type:varchar(20)" json:"estado"`
	Caja          string  `gorm:"type:varchar(50);not null;default:'Caja 1'" json:"caja"`
	CajaTecnicoID *uint64 `gorm:"column:caja_tecnico_id" json:"caja_tecnico_id"`

	// Relations
	Centro      Site  `gorm:"foreignKey:CentroID" json:"centro,omitempty"`
	CajaTecnico *User `gorm:"foreignKey:CajaTecnicoID" json:"caja_tecnico,omitempty"`
}

func (Equipment) TableName() string { return "equipos_ip" }
