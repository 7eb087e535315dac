package models

// Client is the company that owns monitored sites.
type Client struct {
	ID       uint64 `gorm:"column:id_cliente;primarykey" json:"id_cliente"`
	Nombre   string `gorm:"type:varchar(100);not null" json:"nombre"`
	Telefono string `gorm:"type:varchar(20)" json:"telefono"`
	Correo   string `gorm:"type:varchar(100)" json:"correo"`

	// Relations
	Centros []Site `gorm:"foreignKey:ClienteID" json:"centros,omitempty"`
}

func (Client) TableName() string { return "clientes" }
