package models

import "time"

// User is a platform account. Technicians referenced by assemblies and the
// box ledger are users with a technician role.
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Rol          string    `gorm:"type:varchar(50);not null" json:"rol"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
