package models

import "time"

// Roles conhecidos do sistema.
const (
	RoleAdmin         = "ADMIN"
	RoleRecepcionista = "RECEPCIONISTA"
	RoleCozinheira    = "COZINHEIRA"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the accepted profiles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleRecepcionista, RoleCozinheira:
		return true
	}
	return false
}
