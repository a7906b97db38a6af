package models

import "time"

// Table statuses.
const (
	TableLivre      = "LIVRE"
	TableOcupada    = "OCUPADA"
	TableReservada  = "RESERVADA"
	TableManutencao = "MANUTENCAO"
)

type Table struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Number   int    `gorm:"unique;not null" json:"number"`
	Capacity int    `gorm:"not null" json:"capacity"`
	Status   string `gorm:"type:varchar(20);not null;default:'LIVRE'" json:"status"`
	// Data-URL do QR code que aponta para o cardápio da mesa.
	QRCode string `gorm:"type:text" json:"qr_code,omitempty"`

	Orders []Order `gorm:"foreignKey:TableID" json:"orders,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidTableStatus reports whether status is one of the four table states.
func ValidTableStatus(status string) bool {
	switch status {
	case TableLivre, TableOcupada, TableReservada, TableManutencao:
		return true
	}
	return false
}
