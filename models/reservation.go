package models

import "time"

// Reservation statuses.
const (
	ReservationConfirmada = "CONFIRMADA"
	ReservationCancelada  = "CANCELADA"
	ReservationFinalizada = "FINALIZADA"
)

type Reservation struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	Date time.Time `gorm:"not null;index" json:"date"`
	// Time is the "HH:MM" slot string; overlap checking is exact-match only.
	Time          string `gorm:"type:varchar(5);not null" json:"time"`
	Guests        int    `gorm:"not null" json:"guests"`
	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(30)" json:"customer_phone"`
	CustomerEmail string `gorm:"type:varchar(255)" json:"customer_email"`
	Status        string `gorm:"type:varchar(20);not null;default:'CONFIRMADA'" json:"status"`
	TableID       uint   `gorm:"not null;index" json:"table_id"`
	Table         Table  `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	UserID        uint   `gorm:"not null" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Notes         string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
