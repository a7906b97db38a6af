package models

import "time"

// Order (and order item) statuses.
const (
	OrderPendente     = "PENDENTE"
	OrderEmPreparacao = "EM_PREPARACAO"
	OrderPronto       = "PRONTO"
	OrderServido      = "SERVIDO"
	OrderCancelado    = "CANCELADO"
)

type Order struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderNumber string  `gorm:"type:varchar(20);unique;not null" json:"order_number"`
	Status      string  `gorm:"type:varchar(20);not null;default:'PENDENTE'" json:"status"`
	TotalAmount float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	TableID     uint    `gorm:"not null;index" json:"table_id"`
	Table       Table   `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	UserID      uint    `gorm:"not null" json:"user_id"`
	User        User    `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user"`
	Notes       string  `gorm:"type:text" json:"notes"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ValidOrderStatus reports whether status is a known order/item status.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPendente, OrderEmPreparacao, OrderPronto, OrderServido, OrderCancelado:
		return true
	}
	return false
}

// OpenOrderStatuses are the statuses that keep a table occupied.
func OpenOrderStatuses() []string {
	return []string{OrderPendente, OrderEmPreparacao, OrderPronto}
}
