package models

import "time"

type Ingredient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Unit        string    `gorm:"type:varchar(20);not null" json:"unit"`
	StockQty    float64   `gorm:"type:decimal(10,3);not null;default:0" json:"stock_qty"`
	MinStockQty float64   `gorm:"type:decimal(10,3);not null;default:0" json:"min_stock_qty"`
	Cost        float64   `gorm:"type:decimal(10,2);not null;default:0" json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LowStock reports whether the ingredient is at or below its minimum.
func (i *Ingredient) LowStock() bool {
	return i.StockQty <= i.MinStockQty
}
