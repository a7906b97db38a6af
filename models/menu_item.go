package models

import "time"

type MenuItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	CategoryID  uint     `gorm:"not null;index" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string   `gorm:"type:varchar(255);not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Price       float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	Available   bool     `gorm:"not null;default:true" json:"available"`
	// Tempo de preparo em minutos.
	PreparationTime *int    `json:"preparation_time,omitempty"`
	Image           *string `gorm:"type:varchar(255)" json:"image,omitempty"`

	// Flags usados pelos dropdowns do montador de pedidos.
	IsBase           bool `gorm:"not null;default:false" json:"is_base"`
	IsProteina       bool `gorm:"not null;default:false" json:"is_proteina"`
	IsAcompanhamento bool `gorm:"not null;default:false" json:"is_acompanhamento"`
	IsBebida         bool `gorm:"not null;default:false" json:"is_bebida"`

	Ingredients []MenuItemIngredient `gorm:"foreignKey:MenuItemID" json:"ingredients,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MenuItemIngredient struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	MenuItemID   uint       `gorm:"not null;index" json:"menu_item_id"`
	IngredientID uint       `gorm:"not null;index" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"ingredient"`
	Quantity     float64    `gorm:"type:decimal(10,3);not null" json:"quantity"`
}
