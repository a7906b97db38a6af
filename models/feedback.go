package models

import "time"

type Feedback struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Rating        int    `gorm:"not null" json:"rating"`
	ServiceRating *int   `json:"service_rating,omitempty"`
	FoodRating    *int   `json:"food_rating,omitempty"`
	Comment       string `gorm:"type:text" json:"comment"`
	UserID        *uint  `json:"user_id,omitempty"`
	User          *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
