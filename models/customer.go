package models

import "time"

type Customer struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Whatsapp     string  `json:"whatsapp"`
	Organization string  `json:"organization"`
	Orders       []Order `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
