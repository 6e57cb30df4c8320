package models

import (
	"time"
)

// Transaction is the append-only audit record of a verified payment.
// Amount is stored in major currency units; the provider reports minor units.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status    string    `gorm:"type:varchar(50);not null" json:"status"`
	Reference string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"reference"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
