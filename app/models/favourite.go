package models

import (
	"time"
)

// Favourite links a user to a hostel they bookmarked. One row per pair.
type Favourite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:ux_favourites_user_hostel,unique,priority:1" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	HostelID  uint      `gorm:"not null;index:ux_favourites_user_hostel,unique,priority:2" json:"hostel_id"`
	Hostel    Hostel    `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
