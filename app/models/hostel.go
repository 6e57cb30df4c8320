package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores a JSON array of strings in a single column.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("invalid scan source")
	}
	return json.Unmarshal(bytes, l)
}

// Hostel is a published accommodation listing.
type Hostel struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	UserID       uint           `gorm:"index" json:"user_id"`
	User         User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name         string         `gorm:"type:varchar(200);index" json:"name" validate:"required,min=2,max=200"`
	Description  string         `gorm:"type:text" json:"description" validate:"max=5000"`
	Type         string         `gorm:"type:varchar(50);default:'Hostel'" json:"type" validate:"max=50"`
	Country      string         `gorm:"type:varchar(100)" json:"country" validate:"required,max=100"`
	Address      string         `gorm:"type:varchar(255)" json:"address" validate:"required,max=255"`
	Website      string         `gorm:"type:varchar(255)" json:"website" validate:"omitempty,url,max=255"`
	Email        string         `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email,max=200"`
	PhoneNumbers StringList     `gorm:"type:text" json:"phone_numbers"`
	Amenities    StringList     `gorm:"type:text" json:"amenities"`
	Images       StringList     `gorm:"type:text" json:"images"`
	Latitude     float64        `gorm:"type:double" json:"latitude"`
	Longitude    float64        `gorm:"type:double" json:"longitude"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (h *Hostel) Validate() error {
	v := validator.New()

	return v.Struct(h)
}

// BeforeCreate assigns a UUID if none is set yet
func (h *Hostel) BeforeCreate(tx *gorm.DB) error {
	if h.UUID == "" {
		h.UUID = uuid.New().String()
	}

	return nil
}
