package repository

import (
	"github.com/hostelpad/hostelpad/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// HostelRepository defines the interface for listing-related database operations
type HostelRepository interface {
	Create(hostel *models.Hostel) error
	GetByID(id uint) (*models.Hostel, error)
	GetByUUID(uuid string) (*models.Hostel, error)
	GetByUserID(userID uint) ([]models.Hostel, error)
	List(offset, limit int) ([]models.Hostel, error)
	Search(query string) ([]models.Hostel, error)
	Update(hostel *models.Hostel) error
	Delete(id uint) error
	Count() (int64, error)
}

// FavouriteRepository defines the interface for favourite bookkeeping
type FavouriteRepository interface {
	Add(userID, hostelID uint) error
	Remove(userID, hostelID uint) error
	ListHostels(userID uint) ([]models.Hostel, error)
	Exists(userID, hostelID uint) (bool, error)
	CountByHostel(hostelID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User      UserRepository
	Hostel    HostelRepository
	Favourite FavouriteRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Hostel:    NewHostelRepository(db),
		Favourite: NewFavouriteRepository(db),
	}
}
