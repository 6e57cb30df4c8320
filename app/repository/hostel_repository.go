package repository

import (
	"strings"

	"github.com/hostelpad/hostelpad/app/models"
	"gorm.io/gorm"
)

// hostelRepository implements the HostelRepository interface
type hostelRepository struct {
	db *gorm.DB
}

// NewHostelRepository creates a new hostel repository instance
func NewHostelRepository(db *gorm.DB) HostelRepository {
	return &hostelRepository{db: db}
}

// Create creates a new hostel listing in the database
func (r *hostelRepository) Create(hostel *models.Hostel) error {
	return r.db.Create(hostel).Error
}

// GetByID retrieves a hostel by its numeric ID
func (r *hostelRepository) GetByID(id uint) (*models.Hostel, error) {
	var hostel models.Hostel
	err := r.db.First(&hostel, id).Error
	if err != nil {
		return nil, err
	}
	return &hostel, nil
}

// GetByUUID retrieves a hostel by its public UUID
func (r *hostelRepository) GetByUUID(uuid string) (*models.Hostel, error) {
	var hostel models.Hostel
	err := r.db.Where("uuid = ?", uuid).First(&hostel).Error
	if err != nil {
		return nil, err
	}
	return &hostel, nil
}

// GetByUserID retrieves all hostels owned by a user
func (r *hostelRepository) GetByUserID(userID uint) ([]models.Hostel, error) {
	var hostels []models.Hostel
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&hostels).Error
	return hostels, err
}

// List retrieves hostels with pagination
func (r *hostelRepository) List(offset, limit int) ([]models.Hostel, error) {
	var hostels []models.Hostel
	err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&hostels).Error
	return hostels, err
}

// Search finds hostels whose name or amenities match the query. An empty
// query returns all listings.
func (r *hostelRepository) Search(query string) ([]models.Hostel, error) {
	var hostels []models.Hostel
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		err := r.db.Order("created_at DESC").Find(&hostels).Error
		return hostels, err
	}
	searchTerm := "%" + trimmed + "%"
	err := r.db.Where("name LIKE ? OR amenities LIKE ?", searchTerm, searchTerm).
		Order("created_at DESC").Find(&hostels).Error
	return hostels, err
}

// Update updates an existing hostel
func (r *hostelRepository) Update(hostel *models.Hostel) error {
	return r.db.Save(hostel).Error
}

// Delete soft-deletes a hostel by ID
func (r *hostelRepository) Delete(id uint) error {
	return r.db.Delete(&models.Hostel{}, id).Error
}

// Count returns the total number of hostel listings
func (r *hostelRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Hostel{}).Count(&count).Error
	return count, err
}
