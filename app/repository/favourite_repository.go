package repository

import (
	"github.com/hostelpad/hostelpad/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// favouriteRepository implements the FavouriteRepository interface
type favouriteRepository struct {
	db *gorm.DB
}

// NewFavouriteRepository creates a new favourite repository instance
func NewFavouriteRepository(db *gorm.DB) FavouriteRepository {
	return &favouriteRepository{db: db}
}

// Add marks a hostel as a favourite. Adding an existing favourite is a no-op.
func (r *favouriteRepository) Add(userID, hostelID uint) error {
	fav := models.Favourite{UserID: userID, HostelID: hostelID}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "hostel_id"},
		},
		DoNothing: true,
	}).Create(&fav).Error
}

// Remove deletes a favourite. Removing a non-favourite is a no-op.
func (r *favouriteRepository) Remove(userID, hostelID uint) error {
	return r.db.Where("user_id = ? AND hostel_id = ?", userID, hostelID).
		Delete(&models.Favourite{}).Error
}

// ListHostels returns the hostels a user has favourited, newest first.
func (r *favouriteRepository) ListHostels(userID uint) ([]models.Hostel, error) {
	var hostels []models.Hostel
	err := r.db.
		Joins("JOIN favourites ON favourites.hostel_id = hostels.id").
		Where("favourites.user_id = ?", userID).
		Order("favourites.created_at DESC").
		Find(&hostels).Error
	return hostels, err
}

// Exists reports whether a hostel is in the user's favourites
func (r *favouriteRepository) Exists(userID, hostelID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favourite{}).
		Where("user_id = ? AND hostel_id = ?", userID, hostelID).
		Count(&count).Error
	return count > 0, err
}

// CountByHostel returns how many users favourited a hostel
func (r *favouriteRepository) CountByHostel(hostelID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Favourite{}).
		Where("hostel_id = ?", hostelID).
		Count(&count).Error
	return count, err
}
