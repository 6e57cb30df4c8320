package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hostelpad/hostelpad/app/repository"
	"github.com/hostelpad/hostelpad/internal/pkg/usercontext"
)

// FavouriteController handles per-user hostel bookmarks
type FavouriteController struct {
	favouriteRepo repository.FavouriteRepository
	hostelRepo    repository.HostelRepository
}

// NewFavouriteController creates a favourite controller with the given repositories
func NewFavouriteController(favouriteRepo repository.FavouriteRepository, hostelRepo repository.HostelRepository) *FavouriteController {
	return &FavouriteController{favouriteRepo: favouriteRepo, hostelRepo: hostelRepo}
}

var favouriteController *FavouriteController

// InitializeFavouriteController initializes the global favourite controller
func InitializeFavouriteController() {
	factory := repository.GetGlobalFactory()
	favouriteController = NewFavouriteController(factory.GetFavouriteRepository(), factory.GetHostelRepository())
}

// GetFavouriteController returns the global favourite controller instance
func GetFavouriteController() *FavouriteController {
	if favouriteController == nil {
		InitializeFavouriteController()
	}
	return favouriteController
}

// HandleListFavourites returns the session user's favourite hostels.
func (fc *FavouriteController) HandleListFavourites(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	hostels, err := fc.favouriteRepo.ListHostels(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load favourites")
	}

	return c.JSON(fiber.Map{"hostels": hostelListResponse(hostels)})
}

// HandleAddFavourite bookmarks a hostel. Adding twice is a no-op.
func (fc *FavouriteController) HandleAddFavourite(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	uuid := strings.TrimSpace(c.Params("uuid"))
	if uuid == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "uuid missing")
	}

	hostel, err := fc.hostelRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Listing not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load listing")
	}

	if err := fc.favouriteRepo.Add(userCtx.UserID, hostel.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to add favourite")
	}

	return c.JSON(fiber.Map{"ok": true, "hostel": hostel.UUID})
}

// HandleRemoveFavourite removes a bookmark. Removing a non-favourite is a no-op.
func (fc *FavouriteController) HandleRemoveFavourite(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	uuid := strings.TrimSpace(c.Params("uuid"))
	if uuid == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "uuid missing")
	}

	hostel, err := fc.hostelRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Listing not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load listing")
	}

	if err := fc.favouriteRepo.Remove(userCtx.UserID, hostel.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to remove favourite")
	}

	return c.JSON(fiber.Map{"ok": true, "hostel": hostel.UUID})
}
