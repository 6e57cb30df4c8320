package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hostelpad/hostelpad/app/models"
	"github.com/hostelpad/hostelpad/app/repository"
	"github.com/hostelpad/hostelpad/internal/pkg/cache"
	"github.com/hostelpad/hostelpad/internal/pkg/usercontext"
)

const (
	hostelListCacheKey = "hostels:all"
	hostelListCacheTTL = 60 * time.Second
)

// HostelController handles the public listing endpoints
type HostelController struct {
	hostelRepo repository.HostelRepository
}

// NewHostelController creates a hostel controller with the given repository
func NewHostelController(hostelRepo repository.HostelRepository) *HostelController {
	return &HostelController{hostelRepo: hostelRepo}
}

var hostelController *HostelController

// InitializeHostelController initializes the global hostel controller
func InitializeHostelController() {
	hostelController = NewHostelController(repository.GetGlobalFactory().GetHostelRepository())
}

// GetHostelController returns the global hostel controller instance
func GetHostelController() *HostelController {
	if hostelController == nil {
		InitializeHostelController()
	}
	return hostelController
}

// HandleListHostels returns all listings, served from cache when possible.
func (hc *HostelController) HandleListHostels(c *fiber.Ctx) error {
	if cached, err := cache.Get(hostelListCacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	hostels, err := hc.hostelRepo.Search("")
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load listings")
	}

	response := fiber.Map{"hostels": hostelListResponse(hostels)}
	if payload, err := json.Marshal(response); err == nil {
		if err := cache.Set(hostelListCacheKey, string(payload), hostelListCacheTTL); err != nil {
			log.Printf("failed to cache hostel list: %v", err)
		}
	}

	return c.JSON(response)
}

// HandleGetHostel returns a single listing by its public UUID.
func (hc *HostelController) HandleGetHostel(c *fiber.Ctx) error {
	uuid := strings.TrimSpace(c.Params("uuid"))
	if uuid == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "uuid missing")
	}

	hostel, err := hc.hostelRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Listing not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load listing")
	}

	return c.JSON(hostelResponse(hostel))
}

// HandleSearchHostels matches listings by name or amenities. An empty query
// returns all listings, mirroring the mobile search box behaviour.
func (hc *HostelController) HandleSearchHostels(c *fiber.Ctx) error {
	query := c.Query("q")

	hostels, err := hc.hostelRepo.Search(query)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Search failed")
	}

	return c.JSON(fiber.Map{
		"query":   strings.TrimSpace(query),
		"hostels": hostelListResponse(hostels),
	})
}

type createHostelRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Country      string   `json:"country"`
	Address      string   `json:"address"`
	Website      string   `json:"website"`
	Email        string   `json:"email"`
	PhoneNumbers []string `json:"phone_numbers"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
}

// HandleCreateHostel publishes a new listing owned by the session user.
// Requires a partner account (enforced by middleware).
func (hc *HostelController) HandleCreateHostel(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req createHostelRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	hostel := &models.Hostel{
		UserID:       userCtx.UserID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Type:         strings.TrimSpace(req.Type),
		Country:      strings.TrimSpace(req.Country),
		Address:      strings.TrimSpace(req.Address),
		Website:      strings.TrimSpace(req.Website),
		Email:        strings.TrimSpace(req.Email),
		PhoneNumbers: req.PhoneNumbers,
		Amenities:    req.Amenities,
		Images:       req.Images,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
	if hostel.Type == "" {
		hostel.Type = "Hostel"
	}

	if err := hostel.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hc.hostelRepo.Create(hostel); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create listing")
	}

	// New listing invalidates the cached list
	if err := cache.Delete(hostelListCacheKey); err != nil {
		log.Printf("failed to invalidate hostel list cache: %v", err)
	}

	return c.Status(fiber.StatusCreated).JSON(hostelResponse(hostel))
}
