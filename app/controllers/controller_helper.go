package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hostelpad/hostelpad/app/models"
	"github.com/hostelpad/hostelpad/internal/pkg/session"
	"github.com/hostelpad/hostelpad/internal/pkg/usercontext"
)

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// loginUserSession writes the authenticated user into the request session.
func loginUserSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyUserRole, user.Role)
	sess.Set(usercontext.KeyIsAdmin, user.Role == models.ROLE_ADMIN)

	return sess.Save()
}

func hostelResponse(h *models.Hostel) fiber.Map {
	return fiber.Map{
		"uuid":          h.UUID,
		"name":          h.Name,
		"description":   h.Description,
		"type":          h.Type,
		"country":       h.Country,
		"address":       h.Address,
		"website":       h.Website,
		"email":         h.Email,
		"phone_numbers": h.PhoneNumbers,
		"amenities":     h.Amenities,
		"images":        h.Images,
		"exact_location": fiber.Map{
			"lat": h.Latitude,
			"lng": h.Longitude,
		},
		"created_at": h.CreatedAt,
	}
}

func hostelListResponse(hostels []models.Hostel) []fiber.Map {
	out := make([]fiber.Map, 0, len(hostels))
	for i := range hostels {
		out = append(out, hostelResponse(&hostels[i]))
	}
	return out
}
