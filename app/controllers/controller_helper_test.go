package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/hostelpad/hostelpad/app/models"
)

func TestHostelResponseShape(t *testing.T) {
	h := &models.Hostel{
		UUID:      "8d0f0ae2-8a2f-4ab6-b0c3-0a6a1f1a2b3c",
		Name:      "Sunrise Hostel",
		Country:   "Ghana",
		Address:   "12 Osu Lane, Accra",
		Amenities: models.StringList{"WiFi"},
		Latitude:  5.556,
		Longitude: -0.1969,
	}

	resp := hostelResponse(h)
	assert.Equal(t, h.UUID, resp["uuid"])
	assert.Equal(t, h.Name, resp["name"])

	loc, ok := resp["exact_location"].(fiber.Map)
	assert.True(t, ok)
	assert.Equal(t, h.Latitude, loc["lat"])
	assert.Equal(t, h.Longitude, loc["lng"])
}

func TestHostelListResponseEmpty(t *testing.T) {
	out := hostelListResponse(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
