package controllers

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hostelpad/hostelpad/internal/pkg/mediastore"
)

const maxPhotoSize = 10 * 1024 * 1024 // 10 MB

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadController handles listing-photo uploads to object storage.
type UploadController struct {
	store *mediastore.Client
	cfg   *mediastore.Config
}

// NewUploadController creates an upload controller from its dependencies.
func NewUploadController(store *mediastore.Client, cfg *mediastore.Config) *UploadController {
	return &UploadController{store: store, cfg: cfg}
}

var uploadController *UploadController

// InitializeUploadController initializes the global upload controller. When
// media uploads are disabled the controller stays nil-backed and the handler
// reports the feature as unavailable.
func InitializeUploadController() {
	cfg, err := mediastore.LoadConfig()
	if err != nil {
		log.Printf("[Upload] invalid media storage config: %v", err)
		uploadController = NewUploadController(nil, nil)
		return
	}
	if !cfg.IsEnabled() {
		uploadController = NewUploadController(nil, cfg)
		return
	}

	store, err := mediastore.NewClient(cfg)
	if err != nil {
		log.Printf("[Upload] media storage unavailable: %v", err)
		uploadController = NewUploadController(nil, cfg)
		return
	}
	uploadController = NewUploadController(store, cfg)
}

// GetUploadController returns the global upload controller instance
func GetUploadController() *UploadController {
	if uploadController == nil {
		InitializeUploadController()
	}
	return uploadController
}

// HandleUploadPhoto accepts a multipart photo, stores it under a generated
// object key and returns the public URL for use in a listing's images.
func (uc *UploadController) HandleUploadPhoto(c *fiber.Ctx) error {
	if uc.store == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "uploads_disabled", "Photo uploads are not available")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "No photo provided")
	}

	if fileHeader.Size > maxPhotoSize {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "file_too_large", "Photo exceeds the 10 MB limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedPhotoTypes[contentType] {
		return jsonError(c, fiber.StatusUnsupportedMediaType, "unsupported_type", "Only JPEG, PNG and WebP photos are accepted")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to read photo")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = extensionForType(contentType)
	}
	objectKey := uc.cfg.ObjectKey(uuid.New().String(), ext, time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := uc.store.Upload(ctx, file, objectKey, contentType, fileHeader.Size)
	if err != nil {
		log.Printf("[Upload] failed to store %s: %v", objectKey, err)
		return jsonError(c, fiber.StatusInternalServerError, "upload_failed", "Photo could not be stored")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url":        result.PublicURL,
		"object_key": result.ObjectKey,
		"size":       result.Size,
	})
}

func extensionForType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
