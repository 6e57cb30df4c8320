package mediastore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hostelpad/hostelpad/internal/pkg/env"
)

// Config holds S3-compatible object storage configuration for listing photos
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string // Optional CDN/public base for returned URLs
	Enabled         bool
}

// LoadConfig loads media storage configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-west-001"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
		Enabled:         env.GetEnv("MEDIA_UPLOADS_ENABLED", "false") == "true",
	}

	// Validate required fields if media uploads are enabled
	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when media uploads are enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when media uploads are enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when media uploads are enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if media uploads are enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// ObjectKey generates a standardized object key for a listing photo
func (c *Config) ObjectKey(photoUUID, fileExtension string, t time.Time) string {
	// Format: listings/YYYY/MM/UUID.ext
	return fmt.Sprintf("listings/%04d/%02d/%s%s", t.Year(), int(t.Month()), photoUUID, fileExtension)
}

// PublicURL returns the public URL for an object key
func (c *Config) PublicURL(objectKey string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/") + "/" + objectKey
	}
	if c.EndpointURL != "" {
		return strings.TrimRight(c.EndpointURL, "/") + "/" + c.BucketName + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.BucketName, c.Region, objectKey)
}
