package mediastore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	cfg := &Config{}
	at := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	key := cfg.ObjectKey("8d0f0ae2-8a2f-4ab6-b0c3-0a6a1f1a2b3c", ".jpg", at)
	assert.Equal(t, "listings/2026/03/8d0f0ae2-8a2f-4ab6-b0c3-0a6a1f1a2b3c.jpg", key)
}

func TestPublicURL(t *testing.T) {
	withBase := &Config{PublicBaseURL: "https://cdn.hostelpad.app/", BucketName: "hostelpad-media"}
	assert.Equal(t, "https://cdn.hostelpad.app/listings/a.jpg", withBase.PublicURL("listings/a.jpg"))

	withEndpoint := &Config{EndpointURL: "https://s3.eu-central-003.backblazeb2.com", BucketName: "hostelpad-media"}
	assert.Equal(t,
		"https://s3.eu-central-003.backblazeb2.com/hostelpad-media/listings/a.jpg",
		withEndpoint.PublicURL("listings/a.jpg"))

	plain := &Config{BucketName: "hostelpad-media", Region: "us-west-001"}
	assert.Equal(t,
		"https://hostelpad-media.s3.us-west-001.amazonaws.com/listings/a.jpg",
		plain.PublicURL("listings/a.jpg"))
}
