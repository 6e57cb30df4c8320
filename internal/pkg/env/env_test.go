package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvPrecedence(t *testing.T) {
	values = map[string]string{"APP_PORT": "4001"}
	defer func() { values = nil }()

	t.Setenv("APP_PORT", "9999")
	t.Setenv("DB_HOST", "db.internal")

	assert.Equal(t, "4001", GetEnv("APP_PORT", "4000"))
	assert.Equal(t, "db.internal", GetEnv("DB_HOST", "127.0.0.1"))
	assert.Equal(t, "fallback", GetEnv("MISSING_KEY", "fallback"))
}

func TestGetEnvInt64(t *testing.T) {
	values = map[string]string{
		"PAYSTACK_EXPECTED_PRICE": "5000",
		"BAD_PRICE":               "fifty",
	}
	defer func() { values = nil }()

	assert.Equal(t, int64(5000), GetEnvInt64("PAYSTACK_EXPECTED_PRICE", 0))
	assert.Equal(t, int64(0), GetEnvInt64("BAD_PRICE", 0))
	assert.Equal(t, int64(7), GetEnvInt64("UNSET_PRICE", 7))
}
