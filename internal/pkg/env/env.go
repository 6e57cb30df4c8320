package env

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var values map[string]string

// GetEnv resolves key from the loaded .env file first, then the process
// environment (Docker and CI set variables directly), then the default.
func GetEnv(key, def string) string {
	if v, ok := values[key]; ok {
		return v
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvInt64 resolves key as a base-10 integer. Unset values return the
// default; unparseable values are logged and return the default.
func GetEnvInt64(key string, def int64) int64 {
	raw := GetEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %d: %v", key, raw, def, err)
		return def
	}
	return v
}

// SetupEnvFile loads the .env file from the repository root. Binaries run
// from their cmd/ directory during development, so parent directories are
// probed as well.
func SetupEnvFile() {
	for _, path := range []string{".env", "../../.env", "../../../.env"} {
		parsed, err := godotenv.Read(path)
		if err == nil {
			values = parsed
			return
		}
	}

	panic("No .env file found in any of the expected locations")
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
