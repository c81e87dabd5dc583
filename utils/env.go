package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
)

// envLocations are tried in order of preference
var envLocations = []string{
	".env",        // Current directory
	".env.local",  // Local override
	"config/.env", // Config directory
}

// LoadEnv loads environment variables from a .env file. A missing file is
// not an error. Variables already set in the environment are kept.
func LoadEnv(filename string) (bool, error) {
	if err := godotenv.Load(filename); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("error loading %s: %w", filename, err)
	}
	log.Printf("Loaded environment variables from %s", filename)
	return true, nil
}

// LoadEnvWithFallback loads the first .env file found in the standard
// locations.
func LoadEnvWithFallback() error {
	for _, location := range envLocations {
		loaded, err := LoadEnv(location)
		if err != nil {
			log.Printf("Could not load %s: %v", location, err)
			continue
		}
		if loaded {
			return nil
		}
	}

	log.Printf("No .env files found in standard locations, using system environment only")
	return nil
}
