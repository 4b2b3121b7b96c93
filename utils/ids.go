package utils

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// GenerateLotCode returns a human-readable lot code such as "REV-4821".
// Codes are not guaranteed unique on their own; the auction id is the key.
func GenerateLotCode() string {
	return fmt.Sprintf("REV-%d", 1000+rand.Intn(9000))
}
