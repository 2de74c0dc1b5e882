package utils

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ==================== UUID & TOKEN ====================

// IsValidID is the identifier-validity predicate used before any lookup
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== BOOKING REFERENCE ====================

// GenerateBookingReference builds "HB" + last 6 digits of the unix-millis
// timestamp + 6 random base-36 characters, e.g. HB123456A1B2C3.
// Not unique by construction; bookings.booking_reference carries a unique index.
func GenerateBookingReference(now time.Time) string {
	millis := now.UnixMilli() % 1_000_000

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = referenceAlphabet[rand.IntN(len(referenceAlphabet))]
	}

	return fmt.Sprintf("HB%06d%s", millis, suffix)
}
