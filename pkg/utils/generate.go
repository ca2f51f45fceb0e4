package utils

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

// GenerateBookingReference creates the public booking identifier. ULIDs are
// opaque, unique, and sort by creation time, which keeps admin listings
// readable. Format: RT-<ULID>.
func GenerateBookingReference() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	return "RT-" + id.String()
}
