package bookings

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Suffix alphabet skips 0/O and 1/I so references survive being read over
// the phone.
const referenceAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const referenceSuffixLen = 4

// NewReference builds a customer-facing booking reference, e.g.
// CW-20260829-7KQ4.
func NewReference(now time.Time) (string, error) {
	buf := make([]byte, referenceSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating reference suffix: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return fmt.Sprintf("CW-%s-%s", now.UTC().Format("20060102"), string(buf)), nil
}
