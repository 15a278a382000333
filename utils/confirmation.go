package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const confirmationAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateConfirmationID returns a new human-shareable confirmation code
// of the form CTX-<year>-<6 random base36 characters>.
func GenerateConfirmationID() string {
	code := make([]byte, 6)
	max := big.NewInt(int64(len(confirmationAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a time-derived index rather than panicking.
			code[i] = confirmationAlphabet[time.Now().UnixNano()%int64(len(confirmationAlphabet))]
			continue
		}
		code[i] = confirmationAlphabet[n.Int64()]
	}

	return fmt.Sprintf("CTX-%d-%s", time.Now().Year(), string(code))
}
