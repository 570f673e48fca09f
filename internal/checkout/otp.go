package checkout

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
)

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashOTP(sessionID, code string) string {
	sum := sha256.Sum256([]byte(sessionID + ":" + code))
	return hex.EncodeToString(sum[:])
}

func otpMatches(sessionID, code, storedHash string) bool {
	got := hashOTP(sessionID, code)
	return subtle.ConstantTimeCompare([]byte(got), []byte(storedHash)) == 1
}
