package token

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RoomCode returns a short, human-typeable room code of length n.
// The ambiguous characters I, O, 0, and 1 are excluded.
func RoomCode(n int) (string, error) {
	code := make([]byte, n)
	for i := range code {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomCodeAlphabet))))
		if err != nil {
			return "", err
		}

		code[i] = roomCodeAlphabet[index.Int64()]
	}

	return string(code), nil
}

// Generate returns a crypto-secure random string of length n
// The random string is contains the following characters:
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_
func Generate(n int) (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	// base64 increases size by ~33%
	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}
