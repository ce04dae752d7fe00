package utils

import (
	"crypto/rand"
	"math/big"
)

// Uppercase alphanumerics minus the lookalikes (0/O, 1/I) so codes survive
// being read aloud or retyped from an email.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomCode returns an n-character random code suffix.
func RandomCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand unavailable: " + err.Error())
		}
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b)
}
