package slug

import (
	"crypto/rand"
	mathrand "math/rand/v2"
)

const (
	suffixAlphabetLower = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixAlphabetMixed = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// randomSuffix returns n random characters from [a-z0-9], or [a-zA-Z0-9]
// when lowercase is false.
func randomSuffix(n int, lowercase bool) string {
	if n <= 0 {
		return ""
	}

	alphabet := suffixAlphabetMixed
	if lowercase {
		alphabet = suffixAlphabetLower
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to math/rand.
		for i := range buf {
			buf[i] = byte(mathrand.UintN(256))
		}
	}

	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
