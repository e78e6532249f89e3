package utils

import (
	"crypto/md5"
	"encoding/hex"
	"math/rand"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RandomAlphabetString generates a random lowercase string of length n.
func RandomAlphabetString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// TextToMd5Hash returns the hex md5 digest of the input text.
func TextToMd5Hash(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}
