package oauth

import (
	"crypto/rand"
	"crypto/subtle"
)

func GenerateState() string {
	return rand.Text()
}

func ValidateState(expected string, received string) bool {
	return expected != "" && subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}
