package utils

import (
	"crypto/rand"
	"math/big"
	"os"

	"golang.org/x/exp/constraints"
)

var randLetter = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// RandString returns n length random string [a-zA-Z0-9]+
func RandString(n int) string {
	s := make([]byte, n)
	for i := range s {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(randLetter))))
		if err != nil {
			panic(err)
		}
		s[i] = randLetter[num.Int64()]
	}
	return string(s)
}

// FileExist returns whether file in path exist.
func FileExist(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	return true
}

func Max[T constraints.Ordered](a T, b T) T {
	if a > b {
		return a
	}
	return b
}
