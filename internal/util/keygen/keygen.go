// Package keygen provides utilities for generating credentials.
//
// This package generates random passwords suitable for database accounts,
// drawing from crypto/rand so that every provisioning run receives a
// distinct secret.
package keygen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// passwordAlphabet contains the characters used for generated passwords.
// Shell- and SQL-sensitive characters (quotes, backslash, dollar) are
// deliberately excluded so generated values can be embedded in remote
// commands without escaping.
const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"-_.+=:@%^,"

// Password generates a random password of the given length.
func Password(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("password length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}

	return string(buf), nil
}
