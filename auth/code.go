// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of characters in a pool join code
const CodeLength = 6

// codeAlphabet excludes the look-alikes 0, O, 1, I and L
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// GeneratePoolCode creates a random, uppercase, human-shareable pool code
func GeneratePoolCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))

	code := make([]byte, CodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate pool code: %w", err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}

	return string(code), nil
}
