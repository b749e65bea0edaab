/*
Package randx provides generation of unique identifiers and random storage keys.

Identifiers are standard UUID v4 strings; photo storage keys combine a place
scope with a random Base62 suffix generated from crypto/rand.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars is the character set used for random key suffixes (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the number of characters in the Base62 set.
	Base62Len = int64(len(Base62Chars))

	// PhotoKeySuffixLength is the length of the random part of a photo storage key.
	PhotoKeySuffixLength = 12
)

// NewID generates a UUID v4 string used as the identifier for accounts,
// places, ratings, and comments.
func NewID() string {
	return uuid.New().String()
}

// base62String returns a crypto-random Base62 string of the given length.
func base62String(length int) (string, error) {
	result := make([]byte, length)

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random base62 character: %v", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// PhotoKey builds an object storage key for a place photo, scoped under the
// place ID with a random suffix so re-uploads never collide.
func PhotoKey(placeID, ext string) (string, error) {
	suffix, err := base62String(PhotoKeySuffixLength)
	if err != nil {
		return "", err
	}

	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "jpg"
	}

	return fmt.Sprintf("places/%s/%s.%s", placeID, suffix, ext), nil
}

// IsValidID reports whether s parses as a UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
