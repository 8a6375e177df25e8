// Package randx generates cryptographically secure random identifiers:
// record UUIDs and Base62 avatar object keys for the storage bucket.
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding.
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the number of characters in the Base62 set.
	Base62Len = int64(len(Base62Chars))

	// AvatarKeyPrefix is the bucket folder for avatar objects.
	AvatarKeyPrefix = "avatars/"

	// AvatarKeyRawLength is the length of the random part of an avatar key.
	AvatarKeyRawLength = 16
)

// NewID generates a UUID v4 string used as a record primary key.
func NewID() string {
	return uuid.New().String()
}

// AvatarKey generates a random object key under the avatar prefix.
func AvatarKey() (string, error) {
	result := make([]byte, AvatarKeyRawLength)

	for i := range AvatarKeyRawLength {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for avatar key: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return AvatarKeyPrefix + string(result), nil
}

// IsValidAvatarKey checks that a client-submitted avatar key has the
// exact shape AvatarKey produces, so profile updates cannot point a
// user's avatar at arbitrary bucket objects.
func IsValidAvatarKey(key string) bool {
	if !strings.HasPrefix(key, AvatarKeyPrefix) {
		return false
	}

	rawKey := key[len(AvatarKeyPrefix):]

	if len(rawKey) != AvatarKeyRawLength {
		return false
	}

	for _, char := range rawKey {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
