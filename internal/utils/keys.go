package utils

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// CookieKeys derives the HMAC and AES keys of a cookie store from one secret,
// so that SESSION_SECRET can be any length.
func CookieKeys(secret, purpose string) (hashKey, blockKey []byte, err error) {
	if secret == "" {
		return nil, nil, errors.New("SESSION_SECRET is not set")
	}

	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	hashKey = make([]byte, 32)
	blockKey = make([]byte, 32)
	if _, err := io.ReadFull(r, hashKey); err != nil {
		return nil, nil, err
	}
	if _, err := io.ReadFull(r, blockKey); err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}
