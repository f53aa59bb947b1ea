// Authenticated sealing of values written to disk by the file cache
package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	sealVersion byte = 1
	saltSize    int  = 32
	headerSize  int  = 1 + saltSize + chacha20poly1305.NonceSize
)

var ErrSealedFormat = errors.New("sealed value malformed")

// Encrypts plaintext with a per-value key derived from secret and a random salt.
// Namespace is mixed into the derivation and bound as additional data, so a value sealed
// for one key cannot be replayed under another.
// Layout: version | salt | nonce | ciphertext
func Seal(plaintext, secret []byte, namespace string) (sealed []byte, err error) {
	if len(secret) == 0 {
		err = fmt.Errorf("cannot seal with empty secret")
		return
	}

	header := make([]byte, headerSize)
	header[0] = sealVersion
	_, err = rand.Read(header[1:])
	if err != nil {
		err = fmt.Errorf("failed to populate salt and nonce: %w", err)
		return
	}
	salt := header[1 : 1+saltSize]
	nonce := header[1+saltSize:]

	key, err := deriveKey(secret, salt, namespace)
	if err != nil {
		return
	}

	aead, err := chacha20poly1305.New(key)
	Memzero(key)
	if err != nil {
		err = fmt.Errorf("failed creation of AEAD: %w", err)
		return
	}

	sealed = aead.Seal(header, nonce, plaintext, []byte(namespace))
	return
}

// Reverses Seal. Fails if the value was altered, sealed with another secret, or for another namespace.
func Open(sealed, secret []byte, namespace string) (plaintext []byte, err error) {
	if len(sealed) < headerSize+chacha20poly1305.Overhead || sealed[0] != sealVersion {
		err = ErrSealedFormat
		return
	}
	salt := sealed[1 : 1+saltSize]
	nonce := sealed[1+saltSize : headerSize]

	key, err := deriveKey(secret, salt, namespace)
	if err != nil {
		return
	}

	aead, err := chacha20poly1305.New(key)
	Memzero(key)
	if err != nil {
		err = fmt.Errorf("failed creation of AEAD: %w", err)
		return
	}

	plaintext, err = aead.Open(nil, nonce, sealed[headerSize:], []byte(namespace))
	if err != nil {
		err = fmt.Errorf("failed decryption of sealed value: %w", err)
		return
	}
	return
}

// HKDF-SHA512 derivation of a chacha20poly1305 key
func deriveKey(secret, salt []byte, namespace string) (key []byte, err error) {
	deriver := hkdf.New(sha512.New, secret, salt, []byte(namespace))

	key = make([]byte, chacha20poly1305.KeySize)
	_, err = deriver.Read(key)
	if err != nil {
		err = fmt.Errorf("failed to populate key with secure bytes: %w", err)
		return
	}
	return
}

// Overwrites key material in place
func Memzero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
