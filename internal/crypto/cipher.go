// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

var (
	// ErrKeyNotSet is returned when Encrypt or Decrypt is called before
	// DeriveKey.
	ErrKeyNotSet = errors.New("encryption key not initialized")

	// ErrDecryption is returned (wrapped) when a ciphertext fails
	// authentication. Decrypt never returns wrong plaintext silently.
	ErrDecryption = errors.New("decryption failed")
)

const (
	// kdfIterations is the PBKDF2-SHA256 iteration count. Fixed high value
	// shared across all devices of an account; lowering it would silently
	// derive a different key.
	kdfIterations = 600_000

	keyLen   = 32 // 256-bit key
	nonceLen = 12 // 96-bit GCM nonce
)

// aesCipher is the private implementation of [Cipher]. It holds the derived
// key under a read-write mutex so a background sync and a foreground key
// derivation cannot race.
type aesCipher struct {
	mu  sync.RWMutex
	key []byte
}

// NewCipher constructs an uninitialized [Cipher]. DeriveKey must be called
// before Encrypt or Decrypt.
func NewCipher() Cipher {
	return &aesCipher{}
}

// DeriveKey implements [Cipher]. It stretches the passphrase with
// PBKDF2-SHA256 into a 256-bit AES key.
func (c *aesCipher) DeriveKey(passphrase string, salt []byte) {
	key := pbkdf2.Key([]byte(passphrase), salt, kdfIterations, keyLen, sha256.New)

	c.mu.Lock()
	c.key = key
	c.mu.Unlock()
}

// KeyInitialized implements [Cipher].
func (c *aesCipher) KeyInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.key) == keyLen
}

// Encrypt implements [Cipher]. It seals plaintext with AES-256-GCM under a
// random 12-byte nonce read from the OS CSPRNG. The nonce is returned
// separately because the wire format carries it as its own field. Nonces are
// never derived from a counter: a shared counter across devices would repeat
// under the same key.
func (c *aesCipher) Encrypt(plaintext []byte) (string, string, error) {
	gcm, err := c.gcm()
	if err != nil {
		return "", "", err
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(ciphertext),
		base64.StdEncoding.EncodeToString(nonce), nil
}

// Decrypt implements [Cipher]. It opens a ciphertext sealed by Encrypt and
// verifies its authentication tag. An ErrDecryption result almost always
// means a corrupted blob or a key derived from the wrong passphrase.
func (c *aesCipher) Decrypt(ciphertext, nonce string) ([]byte, error) {
	gcm, err := c.gcm()
	if err != nil {
		return nil, err
	}

	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: decode ciphertext: %v", ErrDecryption, err)
	}
	rawNonce, err := base64.StdEncoding.DecodeString(nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: decode nonce: %v", ErrDecryption, err)
	}
	if len(rawNonce) != nonceLen {
		return nil, fmt.Errorf("%w: nonce must be %d bytes", ErrDecryption, nonceLen)
	}

	plaintext, err := gcm.Open(nil, rawNonce, blob, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	return plaintext, nil
}

// Checksum implements [Cipher].
func (c *aesCipher) Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (c *aesCipher) gcm() (cipher.AEAD, error) {
	c.mu.RLock()
	key := c.key
	c.mu.RUnlock()

	if len(key) != keyLen {
		return nil, ErrKeyNotSet
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
