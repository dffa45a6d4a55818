package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_mock.go -package=mock

// Cipher owns all client-side cryptography. It knows nothing about the
// network, the local database, or tasks; its only job is to derive the
// encryption key and turn plaintext into opaque blobs and back.
//
// Usage:
//
//	DeriveKey(passphrase, salt)              (once, after the salt is known)
//	blob, nonce = Encrypt(plaintext)         (fresh nonce per call)
//	plaintext   = Decrypt(blob, nonce)
//	sum         = Checksum(plaintext)        (tamper detection on the wire)
type Cipher interface {
	// DeriveKey derives the 256-bit encryption key from the passphrase and
	// salt and stores it for all subsequent calls. The key exists only in
	// memory and never leaves the device.
	DeriveKey(passphrase string, salt []byte)

	// KeyInitialized reports whether DeriveKey has been called.
	KeyInitialized() bool

	// Encrypt seals plaintext under the derived key with a fresh random
	// nonce. Both outputs are base64 (standard encoding). Fails with
	// ErrKeyNotSet if the key has not been derived.
	Encrypt(plaintext []byte) (ciphertext, nonce string, err error)

	// Decrypt opens a ciphertext produced by Encrypt. Fails with a wrapped
	// ErrDecryption on authentication-tag mismatch and with ErrKeyNotSet if
	// the key has not been derived.
	Decrypt(ciphertext, nonce string) ([]byte, error)

	// Checksum returns the hex-encoded SHA-256 digest of data. Submitted
	// with every create/update operation so the server round-trip can
	// detect corruption in transit.
	Checksum(data []byte) string
}
