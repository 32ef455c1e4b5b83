//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// Package crypto holds the credential store: one-way password hashing with a
// per-call random salt and constant-time verification.
package crypto

// PasswordHasher hashes and verifies user passwords. Implementations never
// return or log the plaintext.
type PasswordHasher interface {
	// Hash returns an encoded, salted one-way digest of plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. It fails closed:
	// a malformed digest yields false rather than an error.
	Verify(plaintext, digest string) bool
}
