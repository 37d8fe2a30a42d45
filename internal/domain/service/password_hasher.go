// Package service declares the ports the usecases call out through.
package service

// PasswordHasher turns plaintext passwords into stored digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Check reports whether password produces hash.
	Check(password, hash string) bool
}
