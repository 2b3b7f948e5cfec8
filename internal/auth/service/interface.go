// Package service provides the admin credential checks that gate PAN reversal.
package service

// SecretService generates and hashes admin API keys.
type SecretService interface {
	// GenerateAdminKey creates a new random admin key and its Argon2id hash.
	// The plain key is shown to the operator once and never stored.
	GenerateAdminKey() (key string, hash string, err error)

	// HashAdminKey hashes a plain admin key with Argon2id.
	HashAdminKey(key string) (hash string, err error)

	// CompareAdminKey reports whether key matches hash in constant time.
	CompareAdminKey(key string, hash string) bool
}

// AdminVerifier checks the proof a caller presents for the reversal capability.
type AdminVerifier interface {
	// Verify returns nil when credential matches the configured admin credential and
	// ErrUnauthorized otherwise. Timing does not depend on where the inputs differ.
	Verify(credential string) error
}
