// Package http provides HTTP middleware and utilities for admin authentication.
package http

import (
	"context"
)

// adminCredentialKey is a context key type for storing the presented admin credential.
type adminCredentialKey struct{}

// WithAdminCredential stores the credential presented by the caller in the context.
// The credential is not verified at this point.
func WithAdminCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, adminCredentialKey{}, credential)
}

// GetAdminCredential retrieves the presented admin credential from the context.
// Returns ("", false) if the middleware did not run.
func GetAdminCredential(ctx context.Context) (string, bool) {
	credential, ok := ctx.Value(adminCredentialKey{}).(string)
	return credential, ok
}
