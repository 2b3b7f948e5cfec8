package app

import (
	"fmt"

	authService "github.com/allisson/pantoken/internal/auth/service"
)

// SecretService returns the Argon2id admin key hasher.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// AdminVerifier returns the verifier guarding PAN reversal.
func (c *Container) AdminVerifier() (authService.AdminVerifier, error) {
	var err error
	c.adminVerifierInit.Do(func() {
		c.adminVerifier, err = authService.NewAdminVerifier(
			c.config.AdminAPIKey,
			c.config.AdminAPIKeyHash,
			c.SecretService(),
		)
		if err != nil {
			err = fmt.Errorf("failed to create admin verifier: %w", err)
			c.initErrors["adminVerifier"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminVerifier"]; exists {
		return nil, storedErr
	}
	return c.adminVerifier, nil
}
