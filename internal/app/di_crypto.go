package app

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/pantoken/internal/crypto/domain"
	cryptoService "github.com/allisson/pantoken/internal/crypto/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// Cipher returns the AEAD keyed with the master key. The raw key is zeroed once the
// cipher holds its expanded copy.
func (c *Container) Cipher() (cryptoService.AEAD, error) {
	var err error
	c.cipherInit.Do(func() {
		c.cipher, err = c.initCipher()
		if err != nil {
			c.initErrors["cipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cipher"]; exists {
		return nil, storedErr
	}
	return c.cipher, nil
}

// initCipher loads the master key, unwrapping it with the KMS when one is configured.
func (c *Container) initCipher() (cryptoService.AEAD, error) {
	algorithm, err := cryptoDomain.ParseAlgorithm(c.config.AEADAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse aead algorithm: %w", err)
	}

	var masterKey *cryptoDomain.MasterKey
	if c.config.UsesKMS() {
		masterKey, err = c.KMSService().UnwrapMasterKey(context.Background(), c.config.KMSKeyURI, c.config.MasterKey)
	} else {
		masterKey, err = cryptoDomain.ParseMasterKey(c.config.MasterKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load master key: %w", err)
	}
	defer masterKey.Close()

	cipher, err := c.AEADManager().CreateCipher(masterKey.Key, algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	c.Logger().Info("master key loaded",
		slog.String("algorithm", string(algorithm)),
		slog.Bool("kms", c.config.UsesKMS()),
	)

	return cipher, nil
}
