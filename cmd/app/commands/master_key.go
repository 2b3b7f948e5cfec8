package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/pantoken/internal/crypto/domain"
)

// MasterKeyWrapper encrypts a master key with a KMS. cryptoService.KMSService satisfies it.
type MasterKeyWrapper interface {
	WrapMasterKey(ctx context.Context, keyURI string, key []byte) (string, error)
}

// RunCreateMasterKey generates a 32-byte master key and prints the environment variables
// that load it. Without KMS parameters the key is printed hex encoded. With both KMS
// parameters the key is wrapped and only its KMS ciphertext is printed.
//
// The key material is zeroed before returning.
func RunCreateMasterKey(
	ctx context.Context,
	wrapper MasterKeyWrapper,
	logger *slog.Logger,
	writer io.Writer,
	kmsProvider, kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri are required together")
	}

	masterKey := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(masterKey)

	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}

	if kmsProvider == "" {
		logger.Warn("master key printed in plaintext, prefer a KMS in production")

		_, _ = fmt.Fprintln(writer, "# Master Key Configuration")
		_, _ = fmt.Fprintln(writer, "# Copy this variable to your .env file or secrets manager")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "MASTER_KEY=\"%s\"\n", hex.EncodeToString(masterKey))
		return nil
	}

	encodedKey, err := wrapper.WrapMasterKey(ctx, kmsKeyURI, masterKey)
	if err != nil {
		return fmt.Errorf("failed to wrap master key: %w", err)
	}

	logger.Info("master key wrapped with KMS", slog.String("kms_provider", kmsProvider))

	_, _ = fmt.Fprintln(writer, "# Master Key Configuration (KMS Mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "MASTER_KEY=\"%s\"\n", encodedKey)

	return nil
}
