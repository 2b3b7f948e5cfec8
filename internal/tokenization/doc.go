/*
Package tokenization exchanges card numbers (PANs) for opaque tokens.

A PAN is validated, sealed with an AEAD cipher under the master key and stored next to a
random token. Callers keep the token and a masked PAN; the plaintext only leaves the service
through the admin-gated reveal operation.

# Architecture

The module follows Clean Architecture principles:
  - domain: PAN, Token, EncryptedRecord, masking, Luhn and the error taxonomy
  - service: Random hex token generation with collision checks
  - usecase: Tokenize, Reveal and Describe orchestration plus the metrics decorator
  - repository: Record stores (memory, SQLite, PostgreSQL, MySQL)
  - http: Gin handlers and DTOs

# Record Format

Each record holds the token, the AEAD ciphertext with its 16-byte tag, a 12-byte random
nonce, the associated data and the creation time. The associated data is

	pantoken:v1:<token>

so a ciphertext copied under another token fails authentication. Stores enforce a unique
token and a unique nonce; Tokenize retries with a fresh token and nonce on either conflict.

# Basic Usage

Tokenize a card number:

	details, err := tokenizationUseCase.Tokenize(ctx, "4111 1111 1111 1111")
	// details.Token     = "3f0c9e1b..."  (32 hex characters)
	// details.MaskedPAN = "411111XXXXXX1111"

Describe a token without revealing the PAN:

	details, err := tokenizationUseCase.Describe(ctx, token)

Reveal the PAN (admin only):

	pan, err := tokenizationUseCase.Reveal(ctx, token, adminCredential)

The credential is checked before the store is read. A record that fails authentication
returns ErrTamperDetected, which the HTTP layer reports as a generic 500 and logs with
security_event=tamper_detected.

# Logging

PAN implements fmt.Stringer and slog.LogValuer with its masked form, so a PAN passed to
a logger by mistake is never written in clear.
*/
package tokenization
