package usecase

import (
	"bytes"
	"context"
	"time"

	authService "github.com/allisson/pantoken/internal/auth/service"
	cryptoDomain "github.com/allisson/pantoken/internal/crypto/domain"
	cryptoService "github.com/allisson/pantoken/internal/crypto/service"
	apperrors "github.com/allisson/pantoken/internal/errors"
	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
	tokenizationService "github.com/allisson/pantoken/internal/tokenization/service"
)

// DefaultMaxInsertAttempts bounds how many times Tokenize retries a store insert that
// collided on token or nonce.
const DefaultMaxInsertAttempts = 5

// Config holds tunables for the tokenization use case.
type Config struct {
	MaxInsertAttempts int
	PANOptions        tokenizationDomain.PANOptions
	// Now defaults to time.Now.
	Now func() time.Time
}

type tokenizationUseCase struct {
	recordRepo        RecordRepository
	generator         tokenizationService.TokenGenerator
	cipher            cryptoService.AEAD
	verifier          authService.AdminVerifier
	maxInsertAttempts int
	panOptions        tokenizationDomain.PANOptions
	now               func() time.Time
}

// NewTokenizationUseCase creates a TokenizationUseCase. cipher must be keyed with the
// master key; verifier holds the admin credential.
func NewTokenizationUseCase(
	recordRepo RecordRepository,
	generator tokenizationService.TokenGenerator,
	cipher cryptoService.AEAD,
	verifier authService.AdminVerifier,
	cfg Config,
) TokenizationUseCase {
	maxInsertAttempts := cfg.MaxInsertAttempts
	if maxInsertAttempts < 1 {
		maxInsertAttempts = DefaultMaxInsertAttempts
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &tokenizationUseCase{
		recordRepo:        recordRepo,
		generator:         generator,
		cipher:            cipher,
		verifier:          verifier,
		maxInsertAttempts: maxInsertAttempts,
		panOptions:        cfg.PANOptions,
		now:               now,
	}
}

func (t *tokenizationUseCase) Tokenize(
	ctx context.Context,
	rawInput string,
) (*tokenizationDomain.TokenDetails, error) {
	pan, err := tokenizationDomain.ParsePANWithOptions(rawInput, t.panOptions)
	if err != nil {
		return nil, err
	}

	plaintext := []byte(pan)
	defer cryptoDomain.Zero(plaintext)

	for attempt := 0; attempt < t.maxInsertAttempts; attempt++ {
		token, err := t.generator.Generate(ctx, t.recordRepo.Exists)
		if err != nil {
			return nil, err
		}

		// Each attempt seals again so a colliding nonce is never reused
		aad := token.AssociatedData()
		ciphertext, nonce, err := t.cipher.Encrypt(plaintext, aad)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to encrypt PAN")
		}

		record := &tokenizationDomain.EncryptedRecord{
			Token:          token,
			Ciphertext:     ciphertext,
			Nonce:          nonce,
			AssociatedData: aad,
			CreatedAt:      t.now().UTC(),
		}

		err = t.recordRepo.Put(ctx, record)
		switch {
		case err == nil:
			return &tokenizationDomain.TokenDetails{
				Token:     token,
				MaskedPAN: tokenizationDomain.MaskPAN(pan),
				CreatedAt: record.CreatedAt,
			}, nil
		case apperrors.Is(err, tokenizationDomain.ErrDuplicateToken),
			apperrors.Is(err, tokenizationDomain.ErrDuplicateNonce):
			continue
		default:
			return nil, err
		}
	}

	return nil, tokenizationDomain.ErrStoreConflict
}

func (t *tokenizationUseCase) Authorize(credential string) error {
	if err := t.verifier.Verify(credential); err != nil {
		return tokenizationDomain.ErrUnauthorized
	}
	return nil
}

func (t *tokenizationUseCase) Reveal(
	ctx context.Context,
	token, credential string,
) (tokenizationDomain.PAN, error) {
	if err := t.Authorize(credential); err != nil {
		return "", err
	}

	_, pan, err := t.open(ctx, token)
	if err != nil {
		return "", err
	}

	return pan, nil
}

func (t *tokenizationUseCase) Describe(
	ctx context.Context,
	token string,
) (*tokenizationDomain.TokenDetails, error) {
	record, pan, err := t.open(ctx, token)
	if err != nil {
		return nil, err
	}

	return &tokenizationDomain.TokenDetails{
		Token:     record.Token,
		MaskedPAN: tokenizationDomain.MaskPAN(pan),
		CreatedAt: record.CreatedAt,
	}, nil
}

// open loads and authenticates the record for token. A malformed token cannot be stored,
// so it is reported as not found without touching the store.
func (t *tokenizationUseCase) open(
	ctx context.Context,
	rawToken string,
) (*tokenizationDomain.EncryptedRecord, tokenizationDomain.PAN, error) {
	token, err := tokenizationDomain.ParseToken(rawToken)
	if err != nil {
		return nil, "", tokenizationDomain.ErrTokenNotFound
	}

	record, err := t.recordRepo.Get(ctx, token)
	if err != nil {
		return nil, "", err
	}

	aad := token.AssociatedData()
	if record.Token != token || !bytes.Equal(record.AssociatedData, aad) {
		return nil, "", apperrors.Wrapf(tokenizationDomain.ErrTamperDetected, "token %s: associated data mismatch", token)
	}

	plaintext, err := t.cipher.Decrypt(record.Ciphertext, record.Nonce, aad)
	if err != nil {
		return nil, "", apperrors.Wrapf(tokenizationDomain.ErrTamperDetected, "token %s: authentication failed", token)
	}
	defer cryptoDomain.Zero(plaintext)

	// The checksum was enforced when the record was written and may be disabled now
	pan, err := tokenizationDomain.ParsePANWithOptions(
		string(plaintext),
		tokenizationDomain.PANOptions{SkipLuhn: true},
	)
	if err != nil {
		return nil, "", apperrors.Wrapf(tokenizationDomain.ErrTamperDetected, "token %s: decrypted value is not a PAN", token)
	}

	return record, pan, nil
}
