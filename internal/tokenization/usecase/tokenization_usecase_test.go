package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoService "github.com/allisson/pantoken/internal/crypto/service"
	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
	"github.com/allisson/pantoken/internal/tokenization/repository"
	tokenizationService "github.com/allisson/pantoken/internal/tokenization/service"
	tokenizationTesting "github.com/allisson/pantoken/internal/tokenization/testing"
	"github.com/allisson/pantoken/internal/tokenization/usecase/mocks"
)

const testAdminKey = "correct-horse-battery-staple"

type staticVerifier struct {
	key string
}

func (v staticVerifier) Verify(credential string) error {
	if credential != v.key {
		return tokenizationDomain.ErrUnauthorized
	}
	return nil
}

func newTestCipher(t *testing.T) cryptoService.AEAD {
	t.Helper()

	masterKey := tokenizationTesting.CreateMasterKey()
	t.Cleanup(masterKey.Close)

	cipher, err := cryptoService.NewAESGCM(masterKey.Key)
	require.NoError(t, err)
	return cipher
}

// newMemoryUseCase wires the use case against in-process dependencies.
func newMemoryUseCase(t *testing.T, cfg Config) (TokenizationUseCase, *repository.MemoryRecordRepository) {
	t.Helper()

	repo := repository.NewMemoryRecordRepository()
	uc := NewTokenizationUseCase(
		repo,
		tokenizationService.NewHexGenerator(tokenizationService.DefaultMaxGenerateAttempts),
		newTestCipher(t),
		staticVerifier{key: testAdminKey},
		cfg,
	)
	return uc, repo
}

// tamperingRepository rewrites records on the way out of the store.
type tamperingRepository struct {
	*repository.MemoryRecordRepository
	tamper func(*tokenizationDomain.EncryptedRecord)
}

func (r *tamperingRepository) Get(
	ctx context.Context,
	token tokenizationDomain.Token,
) (*tokenizationDomain.EncryptedRecord, error) {
	record, err := r.MemoryRecordRepository.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	r.tamper(record)
	return record, nil
}

func TestTokenizationUseCase_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	uc, repo := newMemoryUseCase(t, Config{Now: func() time.Time { return fixedNow }})

	details, err := uc.Tokenize(ctx, "4111 1111-1111 1111")
	require.NoError(t, err)

	_, err = tokenizationDomain.ParseToken(string(details.Token))
	require.NoError(t, err, "token must be 32 lowercase hex characters")
	assert.Equal(t, tokenizationDomain.MaskedPAN("411111XXXXXX1111"), details.MaskedPAN)
	assert.Equal(t, fixedNow, details.CreatedAt)
	assert.Equal(t, 1, repo.Len())

	t.Run("Describe", func(t *testing.T) {
		described, err := uc.Describe(ctx, string(details.Token))
		require.NoError(t, err)
		assert.Equal(t, details, described)
	})

	t.Run("Reveal", func(t *testing.T) {
		pan, err := uc.Reveal(ctx, string(details.Token), testAdminKey)
		require.NoError(t, err)
		assert.Equal(t, "4111111111111111", string(pan))
	})

	t.Run("StoredRecordHasNoPlaintext", func(t *testing.T) {
		record, err := repo.Get(ctx, details.Token)
		require.NoError(t, err)
		assert.NotContains(t, string(record.Ciphertext), "4111111111111111")
		assert.NotContains(t, string(record.Ciphertext), "1111")
		assert.Equal(t, details.Token.AssociatedData(), record.AssociatedData)
	})
}

func TestTokenizationUseCase_TokenizeSamePANTwice(t *testing.T) {
	ctx := context.Background()
	uc, repo := newMemoryUseCase(t, Config{})

	first, err := uc.Tokenize(ctx, tokenizationTesting.MastercardPAN)
	require.NoError(t, err)
	second, err := uc.Tokenize(ctx, tokenizationTesting.MastercardPAN)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, first.MaskedPAN, second.MaskedPAN)

	a, err := repo.Get(ctx, first.Token)
	require.NoError(t, err)
	b, err := repo.Get(ctx, second.Token)
	require.NoError(t, err)
	assert.NotEqual(t, a.Ciphertext, b.Ciphertext)
	assert.NotEqual(t, a.Nonce, b.Nonce)
}

func TestTokenizationUseCase_Tokenize_InvalidInput(t *testing.T) {
	inputs := map[string]string{
		"TooShort":      "12345",
		"Empty":         "",
		"Letters":       "4111-1111-1111-111a",
		"BadChecksum":   "4111111111111112",
		"TooLong":       "41111111111111111111",
		"OnlySeparator": " - - ",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			repo := &mocks.MockRecordRepository{}
			generator := &mocks.MockTokenGenerator{}
			uc := NewTokenizationUseCase(repo, generator, newTestCipher(t), staticVerifier{key: testAdminKey}, Config{})

			details, err := uc.Tokenize(context.Background(), input)
			assert.ErrorIs(t, err, tokenizationDomain.ErrInvalidPAN)
			assert.Nil(t, details)

			repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
			generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestTokenizationUseCase_Tokenize_SkipLuhn(t *testing.T) {
	uc, _ := newMemoryUseCase(t, Config{PANOptions: tokenizationDomain.PANOptions{SkipLuhn: true}})

	details, err := uc.Tokenize(context.Background(), "4111111111111112")
	require.NoError(t, err)
	assert.Equal(t, tokenizationDomain.MaskedPAN("411111XXXXXX1112"), details.MaskedPAN)

	pan, err := uc.Reveal(context.Background(), string(details.Token), testAdminKey)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111112", string(pan))
}

func TestTokenizationUseCase_Tokenize_Collisions(t *testing.T) {
	tokens := []tokenizationDomain.Token{
		"00000000000000000000000000000001",
		"00000000000000000000000000000002",
		"00000000000000000000000000000003",
		"00000000000000000000000000000004",
		"00000000000000000000000000000005",
	}

	t.Run("RetriesWithFreshNonce", func(t *testing.T) {
		repo := &mocks.MockRecordRepository{}
		generator := &mocks.MockTokenGenerator{}

		generator.On("Generate", mock.Anything, mock.Anything).Return(tokens[0], nil).Once()
		generator.On("Generate", mock.Anything, mock.Anything).Return(tokens[1], nil).Once()

		var seenNonces [][]byte
		capture := func(args mock.Arguments) {
			seenNonces = append(seenNonces, args.Get(1).(*tokenizationDomain.EncryptedRecord).Nonce)
		}
		repo.On("Put", mock.Anything, mock.Anything).Return(tokenizationDomain.ErrDuplicateNonce).Run(capture).Once()
		repo.On("Put", mock.Anything, mock.Anything).Return(nil).Run(capture).Once()

		uc := NewTokenizationUseCase(repo, generator, newTestCipher(t), staticVerifier{key: testAdminKey}, Config{})

		details, err := uc.Tokenize(context.Background(), tokenizationTesting.VisaPAN)
		require.NoError(t, err)
		assert.Equal(t, tokens[1], details.Token)

		require.Len(t, seenNonces, 2)
		assert.NotEqual(t, seenNonces[0], seenNonces[1])
		repo.AssertExpectations(t)
		generator.AssertExpectations(t)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		repo := &mocks.MockRecordRepository{}
		generator := &mocks.MockTokenGenerator{}

		for _, token := range tokens {
			generator.On("Generate", mock.Anything, mock.Anything).Return(token, nil).Once()
		}
		repo.On("Put", mock.Anything, mock.Anything).Return(tokenizationDomain.ErrDuplicateToken).Times(3)
		repo.On("Put", mock.Anything, mock.Anything).Return(tokenizationDomain.ErrDuplicateNonce).Times(2)

		uc := NewTokenizationUseCase(repo, generator, newTestCipher(t), staticVerifier{key: testAdminKey}, Config{})

		details, err := uc.Tokenize(context.Background(), tokenizationTesting.VisaPAN)
		assert.ErrorIs(t, err, tokenizationDomain.ErrStoreConflict)
		assert.Nil(t, details)

		repo.AssertNumberOfCalls(t, "Put", DefaultMaxInsertAttempts)
		generator.AssertNumberOfCalls(t, "Generate", DefaultMaxInsertAttempts)
	})

	t.Run("CustomAttemptBudget", func(t *testing.T) {
		repo := &mocks.MockRecordRepository{}
		generator := &mocks.MockTokenGenerator{}

		generator.On("Generate", mock.Anything, mock.Anything).Return(tokens[0], nil)
		repo.On("Put", mock.Anything, mock.Anything).Return(tokenizationDomain.ErrDuplicateToken)

		uc := NewTokenizationUseCase(
			repo,
			generator,
			newTestCipher(t),
			staticVerifier{key: testAdminKey},
			Config{MaxInsertAttempts: 2},
		)

		_, err := uc.Tokenize(context.Background(), tokenizationTesting.VisaPAN)
		assert.ErrorIs(t, err, tokenizationDomain.ErrStoreConflict)
		repo.AssertNumberOfCalls(t, "Put", 2)
	})
}

func TestTokenizationUseCase_Tokenize_Failures(t *testing.T) {
	token := tokenizationDomain.Token("0123456789abcdef0123456789abcdef")

	t.Run("GeneratorExhausted", func(t *testing.T) {
		repo := &mocks.MockRecordRepository{}
		generator := &mocks.MockTokenGenerator{}
		generator.On("Generate", mock.Anything, mock.Anything).
			Return(tokenizationDomain.Token(""), tokenizationDomain.ErrTokenSpaceExhausted)

		uc := NewTokenizationUseCase(repo, generator, newTestCipher(t), staticVerifier{key: testAdminKey}, Config{})

		_, err := uc.Tokenize(context.Background(), tokenizationTesting.VisaPAN)
		assert.ErrorIs(t, err, tokenizationDomain.ErrTokenSpaceExhausted)
		repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		repo := &mocks.MockRecordRepository{}
		generator := &mocks.MockTokenGenerator{}
		generator.On("Generate", mock.Anything, mock.Anything).Return(token, nil)
		repo.On("Put", mock.Anything, mock.Anything).Return(tokenizationDomain.ErrStoreUnavailable).Once()

		uc := NewTokenizationUseCase(repo, generator, newTestCipher(t), staticVerifier{key: testAdminKey}, Config{})

		_, err := uc.Tokenize(context.Background(), tokenizationTesting.VisaPAN)
		assert.ErrorIs(t, err, tokenizationDomain.ErrStoreUnavailable)
		repo.AssertNumberOfCalls(t, "Put", 1)
	})
}

func TestTokenizationUseCase_Reveal_Unauthorized(t *testing.T) {
	repo := &mocks.MockRecordRepository{}
	uc := NewTokenizationUseCase(
		repo,
		&mocks.MockTokenGenerator{},
		newTestCipher(t),
		staticVerifier{key: testAdminKey},
		Config{},
	)

	for _, credential := range []string{"", "wrong", testAdminKey + " "} {
		pan, err := uc.Reveal(context.Background(), "0123456789abcdef0123456789abcdef", credential)
		assert.ErrorIs(t, err, tokenizationDomain.ErrUnauthorized)
		assert.Empty(t, pan)
	}

	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestTokenizationUseCase_Authorize(t *testing.T) {
	repo := &mocks.MockRecordRepository{}
	uc := NewTokenizationUseCase(
		repo,
		&mocks.MockTokenGenerator{},
		newTestCipher(t),
		staticVerifier{key: testAdminKey},
		Config{},
	)

	assert.NoError(t, uc.Authorize(testAdminKey))
	for _, credential := range []string{"", "wrong", testAdminKey + " "} {
		assert.ErrorIs(t, uc.Authorize(credential), tokenizationDomain.ErrUnauthorized)
	}

	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestTokenizationUseCase_UnknownOrMalformedToken(t *testing.T) {
	repo := &mocks.MockRecordRepository{}
	unknown := tokenizationDomain.Token("ffffffffffffffffffffffffffffffff")
	repo.On("Get", mock.Anything, unknown).Return(nil, tokenizationDomain.ErrTokenNotFound)

	uc := NewTokenizationUseCase(
		repo,
		&mocks.MockTokenGenerator{},
		newTestCipher(t),
		staticVerifier{key: testAdminKey},
		Config{},
	)
	ctx := context.Background()

	_, err := uc.Reveal(ctx, string(unknown), testAdminKey)
	assert.ErrorIs(t, err, tokenizationDomain.ErrTokenNotFound)

	_, err = uc.Describe(ctx, string(unknown))
	assert.ErrorIs(t, err, tokenizationDomain.ErrTokenNotFound)

	for _, malformed := range []string{"", "not-a-token", "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF", "4111111111111111"} {
		_, err := uc.Reveal(ctx, malformed, testAdminKey)
		assert.ErrorIs(t, err, tokenizationDomain.ErrTokenNotFound)

		_, err = uc.Describe(ctx, malformed)
		assert.ErrorIs(t, err, tokenizationDomain.ErrTokenNotFound)
	}

	repo.AssertNumberOfCalls(t, "Get", 2)
}

func TestTokenizationUseCase_TamperDetection(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		tamper func(*tokenizationDomain.EncryptedRecord)
	}{
		{"CiphertextBitFlip", func(r *tokenizationDomain.EncryptedRecord) { r.Ciphertext[0] ^= 0x01 }},
		{"TagBitFlip", func(r *tokenizationDomain.EncryptedRecord) { r.Ciphertext[len(r.Ciphertext)-1] ^= 0x80 }},
		{"NonceBitFlip", func(r *tokenizationDomain.EncryptedRecord) { r.Nonce[0] ^= 0x01 }},
		{"TruncatedNonce", func(r *tokenizationDomain.EncryptedRecord) { r.Nonce = r.Nonce[:8] }},
		{"AssociatedDataChanged", func(r *tokenizationDomain.EncryptedRecord) {
			r.AssociatedData = []byte("pantoken:v1:ffffffffffffffffffffffffffffffff")
		}},
		{"TokenSwapped", func(r *tokenizationDomain.EncryptedRecord) {
			r.Token = "ffffffffffffffffffffffffffffffff"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &tamperingRepository{
				MemoryRecordRepository: repository.NewMemoryRecordRepository(),
				tamper:                 tt.tamper,
			}
			uc := NewTokenizationUseCase(
				repo,
				tokenizationService.NewHexGenerator(tokenizationService.DefaultMaxGenerateAttempts),
				newTestCipher(t),
				staticVerifier{key: testAdminKey},
				Config{},
			)

			details, err := uc.Tokenize(ctx, tokenizationTesting.VisaPAN)
			require.NoError(t, err)

			pan, err := uc.Reveal(ctx, string(details.Token), testAdminKey)
			assert.ErrorIs(t, err, tokenizationDomain.ErrTamperDetected)
			assert.Empty(t, pan)
			assert.NotContains(t, err.Error(), "4111")

			described, err := uc.Describe(ctx, string(details.Token))
			assert.ErrorIs(t, err, tokenizationDomain.ErrTamperDetected)
			assert.Nil(t, described)
		})
	}

	t.Run("CiphertextMovedToAnotherToken", func(t *testing.T) {
		cipher := newTestCipher(t)
		repo := repository.NewMemoryRecordRepository()
		uc := NewTokenizationUseCase(
			repo,
			tokenizationService.NewHexGenerator(tokenizationService.DefaultMaxGenerateAttempts),
			cipher,
			staticVerifier{key: testAdminKey},
			Config{},
		)

		victim, err := uc.Tokenize(ctx, tokenizationTesting.AmexPAN)
		require.NoError(t, err)
		stolen, err := repo.Get(ctx, victim.Token)
		require.NoError(t, err)

		// Replant the sealed PAN under a new token with matching associated data.
		moved := tokenizationDomain.Token("abcdefabcdefabcdefabcdefabcdefab")
		require.NoError(t, repo.Put(ctx, &tokenizationDomain.EncryptedRecord{
			Token:          moved,
			Ciphertext:     stolen.Ciphertext,
			Nonce:          append([]byte{stolen.Nonce[0] ^ 0xff}, stolen.Nonce[1:]...),
			AssociatedData: moved.AssociatedData(),
			CreatedAt:      stolen.CreatedAt,
		}))

		_, err = uc.Reveal(ctx, string(moved), testAdminKey)
		assert.ErrorIs(t, err, tokenizationDomain.ErrTamperDetected)
	})

	t.Run("DecryptsToNonPAN", func(t *testing.T) {
		cipher := newTestCipher(t)
		repo := repository.NewMemoryRecordRepository()
		uc := NewTokenizationUseCase(
			repo,
			&mocks.MockTokenGenerator{},
			cipher,
			staticVerifier{key: testAdminKey},
			Config{},
		)

		token := tokenizationDomain.Token("0123456789abcdef0123456789abcdef")
		ciphertext, nonce, err := cipher.Encrypt([]byte("not a card number"), token.AssociatedData())
		require.NoError(t, err)
		require.NoError(t, repo.Put(ctx, &tokenizationDomain.EncryptedRecord{
			Token:          token,
			Ciphertext:     ciphertext,
			Nonce:          nonce,
			AssociatedData: token.AssociatedData(),
			CreatedAt:      time.Now().UTC(),
		}))

		_, err = uc.Reveal(ctx, string(token), testAdminKey)
		assert.ErrorIs(t, err, tokenizationDomain.ErrTamperDetected)
	})
}

func TestTokenizationUseCase_Reveal_StoreUnavailable(t *testing.T) {
	repo := &mocks.MockRecordRepository{}
	token := tokenizationDomain.Token("0123456789abcdef0123456789abcdef")
	repo.On("Get", mock.Anything, token).Return(nil, tokenizationDomain.ErrStoreUnavailable)

	uc := NewTokenizationUseCase(
		repo,
		&mocks.MockTokenGenerator{},
		newTestCipher(t),
		staticVerifier{key: testAdminKey},
		Config{},
	)

	_, err := uc.Reveal(context.Background(), string(token), testAdminKey)
	assert.ErrorIs(t, err, tokenizationDomain.ErrStoreUnavailable)
	assert.False(t, errors.Is(err, tokenizationDomain.ErrTamperDetected))
}

func TestTokenizationUseCase_ManyTokensAreDistinct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping bulk tokenization in short mode")
	}

	ctx := context.Background()
	uc, repo := newMemoryUseCase(t, Config{})

	const total = 100_000
	seen := make(map[tokenizationDomain.Token]struct{}, total)
	for range total {
		details, err := uc.Tokenize(ctx, tokenizationTesting.VisaPAN)
		require.NoError(t, err)
		seen[details.Token] = struct{}{}
	}

	assert.Len(t, seen, total)
	assert.Equal(t, total, repo.Len())
}

func TestTokenizationUseCase_ConcurrentTokenize(t *testing.T) {
	ctx := context.Background()
	uc, repo := newMemoryUseCase(t, Config{})

	const workers = 16
	const perWorker = 200

	var mu sync.Mutex
	tokens := make(map[tokenizationDomain.Token]tokenizationDomain.PAN, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				pan := tokenizationDomain.PAN(tokenizationTesting.GeneratePAN("4", 16))
				details, err := uc.Tokenize(ctx, string(pan))
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				tokens[details.Token] = pan
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, tokens, workers*perWorker)
	assert.Equal(t, workers*perWorker, repo.Len())

	for token, want := range tokens {
		got, err := uc.Reveal(ctx, string(token), testAdminKey)
		require.NoError(t, err)
		require.Equal(t, string(want), string(got))
	}
}
