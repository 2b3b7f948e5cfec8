// Package mocks provides mock implementations for testing tokenization use cases and handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
	tokenizationService "github.com/allisson/pantoken/internal/tokenization/service"
)

// MockRecordRepository is a mock implementation of RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

// Put mocks the Put method of RecordRepository.
func (m *MockRecordRepository) Put(ctx context.Context, record *tokenizationDomain.EncryptedRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Get mocks the Get method of RecordRepository.
func (m *MockRecordRepository) Get(
	ctx context.Context,
	token tokenizationDomain.Token,
) (*tokenizationDomain.EncryptedRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenizationDomain.EncryptedRecord), args.Error(1)
}

// Exists mocks the Exists method of RecordRepository.
func (m *MockRecordRepository) Exists(ctx context.Context, token tokenizationDomain.Token) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// MockTokenGenerator is a mock implementation of TokenGenerator.
type MockTokenGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method of TokenGenerator.
func (m *MockTokenGenerator) Generate(
	ctx context.Context,
	exists tokenizationService.ExistsFunc,
) (tokenizationDomain.Token, error) {
	args := m.Called(ctx, exists)
	return args.Get(0).(tokenizationDomain.Token), args.Error(1)
}

// MockTokenizationUseCase is a mock implementation of TokenizationUseCase.
type MockTokenizationUseCase struct {
	mock.Mock
}

// Tokenize mocks the Tokenize method of TokenizationUseCase.
func (m *MockTokenizationUseCase) Tokenize(
	ctx context.Context,
	rawInput string,
) (*tokenizationDomain.TokenDetails, error) {
	args := m.Called(ctx, rawInput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenizationDomain.TokenDetails), args.Error(1)
}

// Reveal mocks the Reveal method of TokenizationUseCase.
func (m *MockTokenizationUseCase) Reveal(
	ctx context.Context,
	token, credential string,
) (tokenizationDomain.PAN, error) {
	args := m.Called(ctx, token, credential)
	return args.Get(0).(tokenizationDomain.PAN), args.Error(1)
}

// Authorize mocks the Authorize method of TokenizationUseCase.
func (m *MockTokenizationUseCase) Authorize(credential string) error {
	args := m.Called(credential)
	return args.Error(0)
}

// Describe mocks the Describe method of TokenizationUseCase.
func (m *MockTokenizationUseCase) Describe(
	ctx context.Context,
	token string,
) (*tokenizationDomain.TokenDetails, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenizationDomain.TokenDetails), args.Error(1)
}
