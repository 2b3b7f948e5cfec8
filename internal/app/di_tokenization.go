package app

import (
	"fmt"

	"github.com/allisson/pantoken/internal/config"
	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
	tokenizationHTTP "github.com/allisson/pantoken/internal/tokenization/http"
	tokenizationRepository "github.com/allisson/pantoken/internal/tokenization/repository"
	tokenizationService "github.com/allisson/pantoken/internal/tokenization/service"
	tokenizationUseCase "github.com/allisson/pantoken/internal/tokenization/usecase"
)

// RecordRepository returns the PAN record store selected by DB_DRIVER.
func (c *Container) RecordRepository() (tokenizationUseCase.RecordRepository, error) {
	var err error
	c.recordRepositoryInit.Do(func() {
		c.recordRepository, err = c.initRecordRepository()
		if err != nil {
			c.initErrors["recordRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordRepository"]; exists {
		return nil, storedErr
	}
	return c.recordRepository, nil
}

// TokenGenerator returns the random token generator.
func (c *Container) TokenGenerator() tokenizationService.TokenGenerator {
	c.tokenGeneratorInit.Do(func() {
		c.tokenGenerator = tokenizationService.NewHexGenerator(tokenizationService.DefaultMaxGenerateAttempts)
	})
	return c.tokenGenerator
}

// TokenizationUseCase returns the tokenization use case.
func (c *Container) TokenizationUseCase() (tokenizationUseCase.TokenizationUseCase, error) {
	var err error
	c.tokenizationUseCaseInit.Do(func() {
		c.tokenizationUseCase, err = c.initTokenizationUseCase()
		if err != nil {
			c.initErrors["tokenizationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenizationUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenizationUseCase, nil
}

// TokenizationHandler returns the tokenization HTTP handler.
func (c *Container) TokenizationHandler() (*tokenizationHTTP.TokenizationHandler, error) {
	var err error
	c.tokenizationHandlerInit.Do(func() {
		c.tokenizationHandler, err = c.initTokenizationHandler()
		if err != nil {
			c.initErrors["tokenizationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenizationHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenizationHandler, nil
}

// initRecordRepository creates the record store based on the database driver.
func (c *Container) initRecordRepository() (tokenizationUseCase.RecordRepository, error) {
	if c.config.DBDriver == config.DriverMemory {
		c.Logger().Warn("using in-memory record store, tokens are lost on restart")
		c.memoryRepository = tokenizationRepository.NewMemoryRecordRepository()
		return c.memoryRepository, nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for record repository: %w", err)
	}

	switch c.config.DBDriver {
	case config.DriverSQLite:
		return tokenizationRepository.NewSQLiteRecordRepository(db), nil
	case config.DriverPostgres:
		return tokenizationRepository.NewPostgreSQLRecordRepository(db), nil
	case config.DriverMySQL:
		return tokenizationRepository.NewMySQLRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenizationUseCase creates the tokenization use case with all its dependencies.
func (c *Container) initTokenizationUseCase() (tokenizationUseCase.TokenizationUseCase, error) {
	// Credentials and key material are checked before the store is opened.
	verifier, err := c.AdminVerifier()
	if err != nil {
		return nil, err
	}

	cipher, err := c.Cipher()
	if err != nil {
		return nil, err
	}

	recordRepository, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for tokenization use case: %w", err)
	}

	baseUseCase := tokenizationUseCase.NewTokenizationUseCase(
		recordRepository,
		c.TokenGenerator(),
		cipher,
		verifier,
		tokenizationUseCase.Config{
			MaxInsertAttempts: tokenizationUseCase.DefaultMaxInsertAttempts,
			PANOptions:        tokenizationDomain.PANOptions{SkipLuhn: !c.config.PANLuhnCheck},
		},
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for tokenization use case: %w", err)
		}
		return tokenizationUseCase.NewTokenizationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenizationHandler creates the tokenization HTTP handler.
func (c *Container) initTokenizationHandler() (*tokenizationHTTP.TokenizationHandler, error) {
	tokenizationUseCase, err := c.TokenizationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get tokenization use case for tokenization handler: %w", err)
	}

	return tokenizationHTTP.NewTokenizationHandler(tokenizationUseCase, c.Logger()), nil
}
