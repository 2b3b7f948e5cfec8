package commands

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authService "github.com/allisson/pantoken/internal/auth/service"
)

// RunHashAdminKey prints an Argon2id hash for ADMIN_API_KEY_HASH.
//
// With fromStdin the key is read from the first line of streams.Reader so it never lands in
// shell history. Otherwise a fresh random key is generated and printed once next to
// its hash.
func RunHashAdminKey(
	secretService authService.SecretService,
	logger *slog.Logger,
	streams IOTuple,
	fromStdin bool,
) error {
	if !fromStdin {
		plainKey, hash, err := secretService.GenerateAdminKey()
		if err != nil {
			return fmt.Errorf("failed to generate admin key: %w", err)
		}

		logger.Info("admin key generated")

		_, _ = fmt.Fprintln(streams.Writer, "# Admin Key Configuration")
		_, _ = fmt.Fprintln(streams.Writer, "# Hand ADMIN_API_KEY to the operator once; configure only the hash on the server")
		_, _ = fmt.Fprintln(streams.Writer)
		_, _ = fmt.Fprintf(streams.Writer, "ADMIN_API_KEY=\"%s\"\n", plainKey)
		_, _ = fmt.Fprintf(streams.Writer, "ADMIN_API_KEY_HASH='%s'\n", hash)
		return nil
	}

	plainKey, err := readLine(streams.Reader)
	if err != nil {
		return fmt.Errorf("failed to read admin key: %w", err)
	}
	if len(plainKey) < authService.MinAdminKeyLength {
		return fmt.Errorf("%w: need at least %d characters", authService.ErrAdminKeyTooShort, authService.MinAdminKeyLength)
	}

	hash, err := secretService.HashAdminKey(plainKey)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(streams.Writer, "ADMIN_API_KEY_HASH='%s'\n", hash)
	return nil
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}
