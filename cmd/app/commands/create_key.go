package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
	"github.com/allisson/opaqueid/internal/opaqueid/service"
)

// RunCreateKey generates a random 16-byte identifier key and prints the
// environment variables that configure it. When kmsKeyURI is set the key is
// encrypted with KMS first and OPAQUEID_KEY holds the base64 ciphertext.
// Key material is zeroed from memory after encoding.
//
// Output format:
//   - OPAQUEID_KEY="<base64 key or kms ciphertext>"
//   - OPAQUEID_ALGORITHM="<algorithm>"
//   - KMS_PROVIDER="<provider>" and KMS_KEY_URI="<uri>" in KMS mode
func RunCreateKey(
	ctx context.Context,
	kmsService service.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	algorithm string,
	kmsProvider string,
	kmsKeyURI string,
) error {
	alg, err := parseAlgorithm(algorithm)
	if err != nil {
		return err
	}
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri must be used together")
	}

	key := make([]byte, domain.KeySize)
	defer service.Zero(key)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate identifier key: %w", err)
	}

	material := key
	if kmsKeyURI != "" {
		material, err = encryptWithKMS(ctx, kmsService, logger, kmsKeyURI, key)
		if err != nil {
			return err
		}
		logger.Info("identifier key encrypted with KMS", slog.String("kms_provider", kmsProvider))
	}

	_, _ = fmt.Fprintln(writer, "# Identifier Key Configuration")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer, "# Changing the key changes every token issued with it")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "OPAQUEID_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(material))
	_, _ = fmt.Fprintf(writer, "OPAQUEID_ALGORITHM=\"%s\"\n", alg)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	}

	return nil
}

func encryptWithKMS(
	ctx context.Context,
	kmsService service.KMSService,
	logger *slog.Logger,
	kmsKeyURI string,
	key []byte,
) ([]byte, error) {
	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt identifier key with KMS: %w", err)
	}
	return ciphertext, nil
}
