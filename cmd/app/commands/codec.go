package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/allisson/opaqueid/internal/opaqueid/usecase"
)

type encodedID struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type decodedToken struct {
	Token string `json:"token"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// RunEncode encodes each decimal id as a token of the given kind. Any
// malformed id aborts the command before anything is printed.
func RunEncode(
	ctx context.Context,
	identifierUseCase usecase.IdentifierUseCase,
	logger *slog.Logger,
	writer io.Writer,
	kind string,
	args []string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("at least one id is required")
	}

	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: must be a signed 64-bit integer", arg)
		}
		ids[i] = id
	}

	tokens, err := identifierUseCase.EncodeBatch(ctx, kind, ids)
	if err != nil {
		return fmt.Errorf("failed to encode ids: %w", err)
	}
	logger.Debug("ids encoded", slog.String("kind", kind), slog.Int("count", len(tokens)))

	results := make([]encodedID, len(ids))
	for i, id := range ids {
		results[i] = encodedID{ID: strconv.FormatInt(id, 10), Token: tokens[i]}
	}

	if format == "json" {
		return outputJSON(writer, results)
	}
	for _, r := range results {
		_, _ = fmt.Fprintf(writer, "%s\t%s\n", r.ID, r.Token)
	}
	return nil
}

// RunDecode decodes each token of the given kind. Per-token failures are
// printed alongside the successes and reported as a single error at the end.
func RunDecode(
	ctx context.Context,
	identifierUseCase usecase.IdentifierUseCase,
	logger *slog.Logger,
	writer io.Writer,
	kind string,
	tokens []string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if len(tokens) == 0 {
		return fmt.Errorf("at least one token is required")
	}

	decoded, err := identifierUseCase.DecodeBatch(ctx, kind, tokens)
	if err != nil {
		return fmt.Errorf("failed to decode tokens: %w", err)
	}

	failed := 0
	results := make([]decodedToken, len(decoded))
	for i, d := range decoded {
		results[i] = decodedToken{Token: d.Token}
		if d.Err != nil {
			failed++
			results[i].Error = d.Err.Error()
			continue
		}
		results[i].ID = strconv.FormatInt(d.ID, 10)
	}
	logger.Debug("tokens decoded", slog.String("kind", kind), slog.Int("count", len(results)), slog.Int("failed", failed))

	if format == "json" {
		if err := outputJSON(writer, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Error != "" {
				_, _ = fmt.Fprintf(writer, "%s\terror: %s\n", r.Token, r.Error)
				continue
			}
			_, _ = fmt.Fprintf(writer, "%s\t%s\n", r.Token, r.ID)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tokens could not be decoded", failed, len(results))
	}
	return nil
}
