package commands

import (
	"fmt"
	"io"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
)

type derivedTag struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// RunDeriveTag prints the tag derived from each kind name.
func RunDeriveTag(writer io.Writer, names []string, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("at least one kind name is required")
	}

	tags := make([]derivedTag, 0, len(names))
	for _, name := range names {
		tag, err := domain.DeriveTag(name)
		if err != nil {
			return fmt.Errorf("kind %q: %w", name, err)
		}
		tags = append(tags, derivedTag{Name: name, Tag: fmt.Sprintf("0x%016x", uint64(tag))})
	}

	if format == "json" {
		return outputJSON(writer, tags)
	}
	for _, t := range tags {
		_, _ = fmt.Fprintf(writer, "%s\t%s\n", t.Name, t.Tag)
	}
	return nil
}
