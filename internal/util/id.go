// Package util provides shared utility functions.
package util

import (
	"context"
	"errors"
	"fmt"
)

const (
	// DefaultShortIDLength is the number of characters shown for short IDs.
	DefaultShortIDLength = 8
	// MaxAmbiguousCandidates is the max number of candidates listed in an ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// ShortID returns the first n characters of an ID.
// If n is 0 or negative, DefaultShortIDLength is used.
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// IDPrefixResolver finds poem IDs by prefix. store.SQLiteStore implements it.
type IDPrefixResolver interface {
	FindPoemIDsByPrefix(ctx context.Context, prefix string) ([]string, error)
}

// ResolvePoemID resolves a poem ID or a unique prefix of one to the full ID.
func ResolvePoemID(ctx context.Context, resolver IDPrefixResolver, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", fmt.Errorf("poem ID: %w", ErrNotFound)
	}

	candidates, err := resolver.FindPoemIDsByPrefix(ctx, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("find poem IDs: %w", err)
	}

	// A full ID wins even if it is also a prefix of another.
	for _, c := range candidates {
		if c == idOrPrefix {
			return c, nil
		}
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("poem with prefix %q: %w", idOrPrefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := candidates
		if len(shown) > MaxAmbiguousCandidates {
			shown = shown[:MaxAmbiguousCandidates]
		}
		return "", fmt.Errorf("%w: prefix %q matches %d poems: %v",
			ErrAmbiguousID, idOrPrefix, len(candidates), shown)
	}
}
