// Package normalization maps loosely written configuration values onto typed enums.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Normalizer maps case-insensitive, trimmed strings onto enum values of type T.
type Normalizer[T comparable] struct {
	values   map[string]T
	fallback T
	keys     []string
}

// NewNormalizer creates a normalizer from accepted spellings. Several keys may
// map to the same value to allow aliases.
func NewNormalizer[T comparable](values map[string]T, fallback T) *Normalizer[T] {
	n := &Normalizer[T]{values: make(map[string]T, len(values)), fallback: fallback}
	for k, v := range values {
		key := clean(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	slices.Sort(n.keys)
	return n
}

// Normalize returns the value for raw or the fallback when raw is unknown or empty.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[clean(raw)]; ok {
		return v
	}
	return n.fallback
}

// Parse is like Normalize but reports unknown non-empty input.
func (n *Normalizer[T]) Parse(field, raw string) (T, error) {
	if strings.TrimSpace(raw) == "" {
		return n.fallback, nil
	}
	if v, ok := n.values[clean(raw)]; ok {
		return v, nil
	}
	return n.fallback, fmt.Errorf("invalid %s %q, valid options: %s", field, raw, strings.Join(n.keys, ", "))
}

// Keys returns the accepted spellings, sorted.
func (n *Normalizer[T]) Keys() []string {
	return slices.Clone(n.keys)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
