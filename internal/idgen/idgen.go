// Package idgen generates prefixed business identifiers such as "S-7QK2M9XA".
package idgen

import (
	"fmt"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ" // no I or O
	size     = 8
)

// New returns prefix followed by a random upper-case code.
func New(prefix string) (string, error) {
	code, err := nanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return prefix + code, nil
}

// Valid reports whether id has the given prefix and a well-formed code.
func Valid(prefix, id string) bool {
	code, ok := strings.CutPrefix(id, prefix)
	if !ok || len(code) != size {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
