// Package matchid generates sortable match identifiers: a UUIDv7 written as
// 26 characters of Crockford base32.
package matchid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID
const Length = 26

// NewFromReader draws the random bits of the ID from r, so seeded runs get
// reproducible suffixes. The timestamp still comes from the wall clock.
func NewFromReader(r io.Reader) (string, error) {
	id, err := uuid.NewV7FromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate match id: %w", err)
	}
	return Encode(id), nil
}

// Encode writes a UUID as 26 base32 characters, most significant bits first.
// The 128 bits are padded with two zero bits at the front.
func Encode(id uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)

	// the top character carries only 3 bits
	b.WriteByte(alphabet[id[0]>>5])
	bits, acc := 5, uint16(id[0]&0x1f)
	for _, by := range id[1:] {
		acc = acc<<8 | uint16(by)
		bits += 8
		for bits >= 5 {
			bits -= 5
			b.WriteByte(alphabet[(acc>>bits)&0x1f])
		}
	}
	return b.String()
}

// Validate checks that id looks like an encoded match ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("match ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("match ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
