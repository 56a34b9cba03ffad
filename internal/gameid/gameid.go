// Package gameid generates sortable session identifiers: a UUIDv7 rendered
// as 26 characters of Crockford base32.
package gameid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// RandSource is the subset of *rand.Rand used for deterministic IDs
type RandSource interface {
	IntN(n int) int
}

// Generator creates session IDs from a clock and an optional RandSource
type Generator struct {
	clock      quartz.Clock
	randSource RandSource
}

// NewGenerator creates a generator. A nil clock uses wall time and a nil
// RandSource uses crypto/rand.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, randSource: randSource}
}

// Generate creates an ID from wall time and crypto/rand
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new session ID
func (g *Generator) Generate() string {
	var id [16]byte

	ms := uint64(g.clock.Now().UnixMilli())
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("failed to read random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant

	return encoding.EncodeToString(id[:])
}

// Validate checks that id could have come from Generate
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("session ID must be exactly 26 characters, got %d", len(id))
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	// 128 bits fill 26 characters with two zero bits to spare
	if strings.IndexByte(alphabet, id[25])&0x3 != 0 {
		return fmt.Errorf("session ID has non-zero trailing bits")
	}
	return nil
}
