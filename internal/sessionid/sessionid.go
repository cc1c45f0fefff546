// Package sessionid generates draft session ids: UUIDv7 values written as
// 26 characters of lowercase Crockford base32, so ids sort by creation time.
package sessionid

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lowercase as in TypeID.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the encoded id length.
const Length = 26

// RandSource supplies the random bits of deterministic ids.
type RandSource interface {
	IntN(n int) int
}

// Generator creates session ids. With a nil RandSource it uses google/uuid.
type Generator struct {
	rand  RandSource
	clock quartz.Clock
}

// NewGenerator creates a generator. clock may be nil for the real clock.
func NewGenerator(rand RandSource, clock quartz.Clock) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{rand: rand, clock: clock}
}

// Generate returns a fresh id from the real clock and crypto randomness.
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns a new id
func (g *Generator) Generate() string {
	return Encode(g.uuid())
}

func (g *Generator) uuid() uuid.UUID {
	if g.rand == nil {
		if _, ok := g.clock.(*quartz.Mock); !ok {
			if id, err := uuid.NewV7(); err == nil {
				return id
			}
		}
	}

	var id uuid.UUID
	ms := uint64(g.clock.Now().UnixMilli())
	id[0] = byte(ms >> 40)
	id[1] = byte(ms >> 32)
	id[2] = byte(ms >> 24)
	id[3] = byte(ms >> 16)
	id[4] = byte(ms >> 8)
	id[5] = byte(ms)
	if g.rand != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else {
		r := uuid.New()
		copy(id[6:], r[6:])
	}
	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}

// Encode writes a UUID as 26 base32 characters. The 128 bits are padded with
// two leading zero bits, so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])
	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Parse decodes an id back to its UUID.
func Parse(s string) (uuid.UUID, error) {
	if err := Validate(s); err != nil {
		return uuid.UUID{}, err
	}
	var hi, lo uint64
	for i := 0; i < Length; i++ {
		v := uint64(strings.IndexByte(alphabet, s[i]))
		hi = hi<<5 | lo>>59
		lo = lo<<5 | v
	}
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], hi)
	binary.BigEndian.PutUint64(id[8:], lo)
	return id, nil
}

// Validate checks an id is 26 characters of the alphabet and fits in 128
// bits.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session id must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
