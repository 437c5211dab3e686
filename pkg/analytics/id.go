package analytics

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// newEventID generates a 26-character lexicographically sortable id:
// 10 chars of millisecond timestamp followed by 16 chars of randomness.
// Sorting exported events by id yields creation order.
func newEventID() string {
	ms := uint64(time.Now().UnixMilli())

	var entropy [10]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		// Degraded but functional fallback.
		binary.BigEndian.PutUint64(entropy[:8], uint64(time.Now().UnixNano()))
	}

	var id [26]byte

	// 48-bit timestamp packs into the first 10 base32 chars.
	for i := 9; i >= 0; i-- {
		id[i] = crockfordBase32[ms&0x1F]
		ms >>= 5
	}

	// 80 random bits pack into the remaining 16 chars.
	var acc uint32
	var bits int
	pos := 10
	for _, b := range entropy {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			id[pos] = crockfordBase32[(acc>>bits)&0x1F]
			pos++
		}
	}

	return string(id[:])
}
