package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Dependency-free ULID generator: 26 Crockford Base32 characters over a
// 48-bit millisecond timestamp plus 80 random bits. A sequence counter
// keeps IDs unique within the same millisecond.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

// NewJobID returns a fresh ULID for job identification.
func NewJobID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in the first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	rand.Read(b[6:])
	// Sequence in bytes 6-7 guards same-millisecond collisions.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeCrockford(b)
}

// encodeCrockford renders 128 bits as 26 base-32 characters, filling
// from the least significant end and shifting 5 bits per character.
func encodeCrockford(b [16]byte) string {
	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = crockford[b[15]&0x1f]

		var carry byte
		for j := 0; j < 16; j++ {
			cur := b[j]
			b[j] = (cur >> 5) | (carry << 3)
			carry = cur & 0x1f
		}
	}
	return string(out[:])
}
