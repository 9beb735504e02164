// Package zobrist holds the process-wide table of random keys used to hash
// positions incrementally.
//
// Keys come from a ChaCha stream with a fixed seed, so hashes are stable
// between runs and across machines. That keeps cache behaviour and test
// expectations deterministic.
package zobrist

import (
	"encoding/binary"
	"sync"

	"lukechampine.com/frand"
)

// Table dimensions. They mirror the board layout used by the chess package:
// eight piece kinds, two colours and a 16x10 square index.
const (
	NumKinds   = 8
	NumColours = 2
	NumSquares = 160
	NumCastle  = 16
)

// Keys is the complete key table.
type Keys struct {
	PieceSquare [NumKinds][NumColours][NumSquares]uint64
	Colour      uint64
	Castling    [NumCastle]uint64
	// EnPassant[0] is zero so that "no en passant square" hashes to nothing.
	EnPassant [NumSquares]uint64
}

var seed = [32]byte{
	'c', 'p', 'w', '-', '8', '0', 0x5a, 0x0b,
	0x72, 0x1e, 0x3d, 0x99, 0x04, 0xc1, 0xee, 0x10,
	0x6f, 0x28, 0xa3, 0x51, 0xd7, 0x8c, 0x02, 0x4b,
	0x91, 0x3a, 0xf6, 0x67, 0x1d, 0xb8, 0x45, 0x7c,
}

var (
	once    sync.Once
	current *Keys
)

// Default returns the shared key table, generating it on first use.
func Default() *Keys {
	once.Do(func() {
		current = Generate(seed[:])
	})
	return current
}

// Generate builds a key table from a 32-byte seed. Every key is non-zero
// except EnPassant[0].
func Generate(seed []byte) *Keys {
	rng := frand.NewCustom(seed, 1024, 20)
	next := func() uint64 {
		for {
			if v := binary.LittleEndian.Uint64(rng.Bytes(8)); v != 0 {
				return v
			}
		}
	}

	k := &Keys{}
	for kind := 0; kind < NumKinds; kind++ {
		for c := 0; c < NumColours; c++ {
			for sq := 0; sq < NumSquares; sq++ {
				k.PieceSquare[kind][c][sq] = next()
			}
		}
	}
	k.Colour = next()
	for i := range k.Castling {
		k.Castling[i] = next()
	}
	for sq := 1; sq < NumSquares; sq++ {
		k.EnPassant[sq] = next()
	}
	return k
}
