package point

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// KeySize is the fixed width of an encoded point.
const KeySize = 16

// Key is the sortable binary encoding of a Point.
//
// NOTE: This is persisted; keep it stable.
type Key [KeySize]byte

// Encode returns the key of p. Negative zero is stored as positive zero.
func Encode(p Point) Key {
	var k Key
	binary.BigEndian.PutUint64(k[0:8], sortableBits(p.X))
	binary.BigEndian.PutUint64(k[8:16], sortableBits(p.Y))
	return k
}

// Decode returns the point stored in k.
func Decode(k Key) Point {
	return Point{
		X: fromSortableBits(binary.BigEndian.Uint64(k[0:8])),
		Y: fromSortableBits(binary.BigEndian.Uint64(k[8:16])),
	}
}

// KeyFromBytes copies b into a Key. b must be exactly KeySize bytes.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, fmt.Errorf("point key must be %d bytes, got %d", KeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// Bytes returns a copy of the key bytes.
func (k Key) Bytes() []byte {
	b := make([]byte, KeySize)
	copy(b, k[:])
	return b
}

// AppendTo appends the key bytes to dst.
func (k Key) AppendTo(dst []byte) []byte {
	return append(dst, k[:]...)
}

// Point decodes the key.
func (k Key) Point() Point {
	return Decode(k)
}

// Compare orders keys by their bytes. It returns -1, 0 or +1.
func (k Key) Compare(o Key) int {
	return bytes.Compare(k[:], o[:])
}

// String returns the key as lowercase hex.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// sortableBits maps a float64 to a uint64 whose unsigned order matches the
// numeric order of finite floats.
func sortableBits(f float64) uint64 {
	if f == 0 {
		f = 0 // -0 -> +0
	}
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | (1 << 63)
}

func fromSortableBits(u uint64) float64 {
	if u&(1<<63) != 0 {
		return math.Float64frombits(u &^ (1 << 63))
	}
	return math.Float64frombits(^u)
}
