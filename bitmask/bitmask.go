/*
Package bitmask provides the row-membership sets used as capture sets
by decision-tree models: for every node of a tree, the set of dataset
rows that reach it. Bitmasks are backed by Roaring bitmaps and expose
the operations model canonicalization depends on: bit tests,
cardinality, equality and an order-insensitive hash.
*/
package bitmask

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// hashSeedMix is the odd constant folded into the running seed when
// combining partial hashes, the usual hash-combine idiom.
const hashSeedMix = 0x9e3779b9

/*
Bitmask represents a set of dataset row indices. The zero value is not
usable; use New or FromRows.

Bitmasks are shared freely between models, datasets and caches: a tree
leaf and a cache entry may hold the same Bitmask, and neither assumes
sole ownership.
*/
type Bitmask struct {
	rb *roaring.Bitmap
}

/*
New returns an empty Bitmask.
*/
func New() *Bitmask {
	return &Bitmask{rb: roaring.New()}
}

/*
FromRows takes a list of row indices and returns a Bitmask containing
exactly those rows.
*/
func FromRows(rows ...uint32) *Bitmask {
	return &Bitmask{rb: roaring.BitmapOf(rows...)}
}

/*
Add includes the given row in the set.
*/
func (b *Bitmask) Add(row uint32) {
	b.rb.Add(row)
}

/*
Test returns true if the given row belongs to the set.
*/
func (b *Bitmask) Test(row uint32) bool {
	return b.rb.Contains(row)
}

/*
Count returns the number of rows in the set.
*/
func (b *Bitmask) Count() int {
	return int(b.rb.GetCardinality())
}

/*
Empty returns true if the set contains no rows.
*/
func (b *Bitmask) Empty() bool {
	return b.rb.IsEmpty()
}

/*
Equal returns true if both sets contain exactly the same rows.
A nil other is never equal.
*/
func (b *Bitmask) Equal(other *Bitmask) bool {
	if other == nil {
		return false
	}
	return b.rb.Equals(other.rb)
}

/*
IntersectionCount returns the number of rows present in both sets
without materializing the intersection.
*/
func (b *Bitmask) IntersectionCount(other *Bitmask) int {
	return int(b.rb.AndCardinality(other.rb))
}

/*
Clone returns a deep copy of the set.
*/
func (b *Bitmask) Clone() *Bitmask {
	return &Bitmask{rb: b.rb.Clone()}
}

/*
Hash returns a hash of the set contents. Equal Bitmasks hash
identically; collisions between different Bitmasks are possible, so a
matching hash is a pre-check and never a proof of equality.
*/
func (b *Bitmask) Hash() uint64 {
	var seed uint64
	it := b.rb.Iterator()
	for it.HasNext() {
		seed ^= uint64(it.Next()) + hashSeedMix + (seed << 6) + (seed >> 2)
	}
	return seed
}

/*
MarshalBinary serializes the set in the portable Roaring format.
*/
func (b *Bitmask) MarshalBinary() ([]byte, error) {
	return b.rb.MarshalBinary()
}

/*
UnmarshalBinary replaces the set contents with the ones serialized in
the given slice of bytes, expected in the portable Roaring format.
*/
func (b *Bitmask) UnmarshalBinary(data []byte) error {
	if b.rb == nil {
		b.rb = roaring.New()
	}
	if err := b.rb.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("decoding bitmask: %v", err)
	}
	return nil
}

func (b *Bitmask) String() string {
	rows := make([]string, 0, b.Count())
	it := b.rb.Iterator()
	for it.HasNext() {
		rows = append(rows, fmt.Sprintf("%d", it.Next()))
	}
	return fmt.Sprintf("{%s}", strings.Join(rows, ","))
}
