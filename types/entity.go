package types

import (
	"math"
	"strconv"
)

// EntityID is a unique identifier for an entity. Identifiers are allocated
// monotonically and are never reused within a store's lifetime, so a stale
// handle kept across a despawn can never alias a newer entity.
type EntityID uint32

// MaxEntityID is the last identifier a store will allocate. Allocation past
// this point is fatal.
const MaxEntityID = EntityID(math.MaxUint32 - 1)

// BadEntityID is a sentinel value returned alongside errors.
const BadEntityID = EntityID(math.MaxUint32)

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
