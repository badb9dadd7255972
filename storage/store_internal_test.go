package storage

import (
	"testing"

	"github.com/mossforge/granary/assert"
	. "github.com/mossforge/granary/internal/testutils"
	"github.com/mossforge/granary/types"
)

// assertViewsConsistent walks both views and fails when they disagree:
// every row entry must have its bit set in the matching column, and every
// column bit must have a matching row entry.
func assertViewsConsistent(t *testing.T, s *Store) {
	t.Helper()

	for id, row := range s.rows {
		assert.True(t, s.live.Contains(uint32(id)), "row %d is not live", id)
		for ct := range row {
			assert.True(t, s.columns[ct].Contains(uint32(id)),
				"row %d holds %s but the column bit is unset", id, ct)
		}
	}
	for ct, col := range s.columns {
		col.Range(func(x uint32) {
			_, ok := s.rows[types.EntityID(x)][ct]
			assert.True(t, ok, "column %s holds %d but the row does not", ct, x)
		})
	}
}

func TestStore_Spawn(t *testing.T) {
	t.Parallel()

	s := NewStore()
	assert.True(t, s.IsEmpty())

	first := s.Spawn()
	second := s.Spawn()

	assert.Equal(t, types.EntityID(0), first)
	assert.Equal(t, types.EntityID(1), second)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.IsEmpty())
	assert.True(t, s.Contains(first))
	assert.True(t, s.Contains(second))
	assert.False(t, s.Contains(types.EntityID(2)))
	assert.Equal(t, 0, s.TypeCount(first))
	assertViewsConsistent(t, s)
}

func TestStore_SpawnAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T, s *Store)
		id      types.EntityID
		wantErr error
		wantMsg string
	}{
		{
			name: "claim a fresh identifier",
			id:   42,
		},
		{
			name: "claim a live identifier",
			setup: func(t *testing.T, s *Store) {
				t.Helper()
				s.Spawn()
			},
			id:      0,
			wantErr: ErrEntityAlreadyExists,
		},
		{
			name:    "claim past the allocatable range",
			id:      types.BadEntityID,
			wantMsg: "out of allocatable range",
		},
		{
			name: "reclaim a destroyed identifier",
			setup: func(t *testing.T, s *Store) {
				t.Helper()
				id := s.Spawn()
				assert.NilError(t, s.Destroy(id))
			},
			id: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewStore()
			if tt.setup != nil {
				tt.setup(t, s)
			}

			err := s.SpawnAt(tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
				return
			}
			assert.NilError(t, err)
			assert.True(t, s.Contains(tt.id))
			assertViewsConsistent(t, s)
		})
	}
}

func TestStore_SpawnAtBumpsAllocator(t *testing.T) {
	t.Parallel()

	s := NewStore()
	assert.NilError(t, s.SpawnAt(10))
	assert.Equal(t, types.EntityID(11), s.Spawn())

	// Claiming below the watermark must not rewind it.
	assert.NilError(t, s.SpawnAt(3))
	assert.Equal(t, types.EntityID(12), s.Spawn())
}

func TestStore_Destroy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T, s *Store) types.EntityID
		wantErr error
	}{
		{
			name: "destroy a live entity",
			setup: func(t *testing.T, s *Store) types.EntityID {
				t.Helper()
				id := s.Spawn()
				assert.NilError(t, s.Put(id, Position{X: 1}))
				return id
			},
		},
		{
			name: "destroy an identifier never allocated",
			setup: func(t *testing.T, _ *Store) types.EntityID {
				t.Helper()
				return 999
			},
			wantErr: ErrEntityDoesNotExist,
		},
		{
			name: "destroy an already destroyed entity",
			setup: func(t *testing.T, s *Store) types.EntityID {
				t.Helper()
				id := s.Spawn()
				assert.NilError(t, s.Destroy(id))
				return id
			},
			wantErr: ErrEntityDoesNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewStore()
			id := tt.setup(t, s)

			err := s.Destroy(id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NilError(t, err)
			assert.False(t, s.Contains(id))
			assert.False(t, s.Column(types.Of[Position]()).Contains(uint32(id)))
			assertViewsConsistent(t, s)
		})
	}
}

func TestStore_NeverReusesIdentifiers(t *testing.T) {
	t.Parallel()

	s := NewStore()
	a := s.Spawn()
	b := s.Spawn()
	assert.NilError(t, s.Destroy(a))
	assert.NilError(t, s.Destroy(b))

	assert.Equal(t, types.EntityID(2), s.Spawn())
	assert.False(t, s.Contains(a))
	assert.False(t, s.Contains(b))
}

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	t.Run("stores and returns a value", func(t *testing.T) {
		t.Parallel()
		s := NewStore()
		id := s.Spawn()

		assert.NilError(t, s.Put(id, Position{X: 1, Y: 2}))

		got, err := s.Get(id, types.Of[Position]())
		assert.NilError(t, err)
		assert.Equal(t, Position{X: 1, Y: 2}, got)
		assert.Equal(t, 1, s.TypeCount(id))
		assertViewsConsistent(t, s)
	})

	t.Run("last write wins", func(t *testing.T) {
		t.Parallel()
		s := NewStore()
		id := s.Spawn()

		assert.NilError(t, s.Put(id, Health{Current: 50, Max: 100}))
		assert.NilError(t, s.Put(id, Health{Current: 75, Max: 100}))

		got, err := s.Get(id, types.Of[Health]())
		assert.NilError(t, err)
		assert.Equal(t, Health{Current: 75, Max: 100}, got)
		assert.Equal(t, 1, s.TypeCount(id))
		assert.Equal(t, 1, s.ColumnCount(types.Of[Health]()))
	})

	t.Run("classifies by exact dynamic type", func(t *testing.T) {
		t.Parallel()
		s := NewStore()
		id := s.Spawn()

		assert.NilError(t, s.Put(id, Position{X: 1}))
		assert.NilError(t, s.Put(id, &Position{X: 2}))

		assert.Equal(t, 2, s.TypeCount(id))
		byValue, err := s.Get(id, types.Of[Position]())
		assert.NilError(t, err)
		assert.Equal(t, Position{X: 1}, byValue)
		byPointer, err := s.Get(id, types.Of[*Position]())
		assert.NilError(t, err)
		assert.Equal(t, Position{X: 2}, *byPointer.(*Position))
	})

	t.Run("nil component is rejected", func(t *testing.T) {
		t.Parallel()
		s := NewStore()
		id := s.Spawn()

		assert.ErrorIs(t, s.Put(id, nil), ErrNilComponent)
		assert.Equal(t, 0, s.TypeCount(id))
	})

	t.Run("dead entity is rejected", func(t *testing.T) {
		t.Parallel()
		s := NewStore()
		id := s.Spawn()
		assert.NilError(t, s.Destroy(id))

		assert.ErrorIs(t, s.Put(id, Position{}), ErrEntityDoesNotExist)
		_, err := s.Get(id, types.Of[Position]())
		assert.ErrorIs(t, err, ErrEntityDoesNotExist)
	})

	t.Run("absent type is reported", func(t *testing.T) {
		t.Parallel()
		s := NewStore()
		id := s.Spawn()

		_, err := s.Get(id, types.Of[Velocity]())
		assert.ErrorIs(t, err, ErrComponentNotOnEntity)
	})
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removes the instance and clears the column bit", func(t *testing.T) {
		t.Parallel()
		s := NewStore()
		id := s.Spawn()
		assert.NilError(t, s.Put(id, Velocity{DX: 1}))

		assert.NilError(t, s.Remove(id, types.Of[Velocity]()))

		assert.False(t, s.Has(id, types.Of[Velocity]()))
		assert.Equal(t, 0, s.ColumnCount(types.Of[Velocity]()))
		assertViewsConsistent(t, s)
	})

	t.Run("absent type is a no-op", func(t *testing.T) {
		t.Parallel()
		s := NewStore()
		id := s.Spawn()

		assert.NilError(t, s.Remove(id, types.Of[Velocity]()))
		assert.NilError(t, s.Remove(id, types.Of[Velocity]()))
	})

	t.Run("dead entity is rejected", func(t *testing.T) {
		t.Parallel()
		s := NewStore()
		id := s.Spawn()
		assert.NilError(t, s.Destroy(id))

		assert.ErrorIs(t, s.Remove(id, types.Of[Velocity]()), ErrEntityDoesNotExist)
	})
}

func TestStore_Take(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.Spawn()
	assert.NilError(t, s.Put(id, Health{Current: 10, Max: 10}))

	got, err := s.Take(id, types.Of[Health]())
	assert.NilError(t, err)
	assert.Equal(t, Health{Current: 10, Max: 10}, got)
	assert.False(t, s.Has(id, types.Of[Health]()))
	assertViewsConsistent(t, s)

	_, err = s.Take(id, types.Of[Health]())
	assert.ErrorIs(t, err, ErrComponentNotOnEntity)

	assert.NilError(t, s.Destroy(id))
	_, err = s.Take(id, types.Of[Health]())
	assert.ErrorIs(t, err, ErrEntityDoesNotExist)
}

func TestStore_Has(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.Spawn()
	assert.NilError(t, s.Put(id, Dead{}))

	assert.True(t, s.Has(id, types.Of[Dead]()))
	assert.False(t, s.Has(id, types.Of[Position]()))
	assert.False(t, s.Has(types.EntityID(999), types.Of[Dead]()))
}

func TestStore_TypesAndComponents(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.Spawn()
	assert.NilError(t, s.Put(id, Velocity{DX: 3}))
	assert.NilError(t, s.Put(id, Position{X: 7}))

	ts, err := s.Types(id)
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"testutils.Position", "testutils.Velocity"},
		[]string{ts[0].String(), ts[1].String()})

	components, err := s.Components(id)
	assert.NilError(t, err)
	assert.Len(t, components, 2)
	assert.Equal(t, Position{X: 7}, components[0])
	assert.Equal(t, Velocity{DX: 3}, components[1])

	assert.NilError(t, s.Destroy(id))
	_, err = s.Types(id)
	assert.ErrorIs(t, err, ErrEntityDoesNotExist)
	_, err = s.Components(id)
	assert.ErrorIs(t, err, ErrEntityDoesNotExist)
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	s := NewStore()
	for i := 0; i < 3; i++ {
		id := s.Spawn()
		assert.NilError(t, s.Put(id, Position{X: float64(i)}))
	}

	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains(types.EntityID(0)))
	assert.Len(t, s.ColumnTypes(), 0)

	// The allocator keeps counting across a clear.
	assert.Equal(t, types.EntityID(3), s.Spawn())
}

func TestStore_IDs(t *testing.T) {
	t.Parallel()

	s := NewStore()
	a := s.Spawn()
	b := s.Spawn()
	c := s.Spawn()
	assert.NilError(t, s.Destroy(b))

	assert.DeepEqual(t, []types.EntityID{a, c}, s.IDs())
}

func TestStore_ColumnTypes(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.Spawn()
	assert.NilError(t, s.Put(id, Velocity{}))
	assert.NilError(t, s.Put(id, Position{}))

	ts := s.ColumnTypes()
	assert.DeepEqual(t, []string{"testutils.Position", "testutils.Velocity"},
		[]string{ts[0].String(), ts[1].String()})

	// Columns outlive their last entity; the listing is the type universe.
	assert.NilError(t, s.Remove(id, types.Of[Velocity]()))
	assert.Len(t, s.ColumnTypes(), 2)
	assert.Equal(t, 0, s.ColumnCount(types.Of[Velocity]()))
}

// TestStore_ViewConsistency runs a mixed workout and checks that the row
// and column views still agree afterwards.
func TestStore_ViewConsistency(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ids := make([]types.EntityID, 0, 8)
	for i := 0; i < 8; i++ {
		ids = append(ids, s.Spawn())
	}
	for i, id := range ids {
		assert.NilError(t, s.Put(id, Position{X: float64(i)}))
		if i%2 == 0 {
			assert.NilError(t, s.Put(id, Velocity{DX: 1}))
		}
		if i%3 == 0 {
			assert.NilError(t, s.Put(id, Dead{}))
		}
	}

	assert.NilError(t, s.Destroy(ids[1]))
	assert.NilError(t, s.Destroy(ids[4]))
	assert.NilError(t, s.Remove(ids[0], types.Of[Velocity]()))
	_, err := s.Take(ids[6], types.Of[Velocity]())
	assert.NilError(t, err)

	assertViewsConsistent(t, s)
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, 6, s.ColumnCount(types.Of[Position]()))
	assert.Equal(t, 1, s.ColumnCount(types.Of[Velocity]()))
	assert.Equal(t, 3, s.ColumnCount(types.Of[Dead]()))
}
