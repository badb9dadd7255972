package granary

import (
	"iter"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/mossforge/granary/statsd"
	"github.com/mossforge/granary/storage"
	"github.com/mossforge/granary/types"
)

// World is the facade over one component store. It owns the store, the
// logger and the metric emission; all entity and component access flows
// through it.
//
// A World is not safe for concurrent use.
type World struct {
	store  *storage.Store
	config WorldConfig
	logger Logger

	// customLogger is set by WithLogger and wins over the configured one.
	customLogger *zerolog.Logger
}

// New creates an empty World: environment config first, then options on
// top, then the logger and optional statsd client built from the result.
func New(opts ...Option) (*World, error) {
	cfg, err := GetWorldConfig()
	if err != nil {
		return nil, err
	}

	w := &World{
		store:  storage.NewStore(),
		config: cfg,
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.config.WorldID == "" {
		w.config.WorldID = uuid.NewString()
	}
	if err := w.buildLogger(); err != nil {
		return nil, err
	}

	if w.config.StatsdAddress != "" {
		tags := splitTags(w.config.StatsdTags)
		tags = append(tags, "world_id:"+w.config.WorldID)
		if err := statsd.Init(w.config.StatsdAddress, tags); err != nil {
			return nil, eris.Wrap(err, "failed to init statsd client")
		}
	}

	w.logger.Debug().
		Str("log_level", w.config.LogLevel).
		Msg("world created")
	return w, nil
}

func (w *World) buildLogger() error {
	if w.customLogger != nil {
		w.logger = Logger{w.customLogger}
		return nil
	}

	level, err := zerolog.ParseLevel(w.config.LogLevel)
	if err != nil {
		return eris.Wrapf(err, "invalid log level %q", w.config.LogLevel)
	}

	logger := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Str("world_id", w.config.WorldID).
		Logger().
		Level(level)
	if w.config.LogPretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	w.logger = Logger{&logger}
	return nil
}

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	return strings.Split(tags, ",")
}

// Logger returns the world logger.
func (w *World) Logger() Logger {
	return w.logger
}

// WorldID returns the identifier tagging this world's logs and metrics.
func (w *World) WorldID() string {
	return w.config.WorldID
}

// -------------------------------------------------------------------------------------------------
// Entity lifecycle
// -------------------------------------------------------------------------------------------------

// Spawn creates an entity carrying the given components and returns its
// identifier. Identifiers are monotonic and never reused, so a handle that
// outlives its entity keeps failing instead of aliasing a newer one.
//
// Spawn cannot fail: a nil component value is a caller bug and panics, and
// exhausting the identifier space panics. Repeating a component type among
// the arguments keeps the last value, as with sequential Inserts.
func (w *World) Spawn(components ...any) types.EntityID {
	start := time.Now()
	if err := validateComponents(components); err != nil {
		panic("granary: " + err.Error())
	}

	id := w.store.Spawn()
	for _, component := range components {
		// Put cannot fail here: the entity was just spawned and the values
		// were validated non-nil above.
		_ = w.store.Put(id, component)
	}

	w.logger.Debug().
		Uint32("entity_id", uint32(id)).
		Int("total_components", len(components)).
		Msg("entity spawned")
	statsd.EmitSpawnStat(start, 1)
	return id
}

// SpawnAt creates an entity under a caller-chosen identifier, for
// deterministic replays and tests. The allocator is bumped past id so
// later Spawns never collide. Fails with ErrEntityAlreadyExists when the
// identifier is live.
func (w *World) SpawnAt(id types.EntityID, components ...any) error {
	start := time.Now()
	if err := validateComponents(components); err != nil {
		return err
	}
	if err := w.store.SpawnAt(id); err != nil {
		return err
	}
	for _, component := range components {
		_ = w.store.Put(id, component)
	}

	w.logger.Debug().
		Uint32("entity_id", uint32(id)).
		Int("total_components", len(components)).
		Msg("entity spawned at fixed id")
	statsd.EmitSpawnStat(start, 1)
	return nil
}

// Despawn destroys a live entity: its row is dropped, its bit leaves every
// column, and its identifier is retired for the lifetime of the world.
func (w *World) Despawn(id types.EntityID) error {
	total := w.store.TypeCount(id)
	if err := w.store.Destroy(id); err != nil {
		return err
	}

	w.logger.Debug().
		Uint32("entity_id", uint32(id)).
		Int("total_components", total).
		Msg("entity despawned")
	statsd.EmitDespawnStat(1)
	return nil
}

// Clear despawns every entity and drops every column. Identifier
// allocation keeps counting: handles from before the clear stay dead.
func (w *World) Clear() {
	total := w.store.Len()
	w.store.Clear()

	w.logger.Debug().
		Int("total_entities", total).
		Msg("world cleared")
	statsd.EmitDespawnStat(int64(total))
}

// Contains reports whether the identifier is live in this world.
func (w *World) Contains(id types.EntityID) bool {
	return w.store.Contains(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.store.Len()
}

// IsEmpty reports whether the world holds no entities.
func (w *World) IsEmpty() bool {
	return w.store.IsEmpty()
}

// Entities iterates the live identifiers in ascending order. The candidate
// set is snapshotted when Entities is called; entities despawned while
// iterating are skipped, entities spawned while iterating appear on the
// next call.
func (w *World) Entities() iter.Seq[types.EntityID] {
	snapshot := w.store.IDs()
	return func(yield func(types.EntityID) bool) {
		for _, id := range snapshot {
			if !w.store.Contains(id) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// All iterates every live entity together with all of its components,
// sorted by component type string. Snapshot semantics match Entities.
func (w *World) All() iter.Seq2[types.EntityID, []any] {
	snapshot := w.store.IDs()
	return func(yield func(types.EntityID, []any) bool) {
		for _, id := range snapshot {
			components, err := w.store.Components(id)
			if err != nil {
				continue
			}
			if !yield(id, components) {
				return
			}
		}
	}
}

// ComponentTypes returns every component type this world ever stored, in
// column-view order (sorted by type string).
func (w *World) ComponentTypes() []types.ComponentType {
	return w.store.ColumnTypes()
}

// -------------------------------------------------------------------------------------------------
// Component operations
// -------------------------------------------------------------------------------------------------

// Insert stores components on a live entity, replacing any instances of
// the same types already there. Values are validated before anything is
// stored, so a failed Insert leaves the entity untouched.
func (w *World) Insert(id types.EntityID, components ...any) error {
	if err := validateComponents(components); err != nil {
		return err
	}
	if !w.store.Contains(id) {
		return eris.Wrapf(storage.ErrEntityDoesNotExist, "cannot insert components on entity %d", id)
	}
	for _, component := range components {
		_ = w.store.Put(id, component)
	}

	w.logger.Debug().
		Uint32("entity_id", uint32(id)).
		Int("total_components", len(components)).
		Msg("components inserted")
	return nil
}

// Remove deletes the entity's instances of the given component types.
// Types the entity does not carry are skipped, so removal is idempotent.
func (w *World) Remove(id types.EntityID, components ...types.ComponentType) error {
	for _, t := range components {
		if t.IsZero() {
			return eris.Wrapf(storage.ErrNilComponent, "cannot remove the zero component type from entity %d", id)
		}
	}
	if !w.store.Contains(id) {
		return eris.Wrapf(storage.ErrEntityDoesNotExist, "cannot remove components from entity %d", id)
	}
	for _, t := range components {
		_ = w.store.Remove(id, t)
	}

	w.logger.Debug().
		Uint32("entity_id", uint32(id)).
		Int("total_components", len(components)).
		Msg("components removed")
	return nil
}

// Get returns the entity's component of the given type without static
// typing. Prefer the generic GetComponent when the type is known at
// compile time.
func (w *World) Get(id types.EntityID, t types.ComponentType) (any, error) {
	return w.store.Get(id, t)
}

// Has reports whether a live entity carries the given component type. A
// dead identifier simply reports false.
func (w *World) Has(id types.EntityID, t types.ComponentType) bool {
	return w.store.Has(id, t)
}

// Take returns the entity's component of the given type and removes it
// from the entity in the same step.
func (w *World) Take(id types.EntityID, t types.ComponentType) (any, error) {
	component, err := w.store.Take(id, t)
	if err != nil {
		return nil, err
	}

	w.logger.Debug().
		Uint32("entity_id", uint32(id)).
		Str("component_type", t.String()).
		Msg("component taken")
	return component, nil
}

// validateComponents rejects nil values before any of them is stored, so
// multi-component operations never apply partially.
func validateComponents(components []any) error {
	for _, component := range components {
		if component == nil {
			return eris.Wrap(storage.ErrNilComponent, "component values must be non-nil")
		}
	}
	return nil
}
