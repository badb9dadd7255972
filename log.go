package granary

import (
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/mossforge/granary/types"
)

// Logger wraps a zerolog.Logger with emitters that understand entities and
// component rows.
type Logger struct {
	*zerolog.Logger
}

// loadComponentIntoArrayLogger renders one component as a dict of its type
// string and JSON payload. Values that refuse to marshal still log their
// type, with the marshal error attached.
func (*Logger) loadComponentIntoArrayLogger(component any, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Str("component_type", types.TypeOf(component).String())
	if bz, err := json.Marshal(component); err == nil {
		dictLogger = dictLogger.RawJSON("value", bz)
	} else {
		dictLogger = dictLogger.AnErr("marshal_error", err)
	}
	return arrayLogger.Dict(dictLogger)
}

func (l *Logger) loadComponentsToEvent(event *zerolog.Event, components []any) *zerolog.Event {
	event.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, component := range components {
		arrayLogger = l.loadComponentIntoArrayLogger(component, arrayLogger)
	}
	return event.Array("components", arrayLogger)
}

// LogEntity logs an entity's identifier and full component row.
func (l Logger) LogEntity(level zerolog.Level, id types.EntityID, components []any) {
	event := l.WithLevel(level)
	event = l.loadComponentsToEvent(event, components)
	event.Uint32("entity_id", uint32(id))
	event.Send()
}

// LogWorld logs a population summary: live entity count plus every column
// and its size.
func (l Logger) LogWorld(w *World, level zerolog.Level) {
	event := l.WithLevel(level)
	event.Int("total_entities", w.Len())

	columnTypes := w.ComponentTypes()
	event.Int("total_columns", len(columnTypes))
	arrayLogger := zerolog.Arr()
	for _, t := range columnTypes {
		dictLogger := zerolog.Dict()
		dictLogger = dictLogger.Str("component_type", t.String())
		dictLogger = dictLogger.Int("entities", w.store.ColumnCount(t))
		arrayLogger = arrayLogger.Dict(dictLogger)
	}
	event.Array("columns", arrayLogger)
	event.Send()
}

// CreateTraceLogger derives a logger carrying a trace_id, to follow one
// data path through spawns, queries and despawns.
func (l Logger) CreateTraceLogger(traceID string) zerolog.Logger {
	return l.Logger.With().
		Str("trace_id", traceID).
		Logger()
}
