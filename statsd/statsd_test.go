package statsd

import (
	"testing"
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"

	"github.com/mossforge/granary/assert"
)

func TestClient_DefaultsToNoOp(t *testing.T) {
	t.Parallel()

	_, ok := Client().(*ddstatsd.NoOpClient)
	assert.True(t, ok)
}

func TestEmit_NoOpClientNeverFails(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		EmitSpawnStat(time.Now(), 1)
		EmitDespawnStat(3)
		EmitFindStat(time.Now(), "matching")
	})
}

func TestInit_RejectsEmptyAddress(t *testing.T) {
	t.Parallel()

	assert.IsError(t, Init("", nil))
}
