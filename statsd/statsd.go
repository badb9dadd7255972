// Package statsd wraps the DogStatsD calls the world emits, keeping the
// datadog dependency behind one file. The client starts as a no-op;
// nothing leaves the process until Init succeeds.
package statsd

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// EmitSpawnStat times one spawn from start and counts it.
func EmitSpawnStat(start time.Time, count int64) {
	duration := time.Since(start)
	if err := Client().Timing("spawn", duration, nil, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit spawn stat: %v", err)
	}
	if err := Client().Count("entities.spawned", count, nil, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit spawn stat: %v", err)
	}
}

// EmitDespawnStat counts despawned entities.
func EmitDespawnStat(count int64) {
	if err := Client().Count("entities.despawned", count, nil, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit despawn stat: %v", err)
	}
}

// EmitFindStat times one query evaluation, tagged with the evaluation
// stage ("on", "matching").
func EmitFindStat(start time.Time, stage string) {
	duration := time.Since(start)
	if err := Client().Timing("find", duration, []string{stage}, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit find stat: %v", err)
	}
}

func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// Namespace prefixes every metric name.
		ddstatsd.WithNamespace("granary"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return err
	}
	client = newClient
	return nil
}
