package scenes

import (
	"eightball/common"
	"eightball/engine"
	"eightball/services"
)

// RunStats accumulates statistics across a demo run for display on the
// summary scene. It is mutated by SimScene as it steps the engine.
type RunStats struct {
	Collisions int
	StartTime  float64
}

// Deps bundles the dependencies every scene needs: configuration, the
// simulation engine being driven this session, the optional telemetry
// broadcaster, and accumulated run statistics. Scenes use Engine only
// through its public methods: Snapshot/GlobalTime/BallCount to read it,
// and AdvanceBy/CollisionTimes to step it — never by reaching into
// engine internals.
type Deps struct {
	Config    *common.Config
	Engine    *engine.Engine
	Telemetry *services.Telemetry
	Stats     *RunStats
}
