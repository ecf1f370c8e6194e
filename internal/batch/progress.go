package batch

// Stage names the pass a progress event belongs to.
type Stage string

// Pass stages.
const (
	StageIdentification Stage = "identification"
	StageAnalysis       Stage = "analysis"
)

// Progress describes one item being picked up by a pass driver. Events are
// published to the queue's progress callback so callers can drive progress
// UI without touching queue internals.
type Progress struct {
	Stage  Stage
	ItemID string
	Index  int
	Total  int
}

// ProgressFunc receives progress events. It is called from the pass
// goroutine; implementations must not call back into the queue's drivers.
type ProgressFunc func(Progress)
