package editor

type (
	// Entity is the uniform shape the editing engine manipulates. The note
	// editor projects notes into it (Lane is the inverted pitch so lane 0 is
	// the top row) and the timeline projects blocks (Lane is the track
	// index). Start and Duration are in beats.
	Entity struct {
		ID       int
		Start    float64
		Duration float64
		Lane     int
	}

	// Bounds describes the limits of the active container. When Bounded is
	// set, entity starts are clamped so Start+Duration never exceeds
	// Duration (a note must fit its block). Lanes is the number of valid
	// lanes; 0 means the secondary axis is unbounded.
	Bounds struct {
		Duration float64
		Lanes    int
		Bounded  bool
	}

	// Container is the engine's window onto host-owned data. The engine
	// holds no authoritative copy: it reads Entities and writes whole
	// resolved lists back through Replace, never incremental partial writes.
	Container interface {
		// Entities returns the current entities in container order.
		Entities() []Entity

		// Replace atomically swaps the container contents for the given
		// list. Reparenting between lanes is the implementation's business;
		// the engine just sets Lane.
		Replace([]Entity)

		// Bounds returns the clamping limits currently in force.
		Bounds() Bounds

		// Generation increments on every write to the container, including
		// writes the engine itself performs. The gesture controller uses it
		// to detect external mutation mid-gesture.
		Generation() int

		// Create returns the entity a click on empty space should
		// materialize, or ok=false when the container refuses the position.
		// The engine snaps start before calling; the container fills in the
		// default duration and payload. The entity is not added yet; the
		// engine follows up with a Replace.
		Create(start float64, lane int) (e Entity, ok bool)

		// Duplicate clones the given entities, payload included, with fresh
		// ids, and appends the clones to the container in one atomic write.
		// Returns the clones and a parallel slice of their source ids. Ids
		// not present in the container are skipped.
		Duplicate(ids []int) (clones []Entity, sources []int)

		// Rollback restores the contents from before the last Duplicate
		// write without recording it as a separate change, so a cancelled
		// duplicate gesture leaves no trace in the host's history.
		Rollback()

		// ResizeBounds grows or shrinks the container itself by the given
		// start and end deltas in beats. A start delta re-bases child
		// entities so their absolute position is unaffected. Ignored by
		// containers that have no own extent (the timeline).
		ResizeBounds(deltaStart, deltaEnd float64)
	}

	// Host supplies the engine services that live outside the container:
	// the snap grid, the playhead and a channel for recoverable warnings.
	Host interface {
		Snap() float64
		Playhead() float64
		SetPlayhead(beat float64)
		Warn(msg string)
	}
)

// End returns Start+Duration.
func (e Entity) End() float64 { return e.Start + e.Duration }

func clamp(a, min, max int) int {
	if a < min {
		return min
	}
	if a > max {
		return max
	}
	return a
}

func clampF(a, min, max float64) float64 {
	if a < min {
		return min
	}
	if a > max {
		return max
	}
	return a
}
