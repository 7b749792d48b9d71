package editor

import (
	"math"

	"github.com/ajankelo/claviature"
)

// moveEntities applies the same snapped delta to every snapshot entity and
// clamps each one independently: start stays nonnegative, a bounded
// container keeps start+duration within its extent, and the lane stays
// within the lane count.
func moveEntities(snapshot []Entity, deltaBeat float64, deltaLane int, b Bounds) []Entity {
	out := make([]Entity, len(snapshot))
	for i, e := range snapshot {
		e.Start += deltaBeat
		e.Lane += deltaLane
		maxStart := math.Inf(1)
		if b.Bounded {
			maxStart = max(b.Duration-e.Duration, 0)
		}
		e.Start = clampF(e.Start, 0, maxStart)
		if b.Lanes > 0 {
			e.Lane = clamp(e.Lane, 0, b.Lanes-1)
		}
		out[i] = e
	}
	return out
}

// resizeStarts moves the left edge of every snapshot entity by delta,
// keeping the right edge fixed. The new start is clamped so it stays
// nonnegative and leaves at least MinDuration of the entity.
func resizeStarts(snapshot []Entity, delta float64) []Entity {
	out := make([]Entity, len(snapshot))
	for i, e := range snapshot {
		newStart := clampF(e.Start+delta, 0, e.End()-claviature.MinDuration)
		e.Duration -= newStart - e.Start
		e.Start = newStart
		out[i] = e
	}
	return out
}

// resizeEnds moves the right edge of every snapshot entity by delta. The
// duration is clamped to MinDuration and, in a bounded container, so the
// entity does not outgrow the container.
func resizeEnds(snapshot []Entity, delta float64, b Bounds) []Entity {
	out := make([]Entity, len(snapshot))
	for i, e := range snapshot {
		bound := math.Inf(1)
		if b.Bounded {
			bound = max(b.Duration-e.Start, claviature.MinDuration)
		}
		e.Duration = clampF(e.Duration+delta, claviature.MinDuration, bound)
		out[i] = e
	}
	return out
}

// mergeResolved builds the full container contents with the resolved
// entities substituted in by id, for the single atomic Replace at commit.
func mergeResolved(current, resolved []Entity) []Entity {
	byID := make(map[int]Entity, len(resolved))
	for _, e := range resolved {
		byID[e.ID] = e
	}
	out := make([]Entity, len(current))
	for i, e := range current {
		if r, ok := byID[e.ID]; ok {
			out[i] = r
		} else {
			out[i] = e
		}
	}
	return out
}

// snapRound quantizes a beat to the nearest multiple of snap.
func snapRound(beat, snap float64) float64 {
	if snap <= 0 {
		return beat
	}
	return math.Round(beat/snap) * snap
}

// snapFloor quantizes a beat down to a multiple of snap; click-to-create
// uses it so the new entity starts in the clicked cell.
func snapFloor(beat, snap float64) float64 {
	if snap <= 0 {
		return beat
	}
	return math.Floor(beat/snap) * snap
}
