package editor

// Selection is the set of selected entity ids of one editor instance. The
// slice keeps selection order, which the hit-tester uses for its priority
// rule, and ids are always a subset of the active container's ids; the
// model prunes after every container mutation.
type Selection struct {
	ids []int
}

// Region is an axis-aligned rectangle in content space used by marquee
// selection. Beat and lane extents are inclusive of any overlap.
type Region struct {
	BeatMin, BeatMax float64
	LaneMin, LaneMax float64
}

// Replace makes the selection exactly ids, in the given order.
func (s *Selection) Replace(ids ...int) {
	s.ids = append(s.ids[:0], ids...)
}

// Add appends the ids that are not yet selected, keeping existing order.
func (s *Selection) Add(ids ...int) {
	for _, id := range ids {
		if !s.Contains(id) {
			s.ids = append(s.ids, id)
		}
	}
}

// Toggle removes the id if selected, adds it otherwise.
func (s *Selection) Toggle(id int) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = s.ids[:0]
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id int) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns the selected ids in selection order. The returned slice is
// the selection's own storage; callers must not hold on to it across
// mutations.
func (s *Selection) IDs() []int {
	return s.ids
}

// Len returns the number of selected entities.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Prune drops every id for which keep returns false. Called by the model
// after each container mutation so the subset invariant holds.
func (s *Selection) Prune(keep func(id int) bool) {
	n := 0
	for _, id := range s.ids {
		if keep(id) {
			s.ids[n] = id
			n++
		}
	}
	s.ids = s.ids[:n]
}

// SelectByRegion selects every entity whose bounding rectangle overlaps r,
// replacing the selection, or unioning into it when additive is set. The
// overlap test is "not disjoint on either axis"; an entity occupies
// [Start, Start+Duration) by [Lane, Lane+1).
func (s *Selection) SelectByRegion(r Region, entities []Entity, additive bool) {
	if !additive {
		s.Clear()
	}
	for _, e := range entities {
		if e.End() < r.BeatMin || e.Start > r.BeatMax {
			continue
		}
		if float64(e.Lane)+1 < r.LaneMin || float64(e.Lane) > r.LaneMax {
			continue
		}
		s.Add(e.ID)
	}
}

// regionFromPoints returns the normalized region spanned by two content
// points.
func regionFromPoints(a, b ContentPoint) Region {
	return Region{
		BeatMin: min(a.Beat, b.Beat),
		BeatMax: max(a.Beat, b.Beat),
		LaneMin: min(a.Lane, b.Lane),
		LaneMax: max(a.Lane, b.Lane),
	}
}
