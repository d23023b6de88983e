package resource

// Range is a half-open byte span [Start, Start+Length) of a buffer's data.
type Range struct {
	// Start is the first dirty byte offset.
	Start int

	// Length is the number of dirty bytes.
	Length int
}

// End retrieves the exclusive end offset of the range.
//
// Returns:
//   - int: Start + Length
func (r Range) End() int {
	return r.Start + r.Length
}

// DirtyRegions tracks which byte spans of a buffer changed since the last
// flush. Buffers flush either as one full re-upload or as a sequence of
// sub-range updates; once the full range is marked, later partial marks are
// absorbed and exactly one full upload happens.
//
// The zero value is an empty tracker with nothing dirty.
type DirtyRegions struct {
	full   bool
	ranges []Range
}

// MarkAll marks the entire buffer dirty, discarding any pending partial
// ranges. Partial marks arriving after MarkAll are absorbed.
func (d *DirtyRegions) MarkAll() {
	d.full = true
	d.ranges = d.ranges[:0]
}

// MarkRange marks the byte span [start, start+length) dirty. Overlapping and
// adjacent spans are merged. A mark after MarkAll is a no-op, as is a span of
// zero or negative length.
//
// Parameters:
//   - start: first dirty byte offset
//   - length: number of dirty bytes
func (d *DirtyRegions) MarkRange(start, length int) {
	if d.full || length <= 0 {
		return
	}
	nr := Range{Start: start, Length: length}

	merged := d.ranges[:0]
	for _, r := range d.ranges {
		if r.End() < nr.Start || nr.End() < r.Start {
			merged = append(merged, r)
			continue
		}
		lo := min(r.Start, nr.Start)
		hi := max(r.End(), nr.End())
		nr = Range{Start: lo, Length: hi - lo}
	}
	d.ranges = insertSorted(merged, nr)
}

// Full reports whether the whole buffer is dirty.
//
// Returns:
//   - bool: true when MarkAll was called since the last Clear
func (d *DirtyRegions) Full() bool {
	return d.full
}

// Empty reports whether nothing is dirty.
//
// Returns:
//   - bool: true when neither MarkAll nor MarkRange was called since Clear
func (d *DirtyRegions) Empty() bool {
	return !d.full && len(d.ranges) == 0
}

// Ranges retrieves the pending partial spans in ascending offset order. The
// slice is owned by the tracker and only valid until the next mutation.
//
// Returns:
//   - []Range: merged dirty spans, nil when full or empty
func (d *DirtyRegions) Ranges() []Range {
	if d.full {
		return nil
	}
	return d.ranges
}

// Clear resets the tracker after a flush.
func (d *DirtyRegions) Clear() {
	d.full = false
	d.ranges = d.ranges[:0]
}

func insertSorted(rs []Range, nr Range) []Range {
	i := 0
	for i < len(rs) && rs[i].Start < nr.Start {
		i++
	}
	rs = append(rs, Range{})
	copy(rs[i+1:], rs[i:])
	rs[i] = nr
	return rs
}
