package opengl

// idList tracks which attribute slots the current draw enables versus the
// previous draw, so slots reused across draws are neither re-enabled nor
// disabled. moveToNew records a slot for the current draw; after the draw,
// anything left on the old list was not reused and gets disabled before
// copyNewToOld rotates the lists.
type idList struct {
	newIDs []uint32
	oldIDs []uint32
}

// moveToNew records a slot as active for the current draw.
//
// Parameters:
//   - id: the attribute slot
//
// Returns:
//   - bool: true when the slot was active in the previous draw, meaning it
//     is already enabled on the context
func (l *idList) moveToNew(id uint32) bool {
	if n := len(l.newIDs); n == 0 || l.newIDs[n-1] != id {
		l.newIDs = append(l.newIDs, id)
	}
	for i, old := range l.oldIDs {
		if old == id {
			last := len(l.oldIDs) - 1
			l.oldIDs[i] = l.oldIDs[last]
			l.oldIDs = l.oldIDs[:last]
			return true
		}
	}
	return false
}

// copyNewToOld makes the current draw's slots the baseline for the next
// draw.
func (l *idList) copyNewToOld() {
	l.oldIDs = append(l.oldIDs[:0], l.newIDs...)
	l.newIDs = l.newIDs[:0]
}

// reset empties both lists.
func (l *idList) reset() {
	l.newIDs = l.newIDs[:0]
	l.oldIDs = l.oldIDs[:0]
}
