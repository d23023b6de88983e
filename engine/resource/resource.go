package resource

// Handle is the shared base embedded by every object that owns a
// driver-assigned GPU name: shader programs and sources, images, vertex and
// storage buffers, framebuffers and their renderbuffers. It tracks the name
// itself, a generation counter used for identity comparison, and the
// update-needed flag that drives lazy uploads.
//
// The zero value is ready to use: no name assigned, generation zero, clean.
// GL reserves object name 0 as the null object, so 0 doubles as the "not yet
// created" sentinel.
type Handle struct {
	id           uint32
	generation   uint64
	updateNeeded bool
}

// Ref is a comparable value identifying one generation of one GPU object.
// Shadow-state slots store Refs instead of object pointers so that a
// deleted-and-recreated resource never aliases its prior binding: Reset
// bumps the generation, making every stale Ref compare unequal.
type Ref struct {
	// ID is the driver-assigned object name, 0 if unset.
	ID uint32

	// Generation counts how many times the owning handle has been reset.
	Generation uint64
}

// Valid reports whether the Ref points at a created object.
//
// Returns:
//   - bool: true when the referenced object had a driver name assigned
func (r Ref) Valid() bool {
	return r.ID != 0
}

// ID retrieves the driver-assigned object name.
//
// Returns:
//   - uint32: the object name, 0 when the object has not been created yet
func (h *Handle) ID() uint32 {
	return h.id
}

// SetID records the driver-assigned object name after creation.
//
// Parameters:
//   - id: the object name returned by the driver
func (h *Handle) SetID(id uint32) {
	h.id = id
}

// Ref retrieves the comparable identity of the current object generation.
//
// Returns:
//   - Ref: the (name, generation) tuple for shadow-state comparison
func (h *Handle) Ref() Ref {
	return Ref{ID: h.id, Generation: h.generation}
}

// Generation retrieves the current generation counter.
//
// Returns:
//   - uint64: the number of times Reset has been called on this handle
func (h *Handle) Generation() uint64 {
	return h.generation
}

// UpdateNeeded reports whether CPU-side data changed since the last upload.
//
// Returns:
//   - bool: true when the object must be re-synced to the GPU
func (h *Handle) UpdateNeeded() bool {
	return h.updateNeeded
}

// SetUpdateNeeded marks the object as requiring an upload on next use.
func (h *Handle) SetUpdateNeeded() {
	h.updateNeeded = true
}

// ClearUpdateNeeded marks the object as synced with the GPU.
func (h *Handle) ClearUpdateNeeded() {
	h.updateNeeded = false
}

// Reset forgets the driver name, bumps the generation, and marks the object
// dirty so the next use re-creates it. Called after deletion and after a
// context loss.
func (h *Handle) Reset() {
	h.id = 0
	h.generation++
	h.updateNeeded = true
}
