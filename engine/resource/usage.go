package resource

// Usage hints how often a buffer's data changes, steering the driver's
// placement of the allocation.
type Usage int

const (
	// UsageStatic marks data uploaded once and drawn many times.
	UsageStatic Usage = iota

	// UsageDynamic marks data updated occasionally between draws.
	UsageDynamic

	// UsageStream marks data rewritten nearly every frame.
	UsageStream

	// UsageCPUOnly marks data that never leaves the CPU; uploading such a
	// buffer is a caller error.
	UsageCPUOnly
)
