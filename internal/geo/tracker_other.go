//go:build !js

package geo

// NewTracker returns the platform tracker. Native builds have none.
func NewTracker() Tracker {
	return Unsupported{}
}
