// Package geo reports the device position to the game.
package geo

import (
	"errors"

	"github.com/geocoin/geocoin/internal/world"
)

// ErrUnsupported is returned when the platform has no geolocation.
var ErrUnsupported = errors.New("geolocation is not supported")

// Tracker watches the device position. Callbacks may arrive on any
// goroutine; consumers must hand positions off rather than act on them.
type Tracker interface {
	Watch(fn func(world.LatLng)) (stop func(), err error)
}

// Unsupported is a Tracker for platforms without geolocation.
type Unsupported struct{}

// Watch always fails with ErrUnsupported.
func (Unsupported) Watch(func(world.LatLng)) (func(), error) {
	return nil, ErrUnsupported
}

// Fixed reports a single position once per Watch. It stands in for a
// device on desktop builds when a fixed location is configured.
type Fixed struct {
	At world.LatLng
}

// Watch delivers At immediately.
func (f Fixed) Watch(fn func(world.LatLng)) (func(), error) {
	fn(f.At)
	return func() {}, nil
}
