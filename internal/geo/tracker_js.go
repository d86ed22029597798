//go:build js && wasm

package geo

import (
	"syscall/js"

	"github.com/geocoin/geocoin/internal/world"
)

// NewTracker returns a tracker backed by navigator.geolocation.
func NewTracker() Tracker {
	return browserTracker{}
}

type browserTracker struct{}

func (browserTracker) Watch(fn func(world.LatLng)) (func(), error) {
	geolocation := js.Global().Get("navigator").Get("geolocation")
	if geolocation.IsUndefined() || geolocation.IsNull() {
		return nil, ErrUnsupported
	}

	success := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		coords := args[0].Get("coords")
		fn(world.LatLng{
			Lat: coords.Get("latitude").Float(),
			Lng: coords.Get("longitude").Float(),
		})
		return nil
	})
	failure := js.FuncOf(func(this js.Value, args []js.Value) any {
		return nil
	})

	id := geolocation.Call("watchPosition", success, failure)
	stop := func() {
		geolocation.Call("clearWatch", id)
		success.Release()
		failure.Release()
	}
	return stop, nil
}
