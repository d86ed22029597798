//go:build js && wasm

package storage

// DefaultBackend is used when no backend is configured.
const DefaultBackend = BackendBrowser

func openPlatform(backend Backend, opts Options) (Store, error) {
	switch backend {
	case BackendBrowser:
		return NewBrowserStore(opts.Key)
	default:
		return nil, ErrUnsupportedBackend
	}
}
