//go:build !js

package storage

// DefaultBackend is used when no backend is configured.
const DefaultBackend = BackendFile

func openPlatform(backend Backend, opts Options) (Store, error) {
	switch backend {
	case BackendFile:
		return NewFileStore(opts.Path)
	case BackendSQLite:
		return OpenSQLite(opts.Path, opts.Key)
	default:
		return nil, ErrUnsupportedBackend
	}
}
