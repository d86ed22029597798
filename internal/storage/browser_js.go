//go:build js && wasm

package storage

import (
	"errors"
	"fmt"
	"syscall/js"
)

// BrowserStore keeps the blob in the page's localStorage.
type BrowserStore struct {
	storage js.Value
	key     string
}

// NewBrowserStore binds to window.localStorage under key.
func NewBrowserStore(key string) (*BrowserStore, error) {
	if key == "" {
		return nil, errors.New("localStorage key is required")
	}
	storage := js.Global().Get("localStorage")
	if storage.IsUndefined() || storage.IsNull() {
		return nil, errors.New("localStorage is not available")
	}
	return &BrowserStore{storage: storage, key: key}, nil
}

func (b *BrowserStore) Load() (blob string, ok bool, err error) {
	defer recoverJS(&err)
	v := b.storage.Call("getItem", b.key)
	if v.IsNull() || v.IsUndefined() {
		return "", false, nil
	}
	return v.String(), true, nil
}

func (b *BrowserStore) Save(blob string) (err error) {
	defer recoverJS(&err)
	b.storage.Call("setItem", b.key, blob)
	return nil
}

func (b *BrowserStore) Clear() (err error) {
	defer recoverJS(&err)
	b.storage.Call("removeItem", b.key)
	return nil
}

// recoverJS turns a thrown JS exception (quota exceeded, storage disabled)
// into an error.
func recoverJS(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("localStorage: %v", r)
	}
}
