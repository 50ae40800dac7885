package repeatfor

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

// StoredExpansion is a cached ExpandSource result
type StoredExpansion struct {
	// Key is the hex SHA-256 digest of the engine settings and the source text.
	Key string `json:"key"`

	// Name is the source name the expansion was produced for.
	Name string `json:"name"`

	// Output is the expanded source.
	Output string `json:"output"`

	// Invocations is the number of macro calls expanded.
	Invocations int `json:"invocations"`

	// CreatedAt is when the expansion was stored.
	CreatedAt time.Time `json:"created_at"`
}

// ExpansionStore is the interface for pluggable expansion caches.
// Implementations must be safe for concurrent use.
type ExpansionStore interface {
	// Get retrieves an expansion by key.
	// Returns an error satisfying IsNotFound if the key is unknown.
	Get(ctx context.Context, key string) (*StoredExpansion, error)

	// Put stores an expansion, replacing any previous one with the same key.
	Put(ctx context.Context, exp *StoredExpansion) error

	// Delete removes an expansion. Deleting an unknown key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	// After Close, the store should not be used.
	Close() error
}

// StoreDriver is a factory for creating store instances.
// Drivers register themselves during init().
type StoreDriver interface {
	// Open creates a new store with the given driver-specific DSN.
	Open(dsn string) (ExpansionStore, error)
}

// ErrExpansionNotFound is returned (wrapped) by stores when a key is unknown
var ErrExpansionNotFound = errors.New(ErrMsgExpansionNotFound)

// IsNotFound reports whether err means the requested expansion does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrExpansionNotFound)
}

// Store driver registry
var (
	storeDriversMu sync.RWMutex
	storeDrivers   = make(map[string]StoreDriver)
)

// RegisterStoreDriver registers a store driver by name.
// This is typically called from a driver's init() function.
// Panics if a driver with the same name is already registered.
func RegisterStoreDriver(name string, driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStoreDriver)
	}
	if _, exists := storeDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storeDrivers[name] = driver
}

// OpenStore opens a store using the named driver.
//
// Example:
//
//	store, err := repeatfor.OpenStore("memory", "")
//	store, err := repeatfor.OpenStore("filesystem", ".repeatfor-cache")
func OpenStore(driverName, dsn string) (ExpansionStore, error) {
	storeDriversMu.RLock()
	driver, ok := storeDrivers[driverName]
	storeDriversMu.RUnlock()

	if !ok {
		return nil, &StoreError{Message: ErrMsgStoreDriverNotFound, Key: driverName}
	}

	return driver.Open(dsn)
}

// OpenStoreSpec opens a store from a "driver" or "driver:dsn" string
func OpenStoreSpec(spec string) (ExpansionStore, error) {
	driver, dsn, _ := strings.Cut(spec, ":")
	if driver == "" {
		return nil, &StoreError{Message: ErrMsgInvalidStoreSpec, Key: spec}
	}
	return OpenStore(driver, dsn)
}

// ListStoreDrivers returns the names of all registered store drivers, sorted.
func ListStoreDrivers() []string {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()

	names := make([]string, 0, len(storeDrivers))
	for name := range storeDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StoreError represents a store-related error.
type StoreError struct {
	Message string
	Key     string
	Cause   error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg += ": " + e.Key
	}
	if e.Cause != nil && e.Cause.Error() != e.Message {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreNotFoundError creates an error for an unknown key
func NewStoreNotFoundError(key string) error {
	return &StoreError{Message: ErrMsgExpansionNotFound, Key: key, Cause: ErrExpansionNotFound}
}

// NewStoreClosedError creates an error for operations on a closed store.
func NewStoreClosedError() error {
	return &StoreError{Message: ErrMsgStoreClosed}
}

// validateExpansion checks what every store requires of a Put argument
func validateExpansion(exp *StoredExpansion) error {
	if exp == nil {
		return &StoreError{Message: ErrMsgNilExpansion}
	}
	return validateKey(exp.Key)
}

// validateKey accepts only lower-case hex digests, which keeps keys safe to
// use as file names
func validateKey(key string) error {
	if key == "" {
		return &StoreError{Message: ErrMsgInvalidKey}
	}
	for _, r := range key {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return &StoreError{Message: ErrMsgInvalidKey, Key: key}
		}
	}
	return nil
}

// copyExpansion returns a copy so callers cannot mutate stored values
func copyExpansion(exp *StoredExpansion) *StoredExpansion {
	cp := *exp
	return &cp
}
