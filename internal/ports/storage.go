package ports

// KeyValueStore is the persistent key/value storage primitive all cache and
// config state is layered on. Values are serialized strings; keys are opaque.
// Implementations persist across restarts and are shared by every process
// using the same database, with last-write-wins semantics on races.
type KeyValueStore interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	// Set writes value under key, overwriting unconditionally.
	Set(key, value string) error
	// Delete removes a single key. Missing keys are not an error.
	Delete(key string) error
	// Keys lists all stored keys with the given prefix.
	Keys(prefix string) ([]string, error)
	// DeleteMany removes all listed keys in one operation.
	DeleteMany(keys []string) error
	Close() error
}
