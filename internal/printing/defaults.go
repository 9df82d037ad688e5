package printing

import "sync"

// DefaultsStore keeps the last-used arguments for the lifetime of the process.
// Nothing is written to disk.
type DefaultsStore struct {
	mutex   sync.RWMutex
	current Arguments
}

// NewDefaultsStore seeds the store with the configured initial arguments.
func NewDefaultsStore(initial Arguments) *DefaultsStore {
	return &DefaultsStore{current: initial.Clone()}
}

// Load returns a copy of the arguments the next menu should start from.
func (store *DefaultsStore) Load() Arguments {
	if store == nil {
		return NewArguments()
	}
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return store.current.Clone()
}

// Record remembers arguments as the last-used set.
func (store *DefaultsStore) Record(arguments Arguments) {
	if store == nil {
		return
	}
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.current = arguments.Clone()
}
