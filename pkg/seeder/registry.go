package seeder

import (
	"fmt"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]RunFunc)
	names      []string
)

// Register makes a seeder available by name to the seed command. It panics if name is
// empty, fn is nil or the name is already taken.
func Register(name string, fn RunFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if name == "" {
		panic("seeder: Register called with empty name")
	}
	if fn == nil {
		panic("seeder: Register seeder is nil")
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("seeder: Register called twice for seeder %s", name))
	}
	registry[name] = fn
	names = append(names, name)
}

// Registered returns the registered seeder names in registration order.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return append([]string(nil), names...)
}

func Lookup(name string) (RunFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := registry[name]
	return fn, ok
}
